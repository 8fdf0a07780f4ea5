package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/backend"
	"github.com/gradepro/gradepro-web/internal/config"
	"github.com/gradepro/gradepro-web/internal/database"
	"github.com/gradepro/gradepro-web/internal/events"
	"github.com/gradepro/gradepro-web/internal/handler"
	"github.com/gradepro/gradepro-web/internal/middleware"
	"github.com/gradepro/gradepro-web/internal/router"
	"github.com/gradepro/gradepro-web/internal/service"
	"github.com/gradepro/gradepro-web/internal/session"
	cloud "github.com/gradepro/gradepro-web/pkg/cloudinary"
)

const sessionPurgeInterval = 15 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.AppName).Logger()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := backend.New(backend.Config{BaseURL: cfg.BackendURL, Timeout: cfg.BackendTimeout}, logger)
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(rootCtx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var store session.Store
	switch cfg.SessionStore {
	case config.SessionStoreDatabase:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		gormStore := session.NewGormStore(db)
		if err := gormStore.Migrate(); err != nil {
			log.Fatalf("failed to migrate sessions table: %v", err)
		}
		go purgeExpiredSessions(rootCtx, gormStore, logger)
		store = gormStore
	default:
		store = session.NewRedisStore(redisClient)
	}

	sessions := session.NewManager(client, store, session.Config{TTL: cfg.SessionTTL, TokenSecret: cfg.TokenSecret}, logger)

	natsConn, err := events.Connect(cfg.NATSURL, logger)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer func(conn *nats.Conn) { _ = conn.Drain() }(natsConn)
	}
	publisher := events.NewPublisher(natsConn, redisClient, cfg.NATSSubjectPrefix, logger)

	var uploader service.FileUploader
	if cfg.UploadsEnabled() {
		cloudinary, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudinary
	} else {
		logger.Warn().Msg("cloudinary credentials missing, assignment attachments disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	authService := service.NewAuthService(sessions, validate, logger)
	reviewService := service.NewSubmissionReviewService(client, validate, publisher, logger)
	assignmentService := service.NewAssignmentService(client, validate, uploader, logger)
	courseService := service.NewCourseService(client, validate, logger)
	analyticsService := service.NewAnalyticsService(client, logger)
	plagiarismService := service.NewPlagiarismService(client, validate, logger)
	studentService := service.NewStudentService(client, logger)
	revaluationService := service.NewRevaluationService(client, validate, publisher, logger)

	secureCookie := cfg.AppEnv == "production"

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    int(service.MaxAttachmentSize) + 1<<20,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:            handler.NewAuthHandler(authService, secureCookie, logger),
		SubmissionHandler:      handler.NewSubmissionHandler(reviewService, logger),
		AssignmentHandler:      handler.NewAssignmentHandler(assignmentService, logger),
		CourseHandler:          handler.NewCourseHandler(courseService, logger),
		FacultyInsightsHandler: handler.NewFacultyInsightsHandler(analyticsService, plagiarismService, logger),
		StudentHandler:         handler.NewStudentHandler(studentService, revaluationService, logger),
		SessionMiddleware:      middleware.SessionAuth(sessions, logger),
		LoginLimiter:           middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow),
		RevaluationLimiter:     middleware.RateLimit("revaluation", 5, time.Minute),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddress()).Str("backend", cfg.BackendURL).Str("session_store", cfg.SessionStore).Msg("gradepro web started")

	waitForShutdown(rootCtx, app)
}

func purgeExpiredSessions(ctx context.Context, store *session.GormStore, logger zerolog.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := store.PurgeExpired(ctx, now)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to purge expired sessions")
				continue
			}
			if removed > 0 {
				logger.Info().Int64("removed", removed).Msg("purged expired sessions")
			}
		}
	}
}

func waitForShutdown(shutdownCtx context.Context, app *fiber.App) {
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

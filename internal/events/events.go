package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gradepro/gradepro-web/internal/observability"
)

// Event names, appended to the subject prefix.
const (
	GradeEntered         = "grade.entered"
	RevaluationRequested = "revaluation.requested"
)

// Envelope wraps every published payload.
type Envelope struct {
	ID         string          `json:"id"`
	Event      string          `json:"event"`
	Source     string          `json:"source"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// GradeEnteredPayload is published after a grade is stored upstream.
type GradeEnteredPayload struct {
	SubmissionID string    `json:"submission_id"`
	StudentID    string    `json:"student_id"`
	AssignmentID string    `json:"assignment_id"`
	Grade        float64   `json:"grade"`
	MaxMarks     float64   `json:"max_marks"`
	Letter       string    `json:"letter"`
	GradedBy     string    `json:"graded_by"`
	GradedAt     time.Time `json:"graded_at"`
}

// RevaluationRequestedPayload is published after a student files a request.
type RevaluationRequestedPayload struct {
	RevaluationID string    `json:"revaluation_id"`
	GradingID     string    `json:"grading_id"`
	StudentID     string    `json:"student_id"`
	RequestedAt   time.Time `json:"requested_at"`
}

// Publisher fans domain events out to NATS and Redis pub/sub. Either transport
// may be nil; a nil Publisher drops events.
type Publisher struct {
	nats   *nats.Conn
	redis  *redis.Client
	prefix string
	source string
	logger zerolog.Logger
	now    func() time.Time
}

// NewPublisher builds a publisher over the configured transports.
func NewPublisher(natsConn *nats.Conn, redisClient *redis.Client, prefix string, logger zerolog.Logger) *Publisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = "gradepro"
	}

	return &Publisher{
		nats:   natsConn,
		redis:  redisClient,
		prefix: prefix,
		source: uuid.NewString(),
		logger: logger.With().Str("component", "event_publisher").Logger(),
		now:    time.Now,
	}
}

// Connect dials NATS. An empty url yields a nil connection and no error.
func Connect(url string, logger zerolog.Logger) (*nats.Conn, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}

	conn, err := nats.Connect(url,
		nats.Name("gradepro-web"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return conn, nil
}

// Subject returns the fully qualified subject for an event name.
func (p *Publisher) Subject(event string) string {
	return p.prefix + "." + event
}

// Publish serializes payload into an Envelope and sends it on every transport.
func (p *Publisher) Publish(ctx context.Context, event string, payload interface{}) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", event, err)
	}

	message, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Event:      event,
		Source:     p.source,
		OccurredAt: p.now().UTC(),
		Payload:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s envelope: %w", event, err)
	}

	subject := p.Subject(event)

	if p.nats != nil {
		if err := p.nats.Publish(subject, message); err != nil {
			return fmt.Errorf("failed to publish %s to nats: %w", subject, err)
		}
	}

	if p.redis != nil {
		if err := p.redis.Publish(ctx, subject, message).Err(); err != nil {
			return fmt.Errorf("failed to publish %s to redis: %w", subject, err)
		}
	}

	observability.DomainEvents().WithLabelValues(event).Inc()
	p.logger.Debug().Str("subject", subject).Msg("event published")

	return nil
}

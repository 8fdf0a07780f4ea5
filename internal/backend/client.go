package backend

import (
	"context"
	"embed"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/gradepro/gradepro-web/internal/middleware"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const envelopeSchema = "envelope.json"

// Config configures the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the GradePro REST backend. It never retries: a failed call is
// reported to the caller as is.
type Client struct {
	http    *resty.Client
	schemas map[string]*jsonschema.Schema
	logger  zerolog.Logger
}

// New builds a client and compiles the response schemas.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend base url must not be empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		schemas: schemas,
		logger:  logger.With().Str("component", "backend_client").Logger(),
	}, nil
}

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	entries, err := schemaFiles.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read response schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		file, err := schemaFiles.Open("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to open schema %s: %w", entry.Name(), err)
		}
		addErr := compiler.AddResource(entry.Name(), file)
		file.Close()
		if addErr != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", entry.Name(), addErr)
		}
		names = append(names, entry.Name())
	}

	schemas := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		schemas[name] = schema
	}

	return schemas, nil
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	if correlation := middleware.CorrelationIDFromContext(ctx); correlation != "" {
		req.SetHeader(middleware.CorrelationHeader, correlation)
	}
	return req
}

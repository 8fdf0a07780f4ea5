package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gradepro/gradepro-web/internal/observability"
)

// endpoint describes one backend route. Route may contain a single ":id" placeholder.
// optional marks writes whose success reply may omit data.
type endpoint struct {
	method   string
	route    string
	schema   string
	list     bool
	optional bool
}

func (e endpoint) path(id string) string {
	if !strings.Contains(e.route, ":id") {
		return e.route
	}
	return strings.Replace(e.route, ":id", url.PathEscape(id), 1)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func receive[T any](ctx context.Context, c *Client, req *resty.Request, ep endpoint, id string) (T, error) {
	var result T
	path := ep.path(id)

	start := time.Now()
	resp, err := req.Execute(ep.method, path)
	c.observe(ep, resp, err, time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, ep.method, path, err)
	}

	body := resp.Body()
	raw, decodeErr := decodeRaw(body)
	if decodeErr == nil {
		decodeErr = c.schemas[envelopeSchema].Validate(raw)
	}
	if decodeErr != nil {
		if resp.IsError() {
			return result, &Error{Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode()), Path: path}
		}
		c.logger.Warn().Err(decodeErr).Str("path", path).Msg("backend response envelope rejected")
		return result, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, path, decodeErr)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return result, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, path, err)
	}

	if resp.IsError() || !env.Success {
		status := resp.StatusCode()
		if !resp.IsError() {
			status = http.StatusUnprocessableEntity
		}
		message := env.Message
		if message == "" {
			message = http.StatusText(status)
		}
		return result, &Error{Status: status, Message: message, Path: path}
	}

	data := raw.(map[string]interface{})["data"]
	if ep.schema != "" && !(ep.optional && data == nil) {
		if err := c.validateData(ep, data); err != nil {
			c.logger.Warn().Err(err).Str("path", path).Msg("backend response data rejected")
			return result, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, path, err)
		}
	}

	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return result, nil
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return result, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, path, err)
	}

	return result, nil
}

func (c *Client) validateData(ep endpoint, data interface{}) error {
	schema, ok := c.schemas[ep.schema]
	if !ok {
		return fmt.Errorf("unknown schema %s", ep.schema)
	}

	if !ep.list {
		return schema.Validate(data)
	}

	if data == nil {
		return nil
	}
	items, ok := data.([]interface{})
	if !ok {
		return fmt.Errorf("expected a list")
	}
	for idx, item := range items {
		if err := schema.Validate(item); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}
	return nil
}

func (c *Client) observe(ep endpoint, resp *resty.Response, err error, duration time.Duration) {
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	observability.BackendRequests().WithLabelValues(ep.method, ep.route, status).Inc()
	observability.BackendLatency().WithLabelValues(ep.method, ep.route).Observe(duration.Seconds())
}

func decodeRaw(body []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var raw interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

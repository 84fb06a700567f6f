package users

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nais/usersync/internal/config"
	"github.com/nais/usersync/internal/metrics"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
	log        logrus.FieldLogger
	metrics    *metrics.Metrics
}

func New(cfg config.Endpoint, m *metrics.Metrics, log logrus.FieldLogger) *Client {
	return &Client{
		endpoint:   cfg.URL,
		httpClient: Transport{}.Client(),
		log:        log,
		metrics:    m,
	}
}

// WithHTTPClient replaces the HTTP client, mainly useful in tests
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// List fetches every user in the collection, in the order returned by the endpoint
func (c *Client) List(ctx context.Context) ([]User, error) {
	ret := []User{}
	if err := c.do(ctx, http.MethodGet, nil, &ret); err != nil {
		return nil, c.error(ctx, err, "listing users")
	}
	return ret, nil
}

// Create adds a user to the collection and returns the record with its assigned ID
func (c *Client) Create(ctx context.Context, user NewUser) (*User, error) {
	body, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encoding user: %w", err)
	}

	ret := &User{}
	if err := c.do(ctx, http.MethodPost, body, ret); err != nil {
		return nil, c.error(ctx, err, "creating user")
	}
	return ret, nil
}

func (c *Client) do(ctx context.Context, method string, body []byte, respBody any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		c.metrics.RequestTime.Record(ctx, time.Since(start).Milliseconds(), metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("outcome", outcome),
		))
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":     method,
		"status":     resp.StatusCode,
		"request_id": requestID,
	}).Debug("users endpoint responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decoding users response: %w", err)
	}

	return nil
}

func (c *Client) error(ctx context.Context, err error, msg string) error {
	c.metrics.Errors.Add(ctx, 1, metric.WithAttributes(attribute.String("component", "users-client")))
	c.log.WithError(err).Error(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

// StatusError is returned when the endpoint answers with a non-success status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("users endpoint: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

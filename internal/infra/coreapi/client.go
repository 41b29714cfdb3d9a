// Package coreapi provides the HTTP client for the brokerage platform's
// core REST API. It is the only data backend of the BFF: every read and
// mutation the views need goes through here.
package coreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/infra/observability"
	"github.com/biztech/portal-bff-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("coreapi")

// Client wraps HTTP calls to the core API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	uploads    *resilience.Bulkhead
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a core API client. baseURL is the versioned API root
// (e.g. http://localhost:3000/api/v1).
func NewClient(httpClient *http.Client, baseURL, serviceKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		serviceKey: serviceKey,
		cb:         cb,
		cfg:        cfg,
		uploads:    resilience.NewBulkhead(cfg.MaxConcurrency),
		metrics:    metrics,
		logger:     logger,
	}
}

// BaseURL returns the configured API root. Views need it to build file URLs.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// setAuth forwards the acting user's bearer token; the core API scopes
// collections to the caller. The service key authenticates the BFF itself.
func (c *Client) setAuth(ctx context.Context, req *http.Request) {
	if id := domain.IdentityFromContext(ctx); id != nil && id.Token != "" {
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}
	if c.serviceKey != "" {
		req.Header.Set("X-Service-Key", c.serviceKey)
	}
}

// coreError is the error envelope the core API returns on rejection.
type coreError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// apiError prefers the server-supplied message text over the raw body.
func apiError(method, path string, status int, body []byte) error {
	var ce coreError
	if err := json.Unmarshal(body, &ce); err == nil {
		if ce.Message != "" {
			return fmt.Errorf("core api %s %s returned %d: %s", method, path, status, ce.Message)
		}
		if ce.Error != "" {
			return fmt.Errorf("core api %s %s returned %d: %s", method, path, status, ce.Error)
		}
	}
	return fmt.Errorf("core api %s %s returned %d: %s", method, path, status, string(body))
}

// doGet executes a read against the core API with retry and the shared
// circuit breaker. Mutations never go through here: a user action fails
// once and is not replayed.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	var body []byte

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			b, err := c.doRequest(ctx, http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			body = b
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// doSend executes a mutation (POST/PATCH/PUT/DELETE) with a JSON body.
// No retry: the failure surfaces once and the caller decides what to do.
func (c *Client) doSend(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonBody)
	}
	return c.doRequest(ctx, method, path, reader)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		c.logger.Error("coreapi: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	c.setAuth(ctx, req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncrCoreError(method + " " + path)
		c.logger.Error("coreapi: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncrCoreError(method + " " + path)
		c.logger.Error("coreapi: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.ErrNotFound{Resource: "core resource", ID: path}
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncrCoreError(method + " " + path)
		c.logger.Warn("coreapi: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, apiError(method, path, resp.StatusCode, respBody)
	}

	c.logger.Debug("coreapi: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return respBody, nil
}

// decodeList unmarshals a collection response. Empty bodies decode to an
// empty (non-nil) slice so views always render an explicit empty state.
func decodeList[T any](body []byte, what string) ([]T, error) {
	if len(body) == 0 {
		return []T{}, nil
	}
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package httpx provides the authenticated HTTP client used by every gateway.

It is the single transport boundary of the toolkit: one configured base
endpoint, bearer credential injection, JSON codec, upstream error mapping,
and outbound rate limiting.

Architecture:

  - TokenSource: The session layer exposes the current access token through
    this read-only interface; httpx never stores or mutates credentials.
  - Error Mapping: Non-2xx responses become [apperr.AppError] values keyed by
    upstream status, so managers branch on codes, not status integers.
  - Pacing: A token-bucket limiter (golang.org/x/time/rate) keeps scripted
    CLI loops polite toward the storefront API.

Only this package is allowed to import net/http client primitives.
*/
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/constants"
	"github.com/minhtranvo/bidaro/internal/platform/ctxutil"
	"github.com/minhtranvo/bidaro/pkg/uuid"
)

// # Contracts & Types

// TokenSource supplies the access token attached to outgoing requests.
//
// An empty string means "send unauthenticated": the login request itself
// goes through the same client before any credential exists.
type TokenSource interface {
	AccessToken() string
}

// Client issues JSON requests against the single configured base endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	log        *slog.Logger
}

// Option customizes a [Client] during construction.
type Option func(*Client)

// WithTimeout overrides the per-request deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient swaps the underlying [*http.Client] (tests, custom transports).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRateLimit overrides the outbound requests-per-second budget.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New constructs a [Client] for the given base URL.
//
// # Parameters
//   - baseURL: Root of the storefront API (e.g. "http://localhost:3000/api").
//   - tokens: Source of the current access token. May yield "" while anonymous.
//   - logger: Structured logger for transport events.
func New(baseURL string, tokens TokenSource, logger *slog.Logger, options ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.DefaultRequestTimeout,
		},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(constants.DefaultClientRPS), constants.DefaultClientBurst),
		log:     logger,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// # Request Methods

// Get issues a GET request and decodes the JSON response body into out.
func (client *Client) Get(ctx context.Context, path string, out interface{}) error {
	return client.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (client *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return client.do(ctx, http.MethodPost, path, body, out)
}

// Delete issues a DELETE request with an optional JSON body.
//
// The cart removal endpoint expects its payload in the DELETE body, matching
// the backend's contract.
func (client *Client) Delete(ctx context.Context, path string, body, out interface{}) error {
	return client.do(ctx, http.MethodDelete, path, body, out)
}

// # Transport Core

// errorEnvelope captures the two message shapes the backend uses for failures.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

/*
do executes a single request-response cycle.

Description: Waits for the rate limiter, attaches the bearer credential and a
correlation ID, sends the request, and maps the outcome to the error taxonomy.

Parameters:
  - ctx: context.Context (deadline and cancellation boundary)
  - method: HTTP verb
  - path: Endpoint path relative to the base URL
  - body: Request payload, or nil
  - out: Response destination, or nil to discard the body

Returns:
  - error: FETCH_ERROR for transport failures, status-mapped AppError for
    upstream rejections, nil on success
*/
func (client *Client) do(ctx context.Context, method, path string, body, out interface{}) error {

	// Respect the outbound pacing budget before anything touches the wire.
	if err := client.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("httpx_rate_limit_wait_failed: %w", err)
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpx_encode_body_failed: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("httpx_build_request_failed: %w", err)
	}

	request.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	// Correlation ID: caller-supplied via context, otherwise freshly generated.
	requestID := ctxutil.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New()
	}
	request.Header.Set(constants.HeaderRequestID, requestID)

	// Attach the bearer credential when one exists.
	if token := client.tokens.AccessToken(); token != "" {
		request.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}

	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.log.Debug("api_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return apperr.Fetch(strings.TrimLeft(path, "/"), err)
	}
	defer func() { _ = response.Body.Close() }()

	client.log.Debug("api_request_completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
		slog.Int("status", response.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
	)

	if response.StatusCode >= 400 {
		return client.mapError(response)
	}

	if out == nil {
		// Drain so keep-alive connections can be reused.
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("httpx_decode_response_failed: %w", err)
	}

	return nil
}

// mapError converts a non-2xx response into a status-mapped [apperr.AppError].
func (client *Client) mapError(response *http.Response) error {
	var envelope errorEnvelope

	// Error bodies are best-effort; an empty or invalid body still maps by status.
	raw, _ := io.ReadAll(io.LimitReader(response.Body, 64*1024))
	_ = json.Unmarshal(raw, &envelope)

	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}

	return apperr.FromStatus(response.StatusCode, message)
}

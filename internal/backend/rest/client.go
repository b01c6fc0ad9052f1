package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ecclesia-backend/internal/auth"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/logger"
)

// Media types understood by the hosted REST API
const (
	mediaJSON   = "application/json"
	mediaObject = "application/vnd.pgrst.object+json"
)

// CodeNoRows is returned when a single-object request matched no rows
const CodeNoRows = "PGRST116"

// Client talks to a hosted backend exposing PostgREST-style tables under
// /rest/v1 and a GoTrue-style auth API under /auth/v1.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
}

// Options configures a Client
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient creates a new REST client
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" || opts.APIKey == "" {
		return nil, apperrors.ErrRESTConfigMissing
	}
	u, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid REST_URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, apperrors.NewConfigurationError("REST_URL must be an absolute URL")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: u, apiKey: opts.APIKey, httpClient: httpClient}, nil
}

// APIError is the error envelope returned by the hosted API
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("rest api error %s (status %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("rest api error (status %d): %s", e.Status, e.Message)
}

// BackendCode returns the backend error code
func (e *APIError) BackendCode() string { return e.Code }

// BackendMessage returns the backend error message
func (e *APIError) BackendMessage() string { return e.Message }

// rawError accepts both the table API shape and the auth API shape, whose
// code is numeric and whose message lives under msg or error_description.
type rawError struct {
	Code             json.RawMessage `json:"code"`
	ErrorCode        string          `json:"error_code"`
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
	ErrorDescription string          `json:"error_description"`
	Details          *string         `json:"details"`
	Hint             *string         `json:"hint"`
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var raw rawError
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	apiErr.Code = strings.Trim(string(raw.Code), `"`)
	if raw.ErrorCode != "" {
		apiErr.Code = raw.ErrorCode
	}
	switch {
	case raw.Message != "":
		apiErr.Message = raw.Message
	case raw.Msg != "":
		apiErr.Message = raw.Msg
	case raw.ErrorDescription != "":
		apiErr.Message = raw.ErrorDescription
	default:
		apiErr.Message = http.StatusText(status)
	}
	if raw.Details != nil {
		apiErr.Details = *raw.Details
	}
	if raw.Hint != nil {
		apiErr.Hint = *raw.Hint
	}
	return apiErr
}

type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	accept string
	prefer string
	// bearer overrides the token taken from the request context
	bearer string
}

// bearerFor forwards the caller's own token so row-level policies see the
// principal; the project key is used when there is no session.
func (c *Client) bearerFor(ctx context.Context) string {
	if p, ok := auth.PrincipalFromContext(ctx); ok && p.AccessToken != "" {
		return p.AccessToken
	}
	return c.apiKey
}

func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	bearer := r.bearer
	if bearer == "" {
		bearer = c.bearerFor(ctx)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	accept := r.accept
	if accept == "" {
		accept = mediaJSON
	}
	req.Header.Set("Accept", accept)
	if r.body != nil {
		req.Header.Set("Content-Type", mediaJSON)
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	logger.WithContext(ctx).Debugf("Invoking REST API %s %s", r.method, r.path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode REST response: %w", err)
	}
	return nil
}

// Ping checks that the table API answers with the configured project key
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodGet, path: "/rest/v1/", bearer: c.apiKey}, nil)
}

func isNoRows(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == CodeNoRows
}

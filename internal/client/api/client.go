// Package api talks to the user-management REST API. It contains the HTTP
// transport adapter and the typed auth/user facades built on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"useradmin-cli/internal/client/credentials"
	"useradmin-cli/internal/logging"
)

// Doer abstracts *http.Client so tests can substitute a stub transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the HTTP transport adapter. It attaches the persisted bearer
// credential to every request and, on a 401 from any endpoint other than the
// login exchange, clears the credential and notifies the application through
// the unauthorized hook. The hook only signals; navigation and session
// teardown are the application root's responsibility.
type Client struct {
	baseURL        string
	http           Doer
	creds          credentials.Store
	log            logging.Logger
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithUnauthorizedHook registers a callback invoked after the transport has
// cleared the credential in reaction to a 401.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New builds a Client for the API at baseURL. A trailing slash on baseURL
// is tolerated.
func New(baseURL string, creds credentials.Store, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		creds:   creds,
		log:     log.With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request issues a JSON request. A non-nil body is marshaled as JSON; a
// non-nil out receives the decoded 2xx response body. Query parameters are
// appended as given, preserving explicitly set empty values.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, query, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.attachCredential(ctx, req); err != nil {
		return err
	}

	return c.send(req, out, false)
}

// LoginForm issues the credential-exchange request: form-encoded, without a
// bearer header, and exempt from the global 401 reaction (a rejected login
// must not tear down an unrelated stored credential).
func (c *Client) LoginForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, out, true)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}

func (c *Client) attachCredential(ctx context.Context, req *http.Request) error {
	token, err := c.creds.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read credential: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) send(req *http.Request, out any, credentialExchange bool) error {
	reqID := uuid.NewString()
	log := c.log.With("request_id", reqID, "method", req.Method, "path", req.URL.Path)
	log.Debug("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("transport failure", "error", err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", "error", err)
		return &NetworkError{Err: err}
	}

	log.Debug("response received", "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized && !credentialExchange {
		c.handleUnauthorized(req.Context(), log)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// handleUnauthorized discards the stored credential and notifies the
// application. The triggering request still fails with its own AuthError;
// the two effects are deliberately uncoordinated.
func (c *Client) handleUnauthorized(ctx context.Context, log logging.Logger) {
	if err := c.creds.Clear(ctx); err != nil {
		log.Error("failed to clear credential after 401", "error", err)
	} else {
		log.Warn("credential rejected, cleared stored token")
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

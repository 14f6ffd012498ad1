package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/etuitionbd/etuition-cli/internal/common"
	"github.com/etuitionbd/etuition-cli/internal/logging"
)

// authEndpoints legitimately return 401 as a business outcome, not as a
// session expiry.
var authEndpoints = map[string]struct{}{
	"/auth/register": {},
	"/auth/login":    {},
	"/auth/me":       {},
}

func isAuthEndpoint(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	_, ok := authEndpoints[path]
	return ok
}

// HTTPClient is the concrete Client over net/http. A session-expiry
// handler can be injected after construction; it is invoked at most once
// per request because the client never retries after an authorization
// failure, so the expiry path cannot loop.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger

	mu        sync.Mutex
	onExpired func()
}

func NewHTTPClient(baseURL string, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		log:     log,
	}
}

// SetSessionExpiredHandler installs the hook invoked when a non-auth
// request receives a 401. The router owns the hook: it shows a notice and
// navigates to the login page unless an auth page is already current.
func (c *HTTPClient) SetSessionExpiredHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = fn
}

func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Load(ctx)
	if err != nil {
		c.log.Warn(ctx, "token load failed, sending request unauthenticated", "error", err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if isAuthEndpoint(path) {
			// Business 401 from the auth endpoints: propagate, keep the token.
			return fmt.Errorf("%s: %w", serverMessage(resp), common.ErrCredential)
		}
		c.expireSession(ctx)
		return fmt.Errorf("%s %s: %w", method, path, common.ErrSessionExpired)
	}

	if err := mapStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// expireSession deletes the persisted token and fires the injected hook.
// The current-page check and the delayed navigation live in the hook.
func (c *HTTPClient) expireSession(ctx context.Context) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear token after 401", "error", err)
	}

	c.mu.Lock()
	fn := c.onExpired
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %w", serverMessage(resp), common.ErrValidation)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", serverMessage(resp), common.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", serverMessage(resp), common.ErrServer)
	}
}

// serverMessage extracts the backend's "message" field when present,
// falling back to the HTTP status text.
func serverMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(data) > 0 {
		var eb struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &eb) == nil && eb.Message != "" {
			return eb.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

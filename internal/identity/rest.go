package identity

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

	"github.com/golang-jwt/jwt/v5"

	"github.com/etuitionbd/etuition-cli/internal/common"
	"github.com/etuitionbd/etuition-cli/internal/logging"
	"github.com/etuitionbd/etuition-cli/internal/models"
)

// RESTProvider talks JSON over HTTPS to the identity provider. Successful
// sign-in/sign-up persists the returned ID token and notifies auth-state
// listeners synchronously before the call returns.
type RESTProvider struct {
	baseURL    string
	apiKey     string
	listenAddr string
	http       *http.Client
	tokens     TokenStore
	log        logging.Logger

	mu        sync.Mutex
	current   *models.Profile
	listeners map[int]func(*models.Profile)
	nextID    int
}

func NewRESTProvider(baseURL, apiKey, listenAddr string, tokens TokenStore, log logging.Logger) *RESTProvider {
	return &RESTProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		listenAddr: listenAddr,
		http:       &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		log:        log,
		listeners:  make(map[int]func(*models.Profile)),
	}
}

// authResponse is the provider's reply to sign-up, sign-in, and OAuth
// code exchange.
type authResponse struct {
	IDToken string `json:"idToken"`
	User    struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		PhotoURL    string `json:"photoUrl"`
	} `json:"user"`
}

func (r *authResponse) profile() *models.Profile {
	return &models.Profile{
		ID:          r.User.ID,
		Email:       r.User.Email,
		DisplayName: r.User.DisplayName,
		PhotoURL:    r.User.PhotoURL,
	}
}

// OnAuthStateChanged registers cb for auth-state notifications and returns
// a cancellable handle. If state was already restored, cb is invoked
// immediately with the current value.
func (p *RESTProvider) OnAuthStateChanged(cb func(*models.Profile)) *ListenerHandle {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = cb
	p.mu.Unlock()

	return &ListenerHandle{cancel: func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}}
}

// setState records the new auth state and notifies listeners.
func (p *RESTProvider) setState(profile *models.Profile) {
	p.mu.Lock()
	p.current = profile
	cbs := make([]func(*models.Profile), 0, len(p.listeners))
	for _, cb := range p.listeners {
		cbs = append(cbs, cb)
	}
	p.mu.Unlock()

	for _, cb := range cbs {
		cb(profile)
	}
}

// Start restores the auth state from the persisted token. A parseable,
// unexpired token yields a signed-in profile built from its claims; an
// expired or unreadable token is cleared. Either way the initial
// auth-state callback fires before Start returns.
func (p *RESTProvider) Start(ctx context.Context) error {
	token, err := p.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if token == "" {
		p.setState(nil)
		return nil
	}

	profile, err := profileFromToken(token)
	if err != nil {
		p.log.Warn(ctx, "persisted token unusable, clearing", "error", err)
		if cerr := p.tokens.Clear(ctx); cerr != nil {
			return cerr
		}
		p.setState(nil)
		return nil
	}

	p.setState(profile)
	return nil
}

// profileFromToken extracts identity fields from the ID token's claims.
// The signature is not verified here; the backend verifies it on every
// request, the client only needs the claims and the expiry.
func profileFromToken(token string) (*models.Profile, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp != nil && exp.Before(time.Now()) {
		return nil, fmt.Errorf("token expired at %s", exp)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	profile := &models.Profile{ID: sub}
	if v, ok := claims["email"].(string); ok {
		profile.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		profile.DisplayName = v
	}
	if v, ok := claims["picture"].(string); ok {
		profile.PhotoURL = v
	}
	return profile, nil
}

func (p *RESTProvider) SignUp(ctx context.Context, email, password, displayName string) (*models.Profile, error) {
	var resp authResponse
	err := p.post(ctx, "/accounts/signup", map[string]string{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	}, &resp, "")
	if err != nil {
		return nil, err
	}
	return p.completeSignIn(ctx, &resp)
}

func (p *RESTProvider) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	var resp authResponse
	err := p.post(ctx, "/accounts/signin", map[string]string{
		"email":    email,
		"password": password,
	}, &resp, "")
	if err != nil {
		return nil, err
	}
	return p.completeSignIn(ctx, &resp)
}

// completeSignIn persists the token, updates state, and notifies listeners.
func (p *RESTProvider) completeSignIn(ctx context.Context, resp *authResponse) (*models.Profile, error) {
	if err := p.tokens.Save(ctx, resp.IDToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	profile := resp.profile()
	p.setState(profile)
	return profile, nil
}

// SignOut ends the session. It is idempotent: signing out while anonymous
// is a no-op. The remote revocation is best effort; local state is cleared
// regardless.
func (p *RESTProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	signedIn := p.current != nil
	p.mu.Unlock()

	token, err := p.tokens.Load(ctx)
	if err != nil {
		return err
	}
	if !signedIn && token == "" {
		return nil
	}

	if token != "" {
		if err := p.post(ctx, "/accounts/signout", nil, nil, token); err != nil {
			p.log.Warn(ctx, "remote sign-out failed", "error", err)
		}
	}

	if err := p.tokens.Clear(ctx); err != nil {
		return err
	}
	p.setState(nil)
	return nil
}

func (p *RESTProvider) UpdateDisplayName(ctx context.Context, displayName string) error {
	token, err := p.tokens.Load(ctx)
	if err != nil {
		return err
	}
	if err := p.post(ctx, "/accounts/profile", map[string]string{"displayName": displayName}, nil, token); err != nil {
		return err
	}

	p.mu.Lock()
	if p.current != nil {
		updated := *p.current
		updated.DisplayName = displayName
		p.current = &updated
	}
	p.mu.Unlock()
	return nil
}

// UpdatePassword requires re-authentication: the current password is
// verified through a fresh sign-in before the change is submitted.
func (p *RESTProvider) UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if _, err := p.SignIn(ctx, email, currentPassword); err != nil {
		return err
	}

	token, err := p.tokens.Load(ctx)
	if err != nil {
		return err
	}
	return p.post(ctx, "/accounts/password", map[string]string{"password": newPassword}, nil, token)
}

// post sends a JSON request to the provider. The API key rides along as a
// query parameter; bearer is set when a token is supplied.
func (p *RESTProvider) post(ctx context.Context, path string, body, out any, bearer string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	url := p.baseURL + path
	if p.apiKey != "" {
		url += "?key=" + p.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+bearer)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider: %w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", providerMessage(resp), common.ErrCredential)
	default:
		return fmt.Errorf("%s: %w", providerMessage(resp), common.ErrServer)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func providerMessage(resp *http.Response) string {
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

package identity

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/etuitionbd/etuition-cli/internal/models"
)

// openBrowser is a test seam. The default prints the authorization URL for
// the user to open manually; a desktop build could exec a browser instead.
var openBrowser = func(url string) error {
	fmt.Printf("Open this URL in your browser to continue:\n%s\n", url)
	return nil
}

// FederatedSignIn runs the provider-driven Google sign-in flow: it starts
// a loopback HTTP server to catch the OAuth redirect, sends the user to
// the provider's authorization page, exchanges the returned code for an
// ID token, and completes the sign-in exactly like SignIn does.
func (p *RESTProvider) FederatedSignIn(ctx context.Context) (*models.Profile, error) {
	ln, err := net.Listen("tcp", p.listenAddr)
	if err != nil {
		return nil, fmt.Errorf("start loopback listener: %w", err)
	}

	codeCh := make(chan string, 1)

	r := chi.NewRouter()
	r.Get("/callback", func(w http.ResponseWriter, req *http.Request) {
		code := req.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Sign-in complete. You may close this window.")
		select {
		case codeCh <- code:
		default:
		}
	})

	srv := &http.Server{Handler: r}
	go func() { _ = srv.Serve(ln) }()
	defer func() { _ = srv.Shutdown(context.Background()) }()

	redirectURI := fmt.Sprintf("http://%s/callback", ln.Addr().String())
	authorizeURL := fmt.Sprintf("%s/oauth/authorize?provider=google&redirect_uri=%s", p.baseURL, redirectURI)
	if p.apiKey != "" {
		authorizeURL += "&key=" + p.apiKey
	}

	if err := openBrowser(authorizeURL); err != nil {
		return nil, err
	}

	var code string
	select {
	case code = <-codeCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var resp authResponse
	if err := p.post(ctx, "/oauth/token", map[string]string{"code": code}, &resp, ""); err != nil {
		return nil, err
	}
	return p.completeSignIn(ctx, &resp)
}

package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFederatedSignIn_LoopbackFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		_, _ = w.Write([]byte(authResponseJSON("uid-g", "g@gmail.com", "Google User")))
	}))
	defer srv.Close()

	tokens := &memTokens{}
	p := newProvider(srv.URL, tokens)

	// Simulate the browser: parse redirect_uri out of the authorization URL
	// and hit the loopback callback with a code.
	orig := openBrowser
	openBrowser = func(authorizeURL string) error {
		u, err := url.Parse(authorizeURL)
		if err != nil {
			return err
		}
		redirect := u.Query().Get("redirect_uri")
		go func() {
			// tiny retry window until the loopback server accepts
			for i := 0; i < 50; i++ {
				resp, err := http.Get(redirect + "?code=abc123")
				if err == nil {
					resp.Body.Close()
					return
				}
				time.Sleep(10 * time.Millisecond)
			}
		}()
		return nil
	}
	defer func() { openBrowser = orig }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := p.FederatedSignIn(ctx)
	require.NoError(t, err)
	require.Equal(t, "uid-g", profile.ID)
	require.Equal(t, "idtok-uid-g", tokens.token)
}

func TestFederatedSignIn_ContextCancelled(t *testing.T) {
	p := newProvider("http://unused", &memTokens{})

	orig := openBrowser
	openBrowser = func(string) error { return nil } // browser never completes
	defer func() { openBrowser = orig }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.FederatedSignIn(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

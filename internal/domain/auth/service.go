package auth

import (
	"context"
	"net/http"
)

// TokenPair bundles an access token with the refresh cookie to set.
type TokenPair struct {
	Access        TokenResponse
	RefreshCookie *http.Cookie
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*TokenPair, error)
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	// GoogleAuthURL returns the OAuth redirect URL and the state to pin in
	// a cookie.
	GoogleAuthURL(ctx context.Context) (url string, state string, err error)
	// GoogleCallback exchanges the authorization code, provisioning the
	// user on first login.
	GoogleCallback(ctx context.Context, code string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	// StreamToken mints a short-lived token for SSE connections.
	StreamToken(ctx context.Context) (*StreamTokenResponse, error)
}

package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// TokenRefresher exchanges refresh tokens for new access tokens.
type TokenRefresher struct {
	config  *oauth2.Config
	limiter *rate.Limiter
	timeout time.Duration
}

// NewTokenRefresher creates a refresher for the given client. tokenURL
// overrides Google's token endpoint when non-empty.
func NewTokenRefresher(creds ClientCredentials, tokenURL string, limiter *rate.Limiter, timeout time.Duration) *TokenRefresher {
	cfg := creds.OAuthConfig()
	if tokenURL != "" {
		cfg.Endpoint.TokenURL = tokenURL
	}
	return &TokenRefresher{config: cfg, limiter: limiter, timeout: timeout}
}

// Refresh performs one refresh exchange.
func (r *TokenRefresher) Refresh(ctx context.Context, refreshToken string) (*RefreshedToken, error) {
	if r.config.ClientID == "" || r.config.ClientSecret == "" {
		return nil, ErrNoClientCredentials
	}
	if refreshToken == "" {
		return nil, errors.New("empty refresh token")
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := wait(ctx, r.limiter); err != nil {
		return nil, err
	}

	// Токен без access_token считается невалидным, поэтому TokenSource сразу идёт в refresh
	tok, err := r.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token exchange: %w", err)
	}

	return &RefreshedToken{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("provider rate limit: %w", err)
	}
	return nil
}

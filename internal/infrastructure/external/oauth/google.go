package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/johnquangdev/meet-agent/pkg/config"
)

// CalendarScope grants read/write access to the user's calendars
const CalendarScope = "https://www.googleapis.com/auth/calendar"

// GoogleProvider handles the Google OAuth2 consent flow for calendar access
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider creates a new Google OAuth provider
func NewGoogleProvider(cfg *config.CalendarConfig) *GoogleProvider {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{CalendarScope},
		Endpoint:     google.Endpoint,
	}

	return &GoogleProvider{
		config: oauthConfig,
	}
}

// GetAuthURL returns the OAuth authorization URL.
// Offline access with forced consent makes Google issue a refresh token every time.
func (g *GoogleProvider) GetAuthURL(state string) string {
	return g.config.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode exchanges the authorization code for tokens
func (g *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

// TokenSource returns a source that refreshes access tokens as they expire
func (g *GoogleProvider) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return g.config.TokenSource(ctx, token)
}

// RefreshTokenSource builds a token source from a stored refresh token alone
func (g *GoogleProvider) RefreshTokenSource(ctx context.Context, refreshToken string) oauth2.TokenSource {
	return g.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
}

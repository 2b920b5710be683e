package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	ucerrors "github.com/johnquangdev/meet-agent/internal/usecase/errors"
)

// Provider runs the OAuth consent flow
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource
	RefreshTokenSource(ctx context.Context, refreshToken string) oauth2.TokenSource
}

// StateManager issues one-time CSRF state tokens
type StateManager interface {
	GenerateState(ctx context.Context) (string, error)
	ValidateState(ctx context.Context, state string) bool
}

// Connectable receives the token source once consent is granted
type Connectable interface {
	Connect(ts oauth2.TokenSource)
	Connected() bool
}

// AuthURL is where the user grants calendar access
type AuthURL struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// CalendarConnector links the calendar client to a Google account
type CalendarConnector struct {
	google       Provider
	stateManager StateManager
	calendar     Connectable
	logger       *zap.Logger
}

// NewCalendarConnector creates a new calendar connector. A nil provider disables it.
func NewCalendarConnector(google Provider, stateManager StateManager, calendar Connectable, logger *zap.Logger) *CalendarConnector {
	return &CalendarConnector{
		google:       google,
		stateManager: stateManager,
		calendar:     calendar,
		logger:       logger,
	}
}

// Available reports whether the consent flow can run
func (s *CalendarConnector) Available() bool {
	return s.google != nil && s.calendar != nil
}

// Connected reports whether the calendar holds credentials
func (s *CalendarConnector) Connected() bool {
	return s.calendar != nil && s.calendar.Connected()
}

// GetAuthURL generates the Google consent URL
func (s *CalendarConnector) GetAuthURL(ctx context.Context) (*AuthURL, error) {
	if !s.Available() {
		return nil, ucerrors.ErrCalendarUnavailable
	}

	state, err := s.stateManager.GenerateState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	return &AuthURL{
		URL:   s.google.GetAuthURL(state),
		State: state,
	}, nil
}

// HandleCallback validates state, exchanges the code and connects the calendar.
// The token source outlives the request, so it is bound to a background context.
func (s *CalendarConnector) HandleCallback(ctx context.Context, state, code string) error {
	if !s.Available() {
		return ucerrors.ErrCalendarUnavailable
	}
	if !s.stateManager.ValidateState(ctx, state) {
		return ucerrors.ErrInvalidOAuthState
	}
	if code == "" {
		return fmt.Errorf("%w: authorization code is required", ucerrors.ErrInvalidInput)
	}

	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	s.calendar.Connect(s.google.TokenSource(context.Background(), token))

	if s.logger != nil {
		s.logger.Info("🔑 Calendar consent granted", zap.Bool("refresh_token", token.RefreshToken != ""))
	}
	return nil
}

// ConnectStored connects the calendar from a configured refresh token
func (s *CalendarConnector) ConnectStored(refreshToken string) bool {
	if !s.Available() || refreshToken == "" {
		return false
	}
	s.calendar.Connect(s.google.RefreshTokenSource(context.Background(), refreshToken))
	return true
}

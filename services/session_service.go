package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/meveto/meveto-go-sdk/authenticator"
	"github.com/meveto/meveto-go-sdk/models"
)

// ErrMissingUserID is returned when the resource owner payload carries no user
var ErrMissingUserID = errors.New("resource owner payload has no user identifier")

// ErrInvalidWebhookEvent is returned for webhook events missing a type or user token
var ErrInvalidWebhookEvent = errors.New("invalid webhook event")

// UserDirectory records the Meveto login state of local users
type UserDirectory interface {
	RecordLogin(ctx context.Context, userID string) error
	RecordLogout(ctx context.Context, userID string) error
	IsLoggedIn(ctx context.Context, userID string) (bool, error)
}

// SessionObserver receives directory and webhook outcomes
type SessionObserver interface {
	RecordDirectoryOperation(operation string, err error)
	RecordWebhookEvent(eventType, status string)
}

// MevetoFactory creates a MevetoService for a single login flow
type MevetoFactory func() (*MevetoService, error)

// LoginResult is the outcome of a completed login
type LoginResult struct {
	UserID  string
	Payload authenticator.ResourceOwner
	Token   authenticator.TokenBundle
}

// WebhookResult is the outcome of a handled webhook event
type WebhookResult struct {
	DeliveryID string
	UserID     string
	Handled    bool
}

// SessionService drives login, logout and webhook bookkeeping
type SessionService interface {
	StartLogin(state, clientToken, sharingToken string) (string, error)
	CompleteLogin(ctx context.Context, code string) (*LoginResult, error)
	Logout(ctx context.Context, userID string) error
	IsLoggedIn(ctx context.Context, userID string) (bool, error)
	HandleWebhook(ctx context.Context, event models.WebhookEvent) (*WebhookResult, error)
}

// sessionService implements SessionService
type sessionService struct {
	newMeveto MevetoFactory
	directory UserDirectory
	observer  SessionObserver
	logger    *slog.Logger
}

// SessionOption configures the session service
type SessionOption func(*sessionService)

// WithSessionLogger sets the logger
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *sessionService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionObserver registers an observer for directory and webhook outcomes
func WithSessionObserver(o SessionObserver) SessionOption {
	return func(s *sessionService) {
		s.observer = o
	}
}

// NewSessionService creates a new session service
func NewSessionService(newMeveto MevetoFactory, directory UserDirectory, opts ...SessionOption) SessionService {
	s := &sessionService{
		newMeveto: newMeveto,
		directory: directory,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// StartLogin sets state on a fresh service and returns the authorization URL
func (s *sessionService) StartLogin(state, clientToken, sharingToken string) (string, error) {
	meveto, err := s.newMeveto()
	if err != nil {
		return "", fmt.Errorf("failed to create meveto service: %w", err)
	}

	if err := meveto.SetState(state); err != nil {
		return "", err
	}

	return meveto.Login(clientToken, sharingToken)
}

// CompleteLogin exchanges the authorization code, fetches the resource owner
// and records the login of the Meveto user
func (s *sessionService) CompleteLogin(ctx context.Context, code string) (*LoginResult, error) {
	meveto, err := s.newMeveto()
	if err != nil {
		return nil, fmt.Errorf("failed to create meveto service: %w", err)
	}

	token, err := meveto.GetAccessToken(ctx, code)
	if err != nil {
		return nil, err
	}

	payload, err := meveto.GetResourceOwnerData(ctx, token.AccessToken())
	if err != nil {
		return nil, err
	}

	userID := strings.TrimSpace(payload.UserID())
	if userID == "" {
		return nil, ErrMissingUserID
	}

	err = s.directory.RecordLogin(ctx, userID)
	s.recordDirectory("login", err)
	if err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in with meveto", slog.String("user_id", userID))

	return &LoginResult{
		UserID:  userID,
		Payload: payload,
		Token:   token,
	}, nil
}

// Logout records the logout of userID
func (s *sessionService) Logout(ctx context.Context, userID string) error {
	err := s.directory.RecordLogout(ctx, userID)
	s.recordDirectory("logout", err)
	if err != nil {
		return fmt.Errorf("failed to record logout: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out", slog.String("user_id", userID))
	return nil
}

// IsLoggedIn reports whether the directory still considers userID logged in
func (s *sessionService) IsLoggedIn(ctx context.Context, userID string) (bool, error) {
	return s.directory.IsLoggedIn(ctx, userID)
}

// HandleWebhook processes a Meveto webhook event. Only user logout events
// are acted upon; other types are reported as not handled.
func (s *sessionService) HandleWebhook(ctx context.Context, event models.WebhookEvent) (*WebhookResult, error) {
	result := &WebhookResult{DeliveryID: event.DeliveryID}
	if result.DeliveryID == "" {
		result.DeliveryID = uuid.NewString()
	}

	logger := s.logger.With(
		slog.String("delivery_id", result.DeliveryID),
		slog.String("event_type", event.Type),
	)

	if errs := event.Validate(); len(errs) > 0 {
		logger.WarnContext(ctx, "rejecting invalid webhook event", slog.Any("errors", errs))
		s.recordWebhook(event.Type, "invalid")
		return nil, fmt.Errorf("%w: %s", ErrInvalidWebhookEvent, strings.Join(errs, ", "))
	}

	if event.Type != models.EventUserLoggedOut {
		logger.InfoContext(ctx, "ignoring webhook event")
		s.recordWebhook(event.Type, "ignored")
		return result, nil
	}

	meveto, err := s.newMeveto()
	if err != nil {
		s.recordWebhook(event.Type, "error")
		return nil, fmt.Errorf("failed to create meveto service: %w", err)
	}

	userID, err := meveto.GetTokenUser(ctx, event.UserToken)
	if err != nil {
		logger.WarnContext(ctx, "failed to resolve webhook user", slog.String("error", err.Error()))
		s.recordWebhook(event.Type, "error")
		return nil, err
	}

	if err := s.Logout(ctx, userID); err != nil {
		s.recordWebhook(event.Type, "error")
		return nil, err
	}

	logger.InfoContext(ctx, "webhook logout applied", slog.String("user_id", userID))
	s.recordWebhook(event.Type, "handled")

	result.UserID = userID
	result.Handled = true
	return result, nil
}

func (s *sessionService) recordDirectory(operation string, err error) {
	if s.observer != nil {
		s.observer.RecordDirectoryOperation(operation, err)
	}
}

func (s *sessionService) recordWebhook(eventType, status string) {
	if s.observer != nil {
		s.observer.RecordWebhookEvent(eventType, status)
	}
}

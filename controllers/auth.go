package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/meveto/meveto-go-sdk/authenticator"
	"github.com/meveto/meveto-go-sdk/middleware"
	"github.com/meveto/meveto-go-sdk/repositories"
	"github.com/meveto/meveto-go-sdk/services"
)

// AuthController handles the Meveto login flow
type AuthController struct {
	services    *services.Services
	logger      *slog.Logger
	stateLength int
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services, logger *slog.Logger, stateLength int) *AuthController {
	if stateLength <= 0 {
		stateLength = authenticator.DefaultStateLength
	}
	return &AuthController{
		services:    services,
		logger:      logger,
		stateLength: stateLength,
	}
}

// Login handles GET /login and redirects to the Meveto authorization page.
// The optional client_token and sharing_token query parameters are
// forwarded to Meveto.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	// Generate random state
	state, err := generateRandomState(ac.stateLength)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	loginURL, err := ac.services.Session.StartLogin(state, query.Get("client_token"), query.Get("sharing_token"))
	if err != nil {
		ac.logger.ErrorContext(r.Context(), "failed to build login url", slog.String("error", err.Error()))
		http.Error(w, "Failed to start login: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	sess.Set(middleware.SessionStateKey, state)

	// Redirect to Meveto login page
	http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
}

// Callback handles GET /callback from Meveto
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	// Get session
	sess := session.GetSession(r)

	// Verify state
	storedState, _ := sess.Get(middleware.SessionStateKey).(string)
	if storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("state") != storedState {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	// Clear the state from session
	sess.Delete(middleware.SessionStateKey)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	// Exchange the code and record the login
	result, err := ac.services.Session.CompleteLogin(r.Context(), code)
	if err != nil {
		ac.logger.WarnContext(r.Context(), "meveto login failed", slog.String("error", err.Error()))
		http.Error(w, "Failed to complete login: "+err.Error(), loginErrorStatus(err))
		return
	}

	// Store the user session, falling back to the user id as display name
	sess.Set(middleware.SessionUserIDKey, result.UserID)
	displayName := result.UserID
	if email, ok := result.Payload["email"].(string); ok && email != "" {
		displayName = email
	}
	sess.Set(middleware.SessionDisplayNameKey, displayName)

	redirect := "/"
	if target, ok := sess.Get(middleware.SessionRedirectKey).(string); ok && target != "" {
		redirect = target
		sess.Delete(middleware.SessionRedirectKey)
	}

	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// Logout handles GET /logout
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)

	if userID, ok := sess.Get(middleware.SessionUserIDKey).(string); ok && userID != "" {
		err := ac.services.Session.Logout(r.Context(), userID)
		if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
			http.Error(w, "Failed to logout: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	sess.Delete(middleware.SessionUserIDKey)
	sess.Delete(middleware.SessionDisplayNameKey)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginErrorStatus maps a login failure to a response status
func loginErrorStatus(err error) int {
	switch authenticator.KindOf(err) {
	case authenticator.KindClientNotFound, authenticator.KindClientError,
		authenticator.KindNotAuthenticated, authenticator.KindNotAuthorized:
		return http.StatusUnauthorized
	case "":
		if errors.Is(err, services.ErrMissingUserID) {
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// generateRandomState generates a random state value for CSRF protection
// that is at least minLength characters long
func generateRandomState(minLength int) (string, error) {
	b := make([]byte, minLength)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

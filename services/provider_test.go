package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/meveto/meveto-go-sdk/authenticator"
)

const (
	testAccessToken = "tok-123"
	testMevetoUser  = "meveto-42"
)

// fakeProvider serves the Meveto token, resource and event user endpoints
type fakeProvider struct {
	server   *httptest.Server
	users    map[string]string
	requests atomic.Int64
}

func newFakeProvider(t *testing.T) *fakeProvider {
	p := &fakeProvider{
		users: map[string]string{"event-token": testMevetoUser},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.PostForm.Get("code") {
		case "bad-client":
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid_client"})
		case "expired":
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant", "error_description": "code expired"})
		default:
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token": testAccessToken,
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		}
	})
	mux.HandleFunc("GET /api/client/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testAccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"payload": map[string]any{"user": testMevetoUser, "email": "jane@example.com"},
		})
	})
	mux.HandleFunc("GET /api/client/user-for-token", func(w http.ResponseWriter, r *http.Request) {
		user, ok := p.users[r.URL.Query().Get("token")]
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"status": "Invalid_User_Token", "message": "token is not valid"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "Token_User_Retrieved",
			"payload": map[string]any{"user": user},
		})
	})

	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(p.server.Close)

	return p
}

func (p *fakeProvider) config() map[string]any {
	return map[string]any{
		authenticator.KeyID:            "client-1",
		authenticator.KeySecret:        "s3cret",
		authenticator.KeyRedirectURL:   "https://app.example.com/callback",
		authenticator.KeyAuthEndpoint:  p.server.URL + "/oauth-client",
		authenticator.KeyTokenEndpoint: p.server.URL + "/oauth/token",
	}
}

func (p *fakeProvider) endpoints() Endpoints {
	return Endpoints{
		Resource:  p.server.URL + "/api/client/user",
		Alias:     p.server.URL + "/api/client/user/alias",
		EventUser: p.server.URL + "/api/client/user-for-token",
	}
}

// factory returns a MevetoFactory talking to the fake provider
func (p *fakeProvider) factory() MevetoFactory {
	return func() (*MevetoService, error) {
		return NewMevetoService(p.config(), "web",
			WithHTTPClient(authenticator.NewHTTPClient(p.server.Client())),
			WithEndpoints(p.endpoints()),
		)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

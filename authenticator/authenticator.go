package authenticator

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// Architecture is the integration mode of the client application
type Architecture string

const (
	ArchitectureWeb  Architecture = "web"
	ArchitectureREST Architecture = "rest"
)

// DefaultArchitecture is used until SetArchitecture is called
const DefaultArchitecture = ArchitectureWeb

// SupportedArchitectures returns the accepted architecture values
func SupportedArchitectures() []string {
	return []string{string(ArchitectureWeb), string(ArchitectureREST)}
}

// Default provider URLs
const (
	DefaultAuthEndpoint      = "https://dashboard.meveto.com/oauth-client"
	DefaultTokenEndpoint     = "https://prod.meveto.com/oauth/token"
	DefaultResourceEndpoint  = "https://prod.meveto.com/api/client/user"
	DefaultAliasEndpoint     = "https://prod.meveto.com/api/client/user/alias"
	DefaultEventUserEndpoint = "https://prod.meveto.com/api/client/user-for-token"
)

// DefaultScope is requested when no scope is configured
const DefaultScope = "default-client-access"

// DefaultStateLength is the default minimum length of the state value
const DefaultStateLength = 128

// Configuration keys
const (
	KeyID            = "id"
	KeySecret        = "secret"
	KeyRedirectURL   = "redirect_url"
	KeyScope         = "scope"
	KeyState         = "state"
	KeyAuthEndpoint  = "authEndpoint"
	KeyTokenEndpoint = "tokenEndpoint"
)

// Provider status values
const (
	statusAliasAdded           = "Alias_Added_Successfully"
	statusInputValidation      = "Input_Data_Validation_Failed"
	statusTokenUserRetrieved   = "Token_User_Retrieved"
	statusInvalidUserToken     = "Invalid_User_Token"
	errorInvalidClient         = "invalid_client"
	emptyPayloadDescription    = "Empty payload"
	tokenRetrievalErrorMessage = "Error retrieving token."
)

// TokenBundle is the parsed token endpoint response, passed through verbatim
type TokenBundle map[string]any

// AccessToken returns the access_token field
func (t TokenBundle) AccessToken() string {
	s, _ := t["access_token"].(string)
	return s
}

// RefreshToken returns the refresh_token field
func (t TokenBundle) RefreshToken() string {
	s, _ := t["refresh_token"].(string)
	return s
}

// ExpiresIn returns the expires_in field in seconds, or 0 if absent
func (t TokenBundle) ExpiresIn() int64 {
	switch v := t["expires_in"].(type) {
	case json.Number:
		n, _ := v.Int64()
		return n
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// OAuth2Token converts the bundle into an oauth2.Token. All fields of the
// bundle stay available through Extra.
func (t TokenBundle) OAuth2Token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken(),
		RefreshToken: t.RefreshToken(),
	}
	if tt, ok := t["token_type"].(string); ok {
		tok.TokenType = tt
	}
	if exp := t.ExpiresIn(); exp > 0 {
		tok.Expiry = time.Now().Add(time.Duration(exp) * time.Second)
	}
	return tok.WithExtra(map[string]any(t))
}

// ResourceOwner is the provider payload describing the authenticated user
type ResourceOwner map[string]any

// UserID returns the Meveto user identifier, empty if the scope did not
// include it
func (r ResourceOwner) UserID() string {
	return stringField(r, "user")
}

// Provider abstracts the Meveto OAuth operations
type Provider interface {
	BuildLoginURL(clientToken, sharingToken string) (string, error)
	ExchangeCode(ctx context.Context, authCode string) (TokenBundle, error)
	FetchResourceOwner(ctx context.Context, accessToken string) (ResourceOwner, error)
	LinkLocalIdentity(ctx context.Context, accessToken, localUserID string) (bool, error)
	ResolveUserForToken(ctx context.Context, userToken string) (string, error)
}

package authenticator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/stretchr/testify/mock"
)

// MockHTTPClient is a testify mock of HTTPClient
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Get(ctx context.Context, endpoint string, query url.Values, headers http.Header) (*Response, error) {
	args := m.Called(ctx, endpoint, query, headers)
	resp, _ := args.Get(0).(*Response)
	return resp, args.Error(1)
}

func (m *MockHTTPClient) Post(ctx context.Context, endpoint string, form url.Values, headers http.Header) (*Response, error) {
	args := m.Called(ctx, endpoint, form, headers)
	resp, _ := args.Get(0).(*Response)
	return resp, args.Error(1)
}

// jsonResponse builds a Response with body marshalled from v
func jsonResponse(status int, v any) *Response {
	body, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return &Response{StatusCode: status, Header: http.Header{}, Body: body}
}

// rawResponse builds a Response with a literal body
func rawResponse(status int, body string) *Response {
	return &Response{StatusCode: status, Header: http.Header{}, Body: []byte(body)}
}

// validConfig is a complete configuration accepted by MergeConfig
func validConfig() map[string]any {
	return map[string]any{
		KeyID:            "client-id",
		KeySecret:        "client-secret",
		KeyRedirectURL:   "https://app.example.com/callback",
		KeyAuthEndpoint:  "https://auth.example.com/oauth-client",
		KeyTokenEndpoint: "https://api.example.com/oauth/token",
	}
}

// randomState returns a state value of n characters
func randomState(n int) string {
	return strings.Repeat("s", n)
}

// newConfiguredClient returns a Client with validConfig merged and
// test endpoints set
func newConfiguredClient(h HTTPClient) *Client {
	c := NewClient(WithHTTPClient(h))
	if _, err := c.MergeConfig(validConfig()); err != nil {
		panic(err)
	}
	c.SetResourceEndpoint("https://api.example.com/user")
	c.SetAliasEndpoint("https://api.example.com/user/alias")
	c.SetEventUserEndpoint("https://api.example.com/user-for-token")
	return c
}

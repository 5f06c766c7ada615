package authenticator

import (
	"net/url"
	"strings"
)

// queryParam is a single ordered query parameter
type queryParam struct {
	key   string
	value string
}

// BuildLoginURL returns the provider authorization URL the user should be
// redirected to. clientToken and sharingToken are optional one-time tokens
// and are only included when non-empty. The stored state is not consumed.
func (c *Client) BuildLoginURL(clientToken, sharingToken string) (string, error) {
	state := c.State()
	if state == "" {
		return "", stateNotSet()
	}

	params := []queryParam{
		{"client_id", c.configString(KeyID)},
		{"scope", c.configString(KeyScope)},
		{"response_type", "code"},
		{"redirect_uri", c.configString(KeyRedirectURL)},
		{"state", state},
	}

	if clientToken != "" {
		params = append(params, queryParam{"client_token", clientToken})
	}

	if sharingToken != "" {
		params = append(params, queryParam{"sharing_token", sharingToken})
	}

	return c.configString(KeyAuthEndpoint) + "?" + encodeOrdered(params), nil
}

// encodeOrdered encodes params keeping their order, unlike url.Values.Encode
// which sorts by key
func encodeOrdered(params []queryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

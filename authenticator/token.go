package authenticator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// ExchangeCode exchanges an authorization code for an access token bundle.
// The provider response is returned verbatim on success.
func (c *Client) ExchangeCode(ctx context.Context, authCode string) (bundle TokenBundle, err error) {
	started := time.Now()
	defer func() { c.observe(ctx, "exchange_code", started, err) }()

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.configString(KeyID))
	form.Set("client_secret", c.configString(KeySecret))
	form.Set("redirect_uri", c.configString(KeyRedirectURL))
	form.Set("code", authCode)

	resp, err := c.http.Post(ctx, c.configString(KeyTokenEndpoint), form, jsonHeaders(""))
	if err != nil {
		return nil, err
	}

	content, err := decodeContent(resp)
	if err != nil {
		return nil, err
	}

	if hasError(content) {
		if stringField(content, "error") == errorInvalidClient {
			return nil, clientNotFound()
		}
		return nil, clientError(stringField(content, "error_description"))
	}

	return TokenBundle(content), nil
}

// jsonHeaders builds the Accept header and, when accessToken is not empty,
// the bearer Authorization header
func jsonHeaders(accessToken string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	if accessToken != "" {
		tok := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
		h.Set("Authorization", tok.Type()+" "+tok.AccessToken)
	}
	return h
}

// decodeContent parses a provider response body as a JSON object
func decodeContent(resp *Response) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()

	var content map[string]any
	if err := dec.Decode(&content); err != nil {
		return nil, clientError(fmt.Sprintf("invalid response body (status %d): %v", resp.StatusCode, err))
	}
	if content == nil {
		return nil, clientError(fmt.Sprintf("invalid response body (status %d): not a JSON object", resp.StatusCode))
	}

	return content, nil
}

// hasError reports whether the provider set a non-null error field
func hasError(content map[string]any) bool {
	v, ok := content["error"]
	return ok && v != nil
}

// stringField returns content[key] as a string
func stringField(content map[string]any, key string) string {
	switch v := content[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

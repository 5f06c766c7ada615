package authenticator

import (
	"context"
	"net/url"
	"sort"
	"time"
)

// ResolveUserForToken exchanges an event user token, received through the
// provider webhook, for the identifier of the user that triggered the event
func (c *Client) ResolveUserForToken(ctx context.Context, userToken string) (user string, err error) {
	started := time.Now()
	defer func() { c.observe(ctx, "resolve_user_for_token", started, err) }()

	query := url.Values{}
	query.Set("token", userToken)

	resp, err := c.http.Get(ctx, c.eventUserEndpoint, query, jsonHeaders(""))
	if err != nil {
		return "", err
	}

	content, err := decodeContent(resp)
	if err != nil {
		return "", err
	}

	if hasError(content) {
		return "", clientError(stringField(content, "error_description"))
	}

	switch stringField(content, "status") {
	case statusTokenUserRetrieved:
		payload, _ := content["payload"].(map[string]any)
		if payload == nil {
			return "", clientError(emptyPayloadDescription)
		}
		return stringField(payload, "user"), nil
	case statusInvalidUserToken:
		return "", clientError(stringField(content, "message"))
	}

	return "", clientError(tokenRetrievalErrorMessage)
}

// sortedValues returns the values of m ordered by key
func sortedValues(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

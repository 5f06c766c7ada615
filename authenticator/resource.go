package authenticator

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// FetchResourceOwner returns the payload describing the owner of accessToken
func (c *Client) FetchResourceOwner(ctx context.Context, accessToken string) (owner ResourceOwner, err error) {
	started := time.Now()
	defer func() { c.observe(ctx, "fetch_resource_owner", started, err) }()

	query := url.Values{}
	query.Set("client_id", c.configString(KeyID))

	resp, err := c.http.Get(ctx, c.resourceEndpoint, query, jsonHeaders(accessToken))
	if err != nil {
		return nil, err
	}

	if err := checkBearerStatus(resp); err != nil {
		return nil, err
	}

	content, err := decodeContent(resp)
	if err != nil {
		return nil, err
	}

	if hasError(content) {
		return nil, clientError(stringField(content, "error_description"))
	}

	payload, ok := content["payload"]
	if !ok || payload == nil {
		return nil, clientError(emptyPayloadDescription)
	}

	switch p := payload.(type) {
	case map[string]any:
		return ResourceOwner(p), nil
	case []any:
		// lists are keyed by position
		owner := make(ResourceOwner, len(p))
		for i, v := range p {
			owner[strconv.Itoa(i)] = v
		}
		return owner, nil
	}

	return nil, clientError(emptyPayloadDescription)
}

// LinkLocalIdentity registers localUserID as an alias of the owner of
// accessToken. It returns false when the provider answers with a status it
// does not document.
func (c *Client) LinkLocalIdentity(ctx context.Context, accessToken, localUserID string) (linked bool, err error) {
	started := time.Now()
	defer func() { c.observe(ctx, "link_local_identity", started, err) }()

	form := url.Values{}
	form.Set("client_id", c.configString(KeyID))
	form.Set("alias_name", localUserID)

	resp, err := c.http.Post(ctx, c.aliasEndpoint, form, jsonHeaders(accessToken))
	if err != nil {
		return false, err
	}

	if err := checkBearerStatus(resp); err != nil {
		return false, err
	}

	content, err := decodeContent(resp)
	if err != nil {
		return false, err
	}

	if hasError(content) {
		return false, clientError(stringField(content, "error_description"))
	}

	status := stringField(content, "status")
	switch status {
	case statusAliasAdded:
		return true, nil
	case statusInputValidation:
		return false, inputDataInvalid(stringList(content["errors"]))
	}

	c.logger.WarnContext(ctx, "unrecognized alias status", slog.String("status", status))
	return false, nil
}

// checkBearerStatus maps rejected bearer tokens to errors
func checkBearerStatus(resp *Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return notAuthenticated()
	case http.StatusForbidden:
		return notAuthorized()
	}
	return nil
}

// stringList converts a decoded JSON value into a list of strings. Objects
// keyed by field name are flattened in key order.
func stringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, stringList(item)...)
		}
		return out
	case map[string]any:
		return stringList(sortedValues(val))
	case string:
		return []string{val}
	default:
		return []string{stringField(map[string]any{"v": val}, "v")}
	}
}

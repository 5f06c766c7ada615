package authenticator

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Response is what the HTTP collaborator returns for every request that
// reached the server, including 4xx and 5xx statuses
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// HTTPClient performs the outbound calls to the provider. Implementations
// return an error only for failures below the response level; any status
// code is returned as a Response.
type HTTPClient interface {
	Get(ctx context.Context, endpoint string, query url.Values, headers http.Header) (*Response, error)
	Post(ctx context.Context, endpoint string, form url.Values, headers http.Header) (*Response, error)
}

// maxResponseBody caps how much of a provider response is read
const maxResponseBody = 1 << 20

// stdHTTPClient implements HTTPClient on top of net/http
type stdHTTPClient struct {
	http *http.Client
}

// NewHTTPClient creates an HTTPClient backed by c. A nil c gets a client
// with a 10 second timeout.
func NewHTTPClient(c *http.Client) HTTPClient {
	if c == nil {
		c = &http.Client{Timeout: 10 * time.Second}
	}
	return &stdHTTPClient{http: c}
}

// Get issues a GET request with the query appended to endpoint
func (c *stdHTTPClient) Get(ctx context.Context, endpoint string, query url.Values, headers http.Header) (*Response, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	copyHeaders(req, headers)

	return c.do(req)
}

// Post issues a form encoded POST request
func (c *stdHTTPClient) Post(ctx context.Context, endpoint string, form url.Values, headers http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	copyHeaders(req, headers)

	return c.do(req)
}

func (c *stdHTTPClient) do(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func copyHeaders(req *http.Request, headers http.Header) {
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
}

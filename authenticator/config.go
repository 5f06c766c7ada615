package authenticator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// knownKeys is the closed set of configuration keys
var knownKeys = []string{
	KeyID,
	KeySecret,
	KeyRedirectURL,
	KeyScope,
	KeyState,
	KeyAuthEndpoint,
	KeyTokenEndpoint,
}

// requiredKeys must hold a non-empty value whenever they are supplied
var requiredKeys = []string{
	KeyID,
	KeySecret,
	KeyRedirectURL,
	KeyAuthEndpoint,
	KeyTokenEndpoint,
}

// CallObserver receives the outcome of every outbound provider call
type CallObserver interface {
	ObserveCall(operation, outcome string, duration time.Duration)
}

// Client holds the provider configuration and performs the OAuth exchange.
// A Client is not safe for concurrent use: keep one Client (or one state)
// per in-flight login flow.
type Client struct {
	http     HTTPClient
	logger   *slog.Logger
	observer CallObserver

	config       map[string]any
	architecture Architecture
	stateLength  int

	resourceEndpoint  string
	aliasEndpoint     string
	eventUserEndpoint string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP collaborator used for provider calls
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCallObserver registers an observer for outbound calls
func WithCallObserver(o CallObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a Client with default scope, provider authorization and
// token endpoints, and the web architecture
func NewClient(opts ...Option) *Client {
	c := &Client{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		config: map[string]any{
			KeyID:            "",
			KeySecret:        "",
			KeyScope:         DefaultScope,
			KeyRedirectURL:   "",
			KeyState:         "",
			KeyAuthEndpoint:  DefaultAuthEndpoint,
			KeyTokenEndpoint: DefaultTokenEndpoint,
		},
		architecture: DefaultArchitecture,
		stateLength:  DefaultStateLength,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = NewHTTPClient(nil)
	}

	return c
}

// SetArchitecture records the architecture of the client application
func (c *Client) SetArchitecture(value string) error {
	supported := SupportedArchitectures()
	if !slices.Contains(supported, value) {
		return unsupportedArchitecture(value, supported)
	}

	c.architecture = Architecture(value)
	return nil
}

// Architecture returns the configured architecture
func (c *Client) Architecture() Architecture {
	return c.architecture
}

// MergeConfig validates cfg and merges it into the stored configuration.
// It returns false without error for an empty map. When any key is rejected
// nothing from cfg is stored.
func (c *Client) MergeConfig(cfg map[string]any) (bool, error) {
	if len(cfg) == 0 {
		return false, nil
	}

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !slices.Contains(knownKeys, key) {
			return false, unknownConfigKey(key)
		}
	}

	staged := make(map[string]any, len(cfg))
	for _, key := range keys {
		value := normalizeValue(cfg[key])

		if isEmptyValue(value) && slices.Contains(requiredKeys, key) {
			return false, missingRequiredValue(key)
		}

		staged[key] = value
	}

	for k, v := range staged {
		c.config[k] = v
	}

	c.logger.Debug("configuration merged", slog.Any("keys", keys))
	return true, nil
}

// ConfigValue returns the stored value for key
func (c *Client) ConfigValue(key string) (any, bool) {
	v, ok := c.config[key]
	return v, ok
}

// SetStateLength sets the minimum accepted state length
func (c *Client) SetStateLength(n int) {
	c.stateLength = n
}

// StateLength returns the minimum accepted state length
func (c *Client) StateLength() int {
	return c.stateLength
}

// SetState stores the anti-forgery state for the current login flow
func (c *Client) SetState(state string) error {
	state = strings.TrimSpace(state)

	if state == "" {
		return stateRequired()
	}

	if utf8.RuneCountInString(state) < c.stateLength {
		return stateTooShort(c.stateLength)
	}

	c.config[KeyState] = state
	return nil
}

// State returns the stored state, empty if none was set
func (c *Client) State() string {
	return c.configString(KeyState)
}

// SetResourceEndpoint sets the resource owner endpoint
func (c *Client) SetResourceEndpoint(endpoint string) {
	c.resourceEndpoint = endpoint
}

// ResourceEndpoint returns the resource owner endpoint
func (c *Client) ResourceEndpoint() string {
	return c.resourceEndpoint
}

// SetAliasEndpoint sets the alias endpoint
func (c *Client) SetAliasEndpoint(endpoint string) {
	c.aliasEndpoint = endpoint
}

// AliasEndpoint returns the alias endpoint
func (c *Client) AliasEndpoint() string {
	return c.aliasEndpoint
}

// SetEventUserEndpoint sets the endpoint that exchanges event user tokens
func (c *Client) SetEventUserEndpoint(endpoint string) {
	c.eventUserEndpoint = endpoint
}

// EventUserEndpoint returns the event user endpoint
func (c *Client) EventUserEndpoint() string {
	return c.eventUserEndpoint
}

// configString renders a scalar config value as a request parameter.
// Lists and maps render as "".
func (c *Client) configString(key string) string {
	switch v := c.config[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return fmt.Sprint(v)
	}
	return ""
}

// observe reports a finished call to the observer, if any
func (c *Client) observe(ctx context.Context, operation string, started time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = string(KindOf(err))
		if outcome == "" {
			outcome = "transport_error"
		}
		c.logger.DebugContext(ctx, "provider call failed",
			slog.String("operation", operation),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
		)
	}
	if c.observer != nil {
		c.observer.ObserveCall(operation, outcome, time.Since(started))
	}
}

// normalizeValue trims string values and leaves everything else untouched
func normalizeValue(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// isEmptyValue reports a required value as missing. "0" and 0 count as
// present.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

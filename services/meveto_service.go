package services

import (
	"context"
	"log/slog"

	"github.com/meveto/meveto-go-sdk/authenticator"
)

// MevetoService is the entry point applications use to talk to Meveto. It
// wires configuration and architecture at construction and refuses every
// request operation until a non-empty configuration has been merged.
type MevetoService struct {
	client    *authenticator.Client
	configSet bool
}

// Endpoints overrides the provider URLs installed by NewMevetoService
type Endpoints struct {
	Resource  string
	Alias     string
	EventUser string
}

type serviceOptions struct {
	clientOpts  []authenticator.Option
	endpoints   Endpoints
	stateLength int
}

// ServiceOption configures a MevetoService
type ServiceOption func(*serviceOptions)

// WithHTTPClient sets the HTTP collaborator used for provider calls
func WithHTTPClient(h authenticator.HTTPClient) ServiceOption {
	return func(o *serviceOptions) {
		o.clientOpts = append(o.clientOpts, authenticator.WithHTTPClient(h))
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.clientOpts = append(o.clientOpts, authenticator.WithLogger(l))
	}
}

// WithMetrics registers an observer for provider calls
func WithMetrics(observer authenticator.CallObserver) ServiceOption {
	return func(o *serviceOptions) {
		o.clientOpts = append(o.clientOpts, authenticator.WithCallObserver(observer))
	}
}

// WithEndpoints overrides the non-empty resource, alias and event user URLs
func WithEndpoints(e Endpoints) ServiceOption {
	return func(o *serviceOptions) {
		if e.Resource != "" {
			o.endpoints.Resource = e.Resource
		}
		if e.Alias != "" {
			o.endpoints.Alias = e.Alias
		}
		if e.EventUser != "" {
			o.endpoints.EventUser = e.EventUser
		}
	}
}

// WithStateLength sets the minimum accepted state length
func WithStateLength(n int) ServiceOption {
	return func(o *serviceOptions) {
		if n > 0 {
			o.stateLength = n
		}
	}
}

// NewMevetoService creates a service for cfg and the given architecture.
// An empty architecture selects web. An empty cfg is accepted, but every
// request operation then fails with a config-not-set error.
func NewMevetoService(cfg map[string]any, architecture string, opts ...ServiceOption) (*MevetoService, error) {
	o := &serviceOptions{
		endpoints: Endpoints{
			Resource:  authenticator.DefaultResourceEndpoint,
			Alias:     authenticator.DefaultAliasEndpoint,
			EventUser: authenticator.DefaultEventUserEndpoint,
		},
		stateLength: authenticator.DefaultStateLength,
	}
	for _, opt := range opts {
		opt(o)
	}

	client := authenticator.NewClient(o.clientOpts...)

	if architecture == "" {
		architecture = string(authenticator.DefaultArchitecture)
	}
	if err := client.SetArchitecture(architecture); err != nil {
		return nil, err
	}

	configSet, err := client.MergeConfig(cfg)
	if err != nil {
		return nil, err
	}

	client.SetStateLength(o.stateLength)
	client.SetResourceEndpoint(o.endpoints.Resource)
	client.SetAliasEndpoint(o.endpoints.Alias)
	client.SetEventUserEndpoint(o.endpoints.EventUser)

	return &MevetoService{
		client:    client,
		configSet: configSet,
	}, nil
}

// Client returns the underlying authenticator client
func (s *MevetoService) Client() *authenticator.Client {
	return s.client
}

// SetState stores the anti-forgery state for the current login flow
func (s *MevetoService) SetState(state string) error {
	return s.client.SetState(state)
}

// Login returns the authorization URL the user must be redirected to
func (s *MevetoService) Login(clientToken, sharingToken string) (string, error) {
	if err := s.validateRequestData(); err != nil {
		return "", err
	}
	return s.client.BuildLoginURL(clientToken, sharingToken)
}

// GetAccessToken exchanges an authorization code for a token bundle
func (s *MevetoService) GetAccessToken(ctx context.Context, authCode string) (authenticator.TokenBundle, error) {
	if err := s.validateRequestData(); err != nil {
		return nil, err
	}
	return s.client.ExchangeCode(ctx, authCode)
}

// GetResourceOwnerData fetches the resource owner with an access token
func (s *MevetoService) GetResourceOwnerData(ctx context.Context, accessToken string) (authenticator.ResourceOwner, error) {
	if err := s.validateRequestData(); err != nil {
		return nil, err
	}
	return s.client.FetchResourceOwner(ctx, accessToken)
}

// ConnectToMeveto links a local user identifier to the Meveto identity
func (s *MevetoService) ConnectToMeveto(ctx context.Context, accessToken, localUserID string) (bool, error) {
	if err := s.validateRequestData(); err != nil {
		return false, err
	}
	return s.client.LinkLocalIdentity(ctx, accessToken, localUserID)
}

// GetTokenUser resolves the user identified by a webhook user token
func (s *MevetoService) GetTokenUser(ctx context.Context, userToken string) (string, error) {
	if err := s.validateRequestData(); err != nil {
		return "", err
	}
	return s.client.ResolveUserForToken(ctx, userToken)
}

func (s *MevetoService) validateRequestData() error {
	if !s.configSet {
		return authenticator.ConfigNotSetError()
	}
	return nil
}

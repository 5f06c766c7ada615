package authenticator

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// DiscoverEndpoints reads the OpenID discovery document published by issuer
// and stores its authorization and token endpoints. Only the endpoints are
// used; no token is ever verified against the issuer keys.
func (c *Client) DiscoverEndpoints(ctx context.Context, issuer string, httpClient *http.Client) error {
	if httpClient != nil {
		ctx = oidc.ClientContext(ctx, httpClient)
	}

	provider, err := oidc.NewProvider(ctx, strings.TrimSuffix(issuer, "/"))
	if err != nil {
		return fmt.Errorf("failed to discover provider endpoints: %w", err)
	}

	endpoint := provider.Endpoint()
	if _, err := c.MergeConfig(map[string]any{
		KeyAuthEndpoint:  endpoint.AuthURL,
		KeyTokenEndpoint: endpoint.TokenURL,
	}); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "provider endpoints discovered",
		slog.String("issuer", issuer),
		slog.String("auth_endpoint", endpoint.AuthURL),
		slog.String("token_endpoint", endpoint.TokenURL),
	)
	return nil
}

// OAuth2Config returns an oauth2.Config mirroring the stored configuration,
// for applications that drive parts of the flow with golang.org/x/oauth2
func (c *Client) OAuth2Config() oauth2.Config {
	var scopes []string
	if scope := c.configString(KeyScope); scope != "" {
		scopes = strings.Fields(scope)
	}

	return oauth2.Config{
		ClientID:     c.configString(KeyID),
		ClientSecret: c.configString(KeySecret),
		RedirectURL:  c.configString(KeyRedirectURL),
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.configString(KeyAuthEndpoint),
			TokenURL:  c.configString(KeyTokenEndpoint),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

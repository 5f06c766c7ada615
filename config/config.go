package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/meveto/meveto-go-sdk/authenticator"
)

var (
	ErrLoadingEnvFile = errors.New("failed to load env file")
	ErrParsingConfig  = errors.New("failed to parse config")
)

// AppConfig holds the configuration of the example application
type AppConfig struct {
	ClientID     string `env:"MEVETO_CLIENT_ID,required"`
	ClientSecret string `env:"MEVETO_CLIENT_SECRET,required"`
	RedirectURL  string `env:"MEVETO_REDIRECT_URL,required"`
	Scope        string `env:"MEVETO_SCOPE" envDefault:"default-client-access"`
	Architecture string `env:"MEVETO_ARCHITECTURE" envDefault:"web"`
	StateLength  int    `env:"MEVETO_STATE_LENGTH" envDefault:"128"`

	// Issuer enables endpoint discovery when set
	Issuer string `env:"MEVETO_ISSUER"`

	AuthEndpoint      string `env:"MEVETO_AUTH_ENDPOINT" envDefault:"https://dashboard.meveto.com/oauth-client"`
	TokenEndpoint     string `env:"MEVETO_TOKEN_ENDPOINT" envDefault:"https://prod.meveto.com/oauth/token"`
	ResourceEndpoint  string `env:"MEVETO_RESOURCE_ENDPOINT" envDefault:"https://prod.meveto.com/api/client/user"`
	AliasEndpoint     string `env:"MEVETO_ALIAS_ENDPOINT" envDefault:"https://prod.meveto.com/api/client/user/alias"`
	EventUserEndpoint string `env:"MEVETO_EVENT_USER_ENDPOINT" envDefault:"https://prod.meveto.com/api/client/user-for-token"`

	HTTPTimeout time.Duration `env:"MEVETO_HTTP_TIMEOUT" envDefault:"10s"`

	DatabasePath    string        `env:"DATABASE_PATH" envDefault:"meveto.db"`
	Port            string        `env:"PORT" envDefault:"8080"`
	UseHTTPS        bool          `env:"USE_HTTPS" envDefault:"false"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"1h"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the given .env files (".env" when none are given) and parses
// the process environment into an AppConfig. Missing env files are ignored.
func Load(files ...string) (*AppConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", file, err))
		}
	}

	return parse(env.Options{})
}

// LoadFromMap parses an AppConfig from environ instead of the process
// environment
func LoadFromMap(environ map[string]string) (*AppConfig, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*AppConfig, error) {
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return &cfg, nil
}

// MevetoConfig returns the client configuration map accepted by
// authenticator.Client.MergeConfig
func (c *AppConfig) MevetoConfig() map[string]any {
	return map[string]any{
		authenticator.KeyID:            c.ClientID,
		authenticator.KeySecret:        c.ClientSecret,
		authenticator.KeyRedirectURL:   c.RedirectURL,
		authenticator.KeyScope:         c.Scope,
		authenticator.KeyAuthEndpoint:  c.AuthEndpoint,
		authenticator.KeyTokenEndpoint: c.TokenEndpoint,
	}
}

// Logger builds the application logger from LogLevel and LogFormat
func (c *AppConfig) Logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

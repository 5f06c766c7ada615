package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/meveto/meveto-go-sdk/authenticator"
	"github.com/meveto/meveto-go-sdk/config"
	"github.com/meveto/meveto-go-sdk/controllers"
	"github.com/meveto/meveto-go-sdk/database"
	"github.com/meveto/meveto-go-sdk/metrics"
	authmiddleware "github.com/meveto/meveto-go-sdk/middleware"
	"github.com/meveto/meveto-go-sdk/repositories"
	"github.com/meveto/meveto-go-sdk/services"
)

func main() {
	// Load configuration from .env and the environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.Logger(os.Stdout)
	slog.SetDefault(logger)

	// Initialize database
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	m := metrics.New()

	// Resolve provider endpoints from the discovery document when configured
	if cfg.Issuer != "" {
		if err := discoverEndpoints(cfg); err != nil {
			log.Fatalf("Failed to discover Meveto endpoints: %v", err)
		}
	}

	// Validate the configuration once at startup
	newMeveto := mevetoFactory(cfg, logger, m)
	if _, err := newMeveto(); err != nil {
		log.Fatalf("Invalid Meveto configuration: %v", err)
	}

	// Initialize repositories
	repos := repositories.NewRepositories(db)
	m.TrackLoggedInUsers(repos.Users.CountLoggedIn)

	// Initialize services
	srvs := services.NewServices(repos, newMeveto,
		services.WithSessionLogger(logger),
		services.WithSessionObserver(m),
	)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, logger, cfg.StateLength)

	// Set up router
	r, err := setupRouter(cfg, ctrl, srvs, m, logger)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	logger.Info("meveto example starting",
		slog.String("port", cfg.Port),
		slog.String("database", cfg.DatabasePath),
		slog.String("architecture", cfg.Architecture),
	)

	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// mevetoFactory returns a factory creating one MevetoService per login flow
func mevetoFactory(cfg *config.AppConfig, logger *slog.Logger, m *metrics.Metrics) services.MevetoFactory {
	httpClient := authenticator.NewHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})

	return func() (*services.MevetoService, error) {
		return services.NewMevetoService(cfg.MevetoConfig(), cfg.Architecture,
			services.WithHTTPClient(httpClient),
			services.WithLogger(logger),
			services.WithMetrics(m),
			services.WithStateLength(cfg.StateLength),
			services.WithEndpoints(services.Endpoints{
				Resource:  cfg.ResourceEndpoint,
				Alias:     cfg.AliasEndpoint,
				EventUser: cfg.EventUserEndpoint,
			}),
		)
	}
}

// discoverEndpoints replaces the configured authorization and token
// endpoints with the ones published by the issuer
func discoverEndpoints(cfg *config.AppConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	defer cancel()

	client := authenticator.NewClient()
	if _, err := client.MergeConfig(cfg.MevetoConfig()); err != nil {
		return err
	}
	if err := client.DiscoverEndpoints(ctx, cfg.Issuer, &http.Client{Timeout: cfg.HTTPTimeout}); err != nil {
		return err
	}

	oauthCfg := client.OAuth2Config()
	cfg.AuthEndpoint = oauthCfg.Endpoint.AuthURL
	cfg.TokenEndpoint = oauthCfg.Endpoint.TokenURL
	return nil
}

// setupRouter configures all routes
func setupRouter(cfg *config.AppConfig, ctrl *controllers.Controllers, srvs *services.Services, m *metrics.Metrics, logger *slog.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(middleware.Compress(5))

	// Session middleware
	lifetime := int64(cfg.SessionLifetime.Seconds())
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "meveto_session",
		Secure:         cfg.UseHTTPS, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     lifetime,
		Maxlifetime:    lifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)
	r.Use(authmiddleware.AuditLogger(logger))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/", ctrl.Dashboard.Index)
	r.Get("/login", ctrl.Auth.Login)
	r.Get("/callback", ctrl.Auth.Callback)
	r.Get("/logout", ctrl.Auth.Logout)
	r.Post("/meveto/webhook", ctrl.Webhook.Handle)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "meveto-example"}`)
	})
	r.Handle("/metrics", m.Handler())

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth(srvs.Session))

		r.Get("/dashboard", ctrl.Dashboard.Show)
	})

	return r, nil
}

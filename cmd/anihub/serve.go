package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/anihub/handler"
	"github.com/dmitrymomot/anihub/modules/account"
	"github.com/dmitrymomot/anihub/pkg/config"
	"github.com/dmitrymomot/anihub/pkg/cookie"
	"github.com/dmitrymomot/anihub/pkg/email"
	"github.com/dmitrymomot/anihub/pkg/httpserver"
	"github.com/dmitrymomot/anihub/pkg/logger"
	"github.com/dmitrymomot/anihub/pkg/metrics"
	"github.com/dmitrymomot/anihub/svc/auth"
	"github.com/dmitrymomot/anihub/svc/auth/google"
)

type corsConfig struct {
	// AllowedOrigins defaults to APP_URL when empty.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// appConfig gathers every configuration struct the server needs.
type appConfig struct {
	Auth    auth.Config
	Account account.Config
	Cookie  cookie.Config
	Google  google.Config
	Email   email.Config
	HTTP    httpserver.Config
	CORS    corsConfig
	Storage storageConfig
}

func loadAppConfig() (appConfig, error) {
	var cfg appConfig
	err := errors.Join(
		config.Load(&cfg.Auth),
		config.Load(&cfg.Account),
		config.Load(&cfg.Cookie),
		config.Load(&cfg.Google),
		config.Load(&cfg.Email),
		config.Load(&cfg.HTTP),
		config.Load(&cfg.CORS),
		config.Load(&cfg.Storage),
	)
	if err != nil {
		return appConfig{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	return cfg, nil
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Start the HTTP API. The server shuts down gracefully on SIGINT or SIGTERM.`,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			log.ErrorContext(ctx, "failed to close storage", logger.Error(err))
		}
	}()

	sender, err := email.New(cfg.Email)
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("mail_driver", cfg.Email.Driver).Wrap(err)
	}

	reg := metrics.NewRegistry()
	router, err := newRouter(cfg, store, sender, reg, log)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// newRouter wires the auth service and mounts every route.
func newRouter(cfg appConfig, store *storage, sender email.EmailSender, reg *prometheus.Registry, log *slog.Logger) (http.Handler, error) {
	issuer, err := auth.NewJWTIssuer(cfg.Auth.JWTSecret, auth.WithSessionTTL(cfg.Auth.SessionTTL))
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	svc := auth.NewService(
		store.accounts,
		auth.NewVerificationTokens(store.tokens, auth.WithVerificationTTL(cfg.Auth.VerificationTTL)),
		issuer,
		auth.NewEmailDispatcher(sender, cfg.Auth),
		auth.WithLogger(log),
		auth.WithMetrics(metrics.NewAuth(reg)),
		auth.WithHasher(auth.NewBcryptHasher(cfg.Auth.BcryptCost)),
	)

	accountCfg := cfg.Account
	accountCfg.SessionMaxAge = cfg.Auth.SessionTTL
	if accountCfg.StateSecret == "" {
		accountCfg.StateSecret = cfg.Auth.JWTSecret
	}

	cookies := cookie.NewFromConfig(cfg.Cookie, accountCfg.AppURL)
	sessions := account.NewSessions(accountCfg, cookies)
	errHandler := handler.NewErrorHandler(log, account.ClassifyError)

	opts := account.RouterOptions{
		Password: account.NewPasswordService(accountCfg, svc, sessions, errHandler),
		Users:    account.NewUsersService(svc, sessions, errHandler),
	}
	if cfg.Google.Enabled() {
		provider := google.New(cfg.Google, cfg.Auth.APIURL)
		opts.OAuth = append(opts.OAuth, account.NewOAuthService(
			accountCfg, provider, svc, sessions, cookies, errHandler,
			account.WithOAuthLogger(log),
		))
	} else {
		log.Info("google sign-in disabled, GOOGLE_CLIENT_ID is not set")
	}

	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{accountCfg.AppURL}
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		metrics.NewHTTP(reg).Middleware,
		cors.New(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowCredentials: true,
		}).Handler,
	)

	r.Get("/health", httpserver.HealthCheckHandler(log, store.probes...))
	r.Handle("/metrics", metrics.Handler(reg))
	r.Mount("/", account.Router(opts))

	return r, nil
}

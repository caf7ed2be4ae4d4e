package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/entry"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/example"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/language"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/relation"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/sense"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/token"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/translation"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/user"
	authjwt "github.com/fondomlexikon/lexikon-backend/internal/auth"
	"github.com/fondomlexikon/lexikon-backend/internal/config"
	authsvc "github.com/fondomlexikon/lexikon-backend/internal/service/auth"
	"github.com/fondomlexikon/lexikon-backend/internal/service/dictionary"
	usersvc "github.com/fondomlexikon/lexikon-backend/internal/service/user"
	"github.com/fondomlexikon/lexikon-backend/internal/transport/middleware"
	"github.com/fondomlexikon/lexikon-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and handlers, and serves HTTP
// until the context is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(cfg.Database.DSN); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	jwtManager := authjwt.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	dictService := dictionary.NewService(
		logger,
		entry.New(pool),
		sense.New(pool),
		example.New(pool),
		translation.New(pool),
		relation.New(pool),
		language.New(pool),
		user.New(pool),
		txManager,
		cfg.Dictionary,
	)
	authService := authsvc.NewService(logger, user.New(pool), token.New(pool), jwtManager, cfg.Auth)
	userService := usersvc.NewService(logger, user.New(pool))

	router := rest.NewRouter(
		rest.NewHealthHandler(pool, BuildVersion()),
		rest.NewAuthHandler(authService, logger),
		rest.NewDictionaryHandler(dictService, logger),
		rest.NewUserHandler(userService, logger),
	)

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerMin, 5*time.Minute)
	defer limiter.Stop()

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit,
		middleware.Auth(authService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      chain(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

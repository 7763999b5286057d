package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "calorietracker/internal/adapter/http"
	"calorietracker/internal/adapter/memory"
	"calorietracker/internal/adapter/postgres"
	redisstore "calorietracker/internal/adapter/redis"
	"calorietracker/internal/app"
	"calorietracker/internal/config"
	"calorietracker/internal/domain"
	"calorietracker/internal/logger"
)

const sessionPurgeInterval = time.Hour

// repositories is the storage a backend provides to the services.
type repositories struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	foods    domain.FoodRepository
	entries  domain.EntryRepository
	goals    domain.GoalRepository
	closers  []func() error
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("dotenv", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range repos.closers {
			_ = c()
		}
	}()

	authSvc := app.NewAuthService(repos.users, repos.sessions).
		WithGoals(repos.goals).
		WithSessionTTL(cfg.SessionTTL)
	goalSvc := app.NewGoalService(repos.goals)
	svc := adapthttp.Services{
		Auth:    authSvc,
		Foods:   app.NewFoodService(repos.foods),
		Entries: app.NewEntryService(repos.entries, repos.foods),
		Goals:   goalSvc,
		Summary: app.NewSummaryService(repos.entries, goalSvc),
	}

	srv := adapthttp.New(svc, cfg.WebDir).
		WithLogger(log).
		WithForwardAuth(cfg.TrustForwardAuth)

	if cfg.OIDC.Enabled() {
		oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			return err
		}
		srv.WithOIDC(oidcCfg)
		log.Info("sso enabled", "issuer", cfg.OIDC.Issuer)
	}

	go purgeSessions(ctx, authSvc, log)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "store", cfg.Store, "sessions", cfg.SessionStore)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	var repos repositories

	switch cfg.Store {
	case config.StoreMemory:
		db := memory.New()
		repos.users, repos.foods, repos.entries, repos.goals = db, db, db, db
		repos.sessions = db.NewSessionRepo()
	default:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, db.Close)
		repos.users, repos.foods, repos.entries, repos.goals = db, db, db, db
		repos.sessions = postgres.NewSessionRepo(db)
	}

	if cfg.SessionStore == config.SessionStoreRedis {
		rs, err := redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			for _, c := range repos.closers {
				_ = c()
			}
			return nil, err
		}
		repos.closers = append(repos.closers, rs.Close)
		repos.sessions = rs
	}
	return &repos, nil
}

// purgeSessions deletes expired sessions until ctx is cancelled.
func purgeSessions(ctx context.Context, auth *app.AuthService, log *slog.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.PurgeExpiredSessions(ctx); err != nil {
				log.Warn("purging expired sessions failed", "error", err)
			}
		}
	}
}

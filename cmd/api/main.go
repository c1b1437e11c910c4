package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cloudbr34k84/travel-app-sub000/internal/app/migrate"
	httpx "github.com/cloudbr34k84/travel-app-sub000/internal/http"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository/postgres"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/auth"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/share"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/travel"
	"github.com/cloudbr34k84/travel-app-sub000/pkg/config"
	"github.com/cloudbr34k84/travel-app-sub000/pkg/logger"
)

const sessionSweepInterval = time.Hour

func main() {
	cfg := config.LoadAPIConfig()
	log := logger.New("api", logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	runner, err := migrate.New(pool, cfg.DatabaseURL, cfg.MigrationsDir, log)
	if err != nil {
		log.Error("failed to configure migrations", "error", err)
		os.Exit(1)
	}
	defer runner.Close()
	if err := runner.Ping(ctx); err != nil {
		log.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if err := runner.Ensure(ctx); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	repo := postgres.New(pool)

	authSvc := auth.New(repo, repo, log, cfg.SessionTTL)
	travelSvc := travel.New(repo, repo, repo, repo, log)
	shareSvc := share.New(repo, log, cfg.AppSecret, cfg.ShareLinkTTL)

	go sweepSessions(ctx, authSvc, log)

	limiter := httpx.NewMemoryRateLimiter()
	if addr := strings.TrimSpace(cfg.RateLimitRedisAddr); addr != "" {
		redisLimiter, err := httpx.NewRedisRateLimiter(addr, cfg.RateLimitRedisPass, cfg.RateLimitRedisDB, log)
		if err != nil {
			log.Warn("redis rate limiter unavailable", "error", err)
		} else {
			limiter = redisLimiter
		}
	}

	router := httpx.NewRouter(log, authSvc, travelSvc, shareSvc, limiter, httpx.Config{
		CookieName:    cfg.SessionCookieName,
		SecureCookies: cfg.IsProduction(),
		AppSecret:     cfg.AppSecret,
		RateWindow:    cfg.RateLimitWindow,
		GlobalLimit:   cfg.RateLimitGlobal,
		AuthLimit:     cfg.RateLimitAuth,
	}, pool.Ping)
	defer router.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		log.Info("api server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}

// sweepSessions periodically removes expired session rows so the table does
// not grow without bound.
func sweepSessions(ctx context.Context, svc auth.Service, log *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := svc.SweepExpired(ctx)
			if err != nil {
				log.Error("session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				log.Info("expired sessions removed", "count", removed)
			}
		}
	}
}

// Package server boots the Vypar API: configuration, database, cache,
// queue workers, the policy table and the HTTP stack.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/vypar/app/jobs"
	"github.com/shashiranjanraj/vypar/app/policy"
	"github.com/shashiranjanraj/vypar/app/routes"
	"github.com/shashiranjanraj/vypar/config"
	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/cache"
	"github.com/shashiranjanraj/vypar/pkg/database"
	"github.com/shashiranjanraj/vypar/pkg/logger"
	"github.com/shashiranjanraj/vypar/pkg/metrics"
	"github.com/shashiranjanraj/vypar/pkg/middleware"
	"github.com/shashiranjanraj/vypar/pkg/orm"
	"github.com/shashiranjanraj/vypar/pkg/queue"
	"github.com/shashiranjanraj/vypar/pkg/rbac"
	"github.com/shashiranjanraj/vypar/pkg/reqid"
	"github.com/shashiranjanraj/vypar/pkg/router"
)

const queueWorkers = 4

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}

	cache.Connect()
	orm.CacheStore = cache.Store{}

	if config.QueueDriver() == "redis" {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.Register("jobs.PaymentReceiptJob", func() queue.Job { return &jobs.PaymentReceiptJob{} })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	queue.StartWorkers(ctx, queueWorkers)

	rbac.SetPolicy(policy.Table())

	tokens := auth.NewTokenService(
		config.JWTSecret(),
		config.JWTIssuer(),
		config.AccessTokenTTL(),
		config.RefreshTokenTTL(),
	)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	routes.RegisterAPI(r, tokens)
	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/health", healthHandler)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("vypar listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	body := `{"status":"ok"}`

	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = http.StatusServiceUnavailable
		body = `{"status":"degraded","database":"down"}`
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

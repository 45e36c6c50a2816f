package main

import (
	"AfrilanceWeb/internal/adapter"
	"AfrilanceWeb/internal/bootstrap"
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/scheduler"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()

	redisAdapter, err := adapter.NewRedisAdapter(cfg)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisAdapter.Close(); err != nil {
			slog.Error("Error closing Redis connection", "error", err)
		}
	}()

	tokens := helper.UnverifiedTokens
	if cfg.APIJWKSURL != "" {
		verifier, err := helper.NewJWKSVerifier(context.Background(), cfg.APIJWKSURL, cfg.APITokenIssuer)
		if err != nil {
			slog.Error("Failed to initialize token verifier", "error", err)
			os.Exit(1)
		}
		defer verifier.Close()
		tokens = verifier
	} else {
		slog.Warn("API_JWKS_URL not set, session tokens are accepted without signature verification")
	}

	httpClient := config.NewHTTPClient(cfg)
	validate := config.NewValidator(cfg)
	chiMux := config.NewChi(cfg)

	app := bootstrap.Init(cfg, redisAdapter, validate, httpClient, tokens, chiMux)

	go app.Hub.Run()
	defer app.Hub.Stop()

	jobs := scheduler.New(cfg, app.Messaging)
	if err := jobs.Start(); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer jobs.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.AppPort),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting Afrilance web server", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Thaihung204/CreditNoVa/internal/auth"
	"github.com/Thaihung204/CreditNoVa/internal/config"
	"github.com/Thaihung204/CreditNoVa/internal/db"
	"github.com/Thaihung204/CreditNoVa/internal/domain/survey"
	"github.com/Thaihung204/CreditNoVa/internal/http/handlers"
	"github.com/Thaihung204/CreditNoVa/internal/observability"
	postgresrepo "github.com/Thaihung204/CreditNoVa/internal/repository/postgres"
	"github.com/Thaihung204/CreditNoVa/internal/server"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect postgres", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	var scorer survey.Scorer = survey.NewRuleScorer()
	if cfg.ScoringWebhookURL != "" {
		logger.Info("using external scoring webhook", "url", cfg.ScoringWebhookURL)
		scorer = survey.NewWebhookScorer(cfg.ScoringWebhookURL, nil)
	}

	surveyService := survey.NewService(postgresrepo.NewSurveyRepository(pool), scorer)
	surveyHandler := handlers.NewSurveyHandler(surveyService)

	jwtManager := auth.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSigningKey)
	authService := auth.NewService(
		db.NewSessionRepository(pool),
		jwtManager,
		cfg.AdminUsername,
		cfg.AdminPasswordHash,
		cfg.JWTAccessTTL,
		cfg.JWTRefreshTTL,
	)
	authHandler := handlers.NewAuthHandler(authService, auth.CookieConfig{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	adminHandler := handlers.NewAdminHandler(surveyService)

	r := server.NewRouter(cfg, logger, server.Dependencies{
		Pinger:        pool,
		SurveyHandler: surveyHandler,
		AuthHandler:   authHandler,
		AdminHandler:  adminHandler,
		JWTManager:    jwtManager,
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api server starting", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
	logger.Info("api server stopped")
}

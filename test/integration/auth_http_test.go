package integration

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Thaihung204/CreditNoVa/internal/auth"
	"github.com/Thaihung204/CreditNoVa/internal/config"
	"github.com/Thaihung204/CreditNoVa/internal/db"
	surveydomain "github.com/Thaihung204/CreditNoVa/internal/domain/survey"
	"github.com/Thaihung204/CreditNoVa/internal/http/handlers"
	"github.com/Thaihung204/CreditNoVa/internal/repository/postgres"
	"github.com/Thaihung204/CreditNoVa/internal/server"
	"github.com/Thaihung204/CreditNoVa/test/integration/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	pool := testutil.NewTestPool(t)
	t.Cleanup(pool.Close)
	testutil.ApplyMigrations(t, pool)
	testutil.ResetTables(t, pool)

	hash, err := bcrypt.GenerateFromPassword([]byte("dashboard-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	cfg := config.Load()
	cfg.AdminUsername = "admin"
	cfg.AdminPasswordHash = string(hash)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	jwtManager := auth.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSigningKey)
	authService := auth.NewService(db.NewSessionRepository(pool), jwtManager, cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	surveyService := surveydomain.NewService(postgres.NewSurveyRepository(pool), surveydomain.NewRuleScorer())

	r := server.NewRouter(cfg, logger, server.Dependencies{
		Pinger:        pool,
		SurveyHandler: handlers.NewSurveyHandler(surveyService),
		AuthHandler:   handlers.NewAuthHandler(authService, auth.CookieConfig{}, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
		AdminHandler:  handlers.NewAdminHandler(surveyService),
		JWTManager:    jwtManager,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar := newCookieJar(t)
	return srv, &http.Client{Jar: jar}
}

func TestAdminLoginAndStatsHTTP(t *testing.T) {
	srv, client := newAuthTestServer(t)

	// Stats are locked down before login.
	resp, err := client.Get(srv.URL + "/admin/stats")
	if err != nil {
		t.Fatalf("stats pre-login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("stats pre-login status = %d, want 401", resp.StatusCode)
	}

	resp, err = client.Post(srv.URL+"/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"username":"admin","password":"wrong"}`))
	if err != nil {
		t.Fatalf("bad login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}

	resp, err = client.Post(srv.URL+"/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"username":"admin","password":"dashboard-pass"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/admin/stats")
	if err != nil {
		t.Fatalf("stats post-login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats post-login status = %d, want 200", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/v1/auth/me")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d, want 200", resp.StatusCode)
	}

	resp, err = client.Post(srv.URL+"/v1/auth/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/admin/stats")
	if err != nil {
		t.Fatalf("stats post-logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("stats post-logout status = %d, want 401", resp.StatusCode)
	}
}

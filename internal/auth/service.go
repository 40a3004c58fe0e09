package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Thaihung204/CreditNoVa/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both a wrong username and a wrong
// password; callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Repository interface {
	CreateSession(ctx context.Context, username, refreshHash, userAgent, ipAddress string, expiresAt time.Time) (*db.Session, error)
	GetSessionByID(ctx context.Context, sessionID string) (*db.Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
	UpdateSessionRefreshHash(ctx context.Context, sessionID, refreshHash string) error
}

// Service authenticates the single configured dashboard admin and
// manages refresh-token sessions for it.
type Service struct {
	repo              Repository
	jwt               *JWTManager
	adminUsername     string
	adminPasswordHash string
	accessTTL         time.Duration
	refreshTTL        time.Duration
}

type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	Username     string
}

func NewService(repo Repository, jwt *JWTManager, adminUsername, adminPasswordHash string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		repo:              repo,
		jwt:               jwt,
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		accessTTL:         accessTTL,
		refreshTTL:        refreshTTL,
	}
}

func (s *Service) Login(ctx context.Context, username, password, userAgent, ipAddress string) (*AuthTokens, error) {
	if s.adminUsername == "" || s.adminPasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) != 1 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSessionAndTokens(ctx, username, userAgent, ipAddress)
}

func (s *Service) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*AuthTokens, error) {
	claims, err := s.jwt.Parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != "refresh" {
		return nil, errors.New("invalid token type")
	}

	session, err := s.repo.GetSessionByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.RevokedAt != nil {
		return nil, errors.New("session revoked")
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return nil, errors.New("session expired")
	}
	if session.RefreshTokenHash != hashToken(refreshToken) {
		return nil, errors.New("refresh token mismatch")
	}

	// Refresh rotates: the old session dies with its token.
	if err := s.repo.RevokeSession(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.createSessionAndTokens(ctx, session.Username, userAgent, ipAddress)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.Parse(refreshToken)
	if err != nil {
		return nil
	}
	if claims.Type != "refresh" || claims.SessionID == "" {
		return nil
	}
	return s.repo.RevokeSession(ctx, claims.SessionID)
}

func (s *Service) createSessionAndTokens(ctx context.Context, username, userAgent, ipAddress string) (*AuthTokens, error) {
	expiresAt := time.Now().UTC().Add(s.refreshTTL)

	// The session row must exist before the refresh token can embed its
	// id, so the hash is written in a second step.
	session, err := s.repo.CreateSession(ctx, username, "", userAgent, ipAddress, expiresAt)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwt.Mint(username, session.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.jwt.Mint(username, session.ID, "access", s.accessTTL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSessionRefreshHash(ctx, session.ID, hashToken(refreshToken)); err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		Username:     username,
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

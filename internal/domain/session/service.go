package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session")

type Servicer interface {
	Create(ctx context.Context, accountID int) (string, error)
	Validate(ctx context.Context, token string) (int, error)
	Revoke(ctx context.Context, accountID int) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "session_service"),
	}
}

// Create issues an opaque bearer token. Only its sha256 hash is stored.
func (s *Service) Create(ctx context.Context, accountID int) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)
	tokenHash := sha256.Sum256([]byte(token))

	expiresAt := time.Now().Add(tokenTTL)
	if err := s.repo.Create(ctx, accountID, hex.EncodeToString(tokenHash[:]), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

func (s *Service) Validate(ctx context.Context, token string) (int, error) {
	tokenHash := sha256.Sum256([]byte(token))

	accountID, err := s.repo.Validate(ctx, hex.EncodeToString(tokenHash[:]))
	if err != nil {
		return 0, ErrInvalidSession
	}
	return accountID, nil
}

// Revoke drops every session of an account, used when the account is
// removed.
func (s *Service) Revoke(ctx context.Context, accountID int) error {
	if err := s.repo.DeleteByAccount(ctx, accountID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

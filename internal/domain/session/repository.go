package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, accountID int, tokenHash string, expiresAt time.Time) error
	// Validate returns the account behind an unexpired token hash.
	Validate(ctx context.Context, tokenHash string) (int, error)
	DeleteByAccount(ctx context.Context, accountID int) error
}

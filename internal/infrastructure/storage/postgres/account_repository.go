package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/account"
)

type AccountRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewAccountRepository(db *Storage, log *slog.Logger) *AccountRepository {
	return &AccountRepository{
		db:  db,
		log: log.With("component", "account_repository"),
	}
}

const accountColumns = `id, slug, username, password_hash, name, affiliation, created_at`

func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) (int, error) {
	const query = `
		INSERT INTO accounts (slug, username, password_hash, name, affiliation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.Pool().QueryRow(ctx, query,
		acc.Slug, acc.Username, acc.PasswordHash, acc.Name, acc.Affiliation,
	).Scan(&acc.ID, &acc.CreatedAt)

	if err != nil {
		r.log.Error("failed to create account", "username", acc.Username, "error", err)
		return 0, fmt.Errorf("create account: %w", err)
	}

	return acc.ID, nil
}

func (r *AccountRepository) FindBySlug(ctx context.Context, slug string) (account.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE slug = $1`
	return r.findOne(ctx, query, slug)
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (account.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return r.findOne(ctx, query, username)
}

func (r *AccountRepository) List(ctx context.Context, filter string) ([]account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	args := []any{}

	if filter != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%' OR affiliation ILIKE '%' || $1 || '%'`
		args = append(args, filter)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list accounts", "error", err)
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, acc *account.Account) error {
	const query = `UPDATE accounts SET name = $1, affiliation = $2 WHERE id = $3`

	result, err := r.db.Pool().Exec(ctx, query, acc.Name, acc.Affiliation, acc.ID)
	if err != nil {
		r.log.Error("failed to update account", "account_id", acc.ID, "error", err)
		return fmt.Errorf("update account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete account", "account_id", id, "error", err)
		return fmt.Errorf("delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (account.Account, error) {
	acc, err := scanAccount(r.db.Pool().QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("find account: %w", err)
	}
	return acc, nil
}

func scanAccount(row pgx.Row) (account.Account, error) {
	var acc account.Account
	err := row.Scan(&acc.ID, &acc.Slug, &acc.Username, &acc.PasswordHash,
		&acc.Name, &acc.Affiliation, &acc.CreatedAt)
	return acc, err
}

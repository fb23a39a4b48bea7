package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/dataset"
)

type DatasetRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewDatasetRepository(db *Storage, log *slog.Logger) *DatasetRepository {
	return &DatasetRepository{
		db:  db,
		log: log.With("component", "dataset_repository"),
	}
}

const datasetColumns = `
	id, account_id, slug, title, author, url,
	sync_instance, sync_path, public_access, description,
	credential_user, credential_password, created_at, updated_at`

func (r *DatasetRepository) Create(ctx context.Context, ds *dataset.Dataset) (int, error) {
	const query = `
		INSERT INTO datasets (account_id, slug, title, author, url,
			sync_instance, sync_path, public_access, description,
			credential_user, credential_password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.Pool().QueryRow(ctx, query,
		ds.AccountID, ds.Slug, ds.Title, ds.Author, ds.URL,
		ds.SyncInstance, ds.SyncPath, ds.PublicAccess, ds.Description,
		ds.CredentialUser, ds.CredentialPassword,
	).Scan(&ds.ID, &ds.CreatedAt, &ds.UpdatedAt)

	if err != nil {
		r.log.Error("failed to create dataset", "account_id", ds.AccountID, "error", err)
		return 0, fmt.Errorf("create dataset: %w", err)
	}

	return ds.ID, nil
}

func (r *DatasetRepository) Get(ctx context.Context, id int) (*dataset.Dataset, error) {
	const query = `SELECT ` + datasetColumns + ` FROM datasets WHERE id = $1`

	ds, err := scanDataset(r.db.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dataset.ErrNotFound
		}
		r.log.Error("failed to get dataset", "dataset_id", id, "error", err)
		return nil, fmt.Errorf("get dataset: %w", err)
	}

	return ds, nil
}

func (r *DatasetRepository) ListByAccount(ctx context.Context, accountID int, filter dataset.Filter) ([]dataset.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets
		WHERE account_id = $1 AND (public_access OR account_id = $2)`
	args := []any{accountID, filter.RequesterID}

	if filter.TitleQuery != "" {
		query += ` AND title ILIKE '%' || $3 || '%'`
		args = append(args, filter.TitleQuery)
	}
	query += ` ORDER BY title ASC`

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list datasets", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []dataset.Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		datasets = append(datasets, *ds)
	}
	return datasets, rows.Err()
}

// UpdateDescriptive deliberately omits the credential and sync columns
// so a descriptive submission can never overwrite them.
func (r *DatasetRepository) UpdateDescriptive(ctx context.Context, ds *dataset.Dataset) error {
	const query = `
		UPDATE datasets
		SET slug = $1, title = $2, author = $3, url = $4,
			public_access = $5, description = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := r.db.Pool().QueryRow(ctx, query,
		ds.Slug, ds.Title, ds.Author, ds.URL,
		ds.PublicAccess, ds.Description, ds.ID,
	).Scan(&ds.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dataset.ErrNotFound
		}
		r.log.Error("failed to update dataset", "dataset_id", ds.ID, "error", err)
		return fmt.Errorf("update dataset: %w", err)
	}
	return nil
}

// UpdateCredentials writes the credential and sync columns only; the
// descriptive columns stay as persisted.
func (r *DatasetRepository) UpdateCredentials(ctx context.Context, ds *dataset.Dataset) error {
	const query = `
		UPDATE datasets
		SET credential_user = $1, credential_password = $2,
			sync_instance = $3, sync_path = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	err := r.db.Pool().QueryRow(ctx, query,
		ds.CredentialUser, ds.CredentialPassword,
		ds.SyncInstance, ds.SyncPath, ds.ID,
	).Scan(&ds.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dataset.ErrNotFound
		}
		r.log.Error("failed to update dataset credentials", "dataset_id", ds.ID, "error", err)
		return fmt.Errorf("update dataset credentials: %w", err)
	}
	return nil
}

func (r *DatasetRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM datasets WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete dataset", "dataset_id", id, "error", err)
		return fmt.Errorf("delete dataset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return dataset.ErrNotFound
	}
	return nil
}

func (r *DatasetRepository) SetKeywords(ctx context.Context, datasetID int, keywordIDs []int) error {
	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM dataset_keywords WHERE dataset_id = $1`, datasetID); err != nil {
		return fmt.Errorf("clear keywords: %w", err)
	}

	for _, kwID := range keywordIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO dataset_keywords (dataset_id, keyword_id) VALUES ($1, $2)`,
			datasetID, kwID); err != nil {
			return fmt.Errorf("link keyword: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func scanDataset(row pgx.Row) (*dataset.Dataset, error) {
	var ds dataset.Dataset
	err := row.Scan(&ds.ID, &ds.AccountID, &ds.Slug, &ds.Title, &ds.Author, &ds.URL,
		&ds.SyncInstance, &ds.SyncPath, &ds.PublicAccess, &ds.Description,
		&ds.CredentialUser, &ds.CredentialPassword, &ds.CreatedAt, &ds.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

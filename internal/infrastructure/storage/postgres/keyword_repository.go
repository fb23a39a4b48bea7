package postgres

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/keyword"
)

type KeywordRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewKeywordRepository(db *Storage, log *slog.Logger) *KeywordRepository {
	return &KeywordRepository{
		db:  db,
		log: log.With("component", "keyword_repository"),
	}
}

func (r *KeywordRepository) EnsureAll(ctx context.Context, names []string) ([]keyword.Keyword, error) {
	var keywords []keyword.Keyword
	seen := make(map[string]bool)

	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		const query = `
			INSERT INTO keywords (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id, name`

		var kw keyword.Keyword
		if err := r.db.Pool().QueryRow(ctx, query, name).Scan(&kw.ID, &kw.Name); err != nil {
			r.log.Error("failed to ensure keyword", "name", name, "error", err)
			return nil, fmt.Errorf("ensure keyword: %w", err)
		}
		keywords = append(keywords, kw)
	}

	return keywords, nil
}

func (r *KeywordRepository) ListByDataset(ctx context.Context, datasetID int) ([]keyword.Keyword, error) {
	const query = `
		SELECT k.id, k.name
		FROM keywords k
		JOIN dataset_keywords dk ON dk.keyword_id = k.id
		WHERE dk.dataset_id = $1
		ORDER BY k.name ASC`

	rows, err := r.db.Pool().Query(ctx, query, datasetID)
	if err != nil {
		r.log.Error("failed to list keywords", "dataset_id", datasetID, "error", err)
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	defer rows.Close()

	var keywords []keyword.Keyword
	for rows.Next() {
		var kw keyword.Keyword
		if err := rows.Scan(&kw.ID, &kw.Name); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

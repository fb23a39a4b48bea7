package keyword

import "context"

type Repository interface {
	// EnsureAll resolves names to keywords, creating the missing ones.
	// The result preserves the input order with duplicates collapsed.
	EnsureAll(ctx context.Context, names []string) ([]Keyword, error)
	ListByDataset(ctx context.Context, datasetID int) ([]Keyword, error)
}

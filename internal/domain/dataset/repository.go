package dataset

import "context"

// Repository persists datasets. The two update methods are disjoint at
// the column level: UpdateDescriptive writes descriptive columns only
// and UpdateCredentials writes credential and sync columns only, so
// neither path can clobber the other's fields.
type Repository interface {
	Create(ctx context.Context, ds *Dataset) (int, error)
	Get(ctx context.Context, id int) (*Dataset, error)
	// ListByAccount returns the account's datasets ordered by title
	// ascending. Private datasets appear only when owned by
	// filter.RequesterID.
	ListByAccount(ctx context.Context, accountID int, filter Filter) ([]Dataset, error)
	UpdateDescriptive(ctx context.Context, ds *Dataset) error
	UpdateCredentials(ctx context.Context, ds *Dataset) error
	Delete(ctx context.Context, id int) error
	// SetKeywords replaces the dataset's keyword links. Keywords
	// themselves are shared records and are never deleted here.
	SetKeywords(ctx context.Context, datasetID int, keywordIDs []int) error
}

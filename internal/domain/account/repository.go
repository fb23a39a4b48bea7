package account

import "context"

type Repository interface {
	Create(ctx context.Context, acc *Account) (int, error)
	FindBySlug(ctx context.Context, slug string) (Account, error)
	FindByUsername(ctx context.Context, username string) (Account, error)
	// List returns all accounts, optionally narrowed to those whose
	// name or affiliation contains the filter, ordered by name.
	List(ctx context.Context, filter string) ([]Account, error)
	Update(ctx context.Context, acc *Account) error
	// Delete removes the account; owned datasets go with it (FK cascade).
	Delete(ctx context.Context, id int) error
}

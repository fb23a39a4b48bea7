package account

import "time"

// Account is a registered owner entity, one-to-one with its login
// identity. The slug is derived from the username at registration and
// is stable for the lifetime of the account.
type Account struct {
	ID           int
	Slug         string
	Username     string
	PasswordHash string
	Name         string
	Affiliation  string
	CreatedAt    time.Time
}

// Patch carries the self-service editable fields.
type Patch struct {
	Name        string
	Affiliation string
}

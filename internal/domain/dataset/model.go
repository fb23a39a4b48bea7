package dataset

import (
	"fmt"
	"time"
)

// Dataset is one catalogued data resource. CredentialUser and
// CredentialPassword hold hex-encoded AES-GCM ciphertext and are empty
// when the dataset has no remote-fetch credentials; plaintext never
// reaches this struct.
type Dataset struct {
	ID                 int
	AccountID          int
	Slug               string
	Title              string
	Author             string
	URL                string
	SyncInstance       string
	SyncPath           string
	PublicAccess       bool
	Description        string
	CredentialUser     string
	CredentialPassword string
	Keywords           []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DetailPath is the canonical URL of the dataset's detail view.
func (d Dataset) DetailPath(accountSlug string) string {
	return fmt.Sprintf("/%s/%s/%d/", accountSlug, d.Slug, d.ID)
}

// CreateInput carries every field a new dataset accepts, including the
// optional plaintext credential pair encrypted before persisting.
type CreateInput struct {
	Title              string
	Author             string
	URL                string
	SyncInstance       string
	SyncPath           string
	PublicAccess       bool
	Description        string
	CredentialUser     string
	CredentialPassword string
	Keywords           []string
}

// DescriptivePatch updates the descriptive fields only. Applying it
// never touches the stored credentials or sync location.
type DescriptivePatch struct {
	Title        string
	Author       string
	URL          string
	PublicAccess bool
	Description  string
	Keywords     []string
}

// CredentialPatch updates the credential pair and sync location only.
// Applying it never touches the descriptive fields.
type CredentialPatch struct {
	User         string
	Password     string
	SyncInstance string
	SyncPath     string
}

// Credentials is the decrypted credential pair, reachable only through
// the owner-only maintenance flow.
type Credentials struct {
	User         string
	Password     string
	SyncInstance string
	SyncPath     string
}

// Filter narrows a per-account listing. TitleQuery is matched as a
// case-insensitive substring; RequesterID widens the result to include
// that requester's private datasets.
type Filter struct {
	TitleQuery  string
	RequesterID int
}

package datasets

import (
	"time"

	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/dataset"
)

// Item is the public rendering of a dataset. It carries descriptive
// fields only; credential fields have no representation here at all.
type Item struct {
	ID           int       `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Author       string    `json:"author,omitempty"`
	URL          string    `json:"url,omitempty"`
	SyncInstance string    `json:"sync_instance,omitempty"`
	SyncPath     string    `json:"sync_path,omitempty"`
	PublicAccess bool      `json:"public_access"`
	Description  string    `json:"description,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"`
	DetailURL    string    `json:"detail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewItem builds the rendering for a dataset under its owning account's
// slug.
func NewItem(ds dataset.Dataset, accountSlug string) Item {
	return Item{
		ID:           ds.ID,
		Slug:         ds.Slug,
		Title:        ds.Title,
		Author:       ds.Author,
		URL:          ds.URL,
		SyncInstance: ds.SyncInstance,
		SyncPath:     ds.SyncPath,
		PublicAccess: ds.PublicAccess,
		Description:  ds.Description,
		Keywords:     ds.Keywords,
		DetailURL:    ds.DetailPath(accountSlug),
		CreatedAt:    ds.CreatedAt,
		UpdatedAt:    ds.UpdatedAt,
	}
}

type datasetPath struct {
	Account     string `path:"account" doc:"Account slug"`
	DatasetSlug string `path:"dataset_slug" doc:"Dataset slug"`
	ID          int    `path:"id" minimum:"1" doc:"Dataset ID"`
}

type createInput struct {
	Account string `path:"account" doc:"Account slug"`
	Body    createRequest
}

type createRequest struct {
	Title              string   `json:"title" minLength:"1" maxLength:"300"`
	Author             string   `json:"author,omitempty" maxLength:"200"`
	URL                string   `json:"url,omitempty" maxLength:"2000"`
	SyncInstance       string   `json:"sync_instance,omitempty" maxLength:"500"`
	SyncPath           string   `json:"sync_path,omitempty" maxLength:"500"`
	PublicAccess       bool     `json:"public_access,omitempty"`
	Description        string   `json:"description,omitempty"`
	Keywords           []string `json:"keywords,omitempty"`
	CredentialUser     string   `json:"dataset_user,omitempty" format:"password" doc:"Optional remote-fetch username, encrypted at rest"`
	CredentialPassword string   `json:"dataset_password,omitempty" format:"password" doc:"Optional remote-fetch password, encrypted at rest"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	Dataset Item   `json:"dataset"`
	Status  string `json:"status"`
}

type detailInput struct {
	datasetPath
}

type detailOutput struct {
	Body Item
}

type updateInput struct {
	datasetPath
	Body updateRequest
}

type updateRequest struct {
	Title        string   `json:"title" minLength:"1" maxLength:"300"`
	Author       string   `json:"author,omitempty" maxLength:"200"`
	URL          string   `json:"url,omitempty" maxLength:"2000"`
	PublicAccess bool     `json:"public_access,omitempty"`
	Description  string   `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

type updateOutput struct {
	Body createResponse
}

type credentialsInput struct {
	datasetPath
}

type credentialsOutput struct {
	Body credentialsResponse
}

type credentialsResponse struct {
	User         string `json:"dataset_user"`
	Password     string `json:"dataset_password"`
	SyncInstance string `json:"sync_instance,omitempty"`
	SyncPath     string `json:"sync_path,omitempty"`
}

type updateAuthInput struct {
	datasetPath
	Body updateAuthRequest
}

type updateAuthRequest struct {
	User         string `json:"dataset_user,omitempty" format:"password"`
	Password     string `json:"dataset_password,omitempty" format:"password"`
	SyncInstance string `json:"sync_instance,omitempty" maxLength:"500"`
	SyncPath     string `json:"sync_path,omitempty" maxLength:"500"`
}

type removeInput struct {
	datasetPath
}

type removeOutput struct {
	Body removeResponse
}

type removeResponse struct {
	Status string `json:"status"`
}

package accounts

import (
	"time"

	"github.com/spatialdatahub/spatialdatahub.com/internal/api/http/datasets"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/account"
)

// Item is the public rendering of an account. Login fields stay out.
type Item struct {
	ID          int       `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Affiliation string    `json:"affiliation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func newItem(acc account.Account) Item {
	return Item{
		ID:          acc.ID,
		Slug:        acc.Slug,
		Name:        acc.Name,
		Affiliation: acc.Affiliation,
		CreatedAt:   acc.CreatedAt,
	}
}

type listInput struct {
	Query string `query:"q" doc:"Case-insensitive substring over name and affiliation"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Accounts []Item `json:"accounts"`
	Total    int    `json:"total"`
}

type portalInput struct {
	Account string `path:"account" doc:"Account slug"`
	Query   string `query:"q" doc:"Case-insensitive substring over dataset titles"`
}

type portalOutput struct {
	Body portalResponse
}

type portalResponse struct {
	Account  Item            `json:"account"`
	Datasets []datasets.Item `json:"datasets"`
}

type updateInput struct {
	Account string `path:"account" doc:"Account slug"`
	Body    updateRequest
}

type updateRequest struct {
	Name        string `json:"name,omitempty" maxLength:"200"`
	Affiliation string `json:"affiliation,omitempty" maxLength:"200"`
}

type updateOutput struct {
	Body updateResponse
}

type updateResponse struct {
	Account Item   `json:"account"`
	Status  string `json:"status"`
}

type removeInput struct {
	Account string `path:"account" doc:"Account slug"`
}

type removeOutput struct {
	Body removeResponse
}

type removeResponse struct {
	Status string `json:"status"`
}

package accounts

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-list",
		Method:      http.MethodGet,
		Path:        "/accounts",
		Summary:     "List accounts",
		Description: "All registered accounts, optionally filtered by a substring of name or affiliation, ordered by name.",
		Tags:        []string{"accounts"},
		Middlewares: h.public,
	}
}

func (h *Handler) portalOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-portal",
		Method:      http.MethodGet,
		Path:        "/{account}",
		Summary:     "Account portal",
		Description: "The account and its datasets, optionally filtered by a title substring, ordered by title. Private datasets appear for their owner only.",
		Tags:        []string{"accounts"},
		Middlewares: h.public,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-update",
		Method:      http.MethodPut,
		Path:        "/{account}/update",
		Summary:     "Update account",
		Description: "Owner only. Username and slug are immutable.",
		Tags:        []string{"accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

func (h *Handler) removeOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-remove",
		Method:      http.MethodDelete,
		Path:        "/{account}/remove",
		Summary:     "Remove account",
		Description: "Owner only. Removes the account and every dataset it owns.",
		Tags:        []string{"accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

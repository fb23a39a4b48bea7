package datasets

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-create",
		Method:      http.MethodPost,
		Path:        "/{account}/new_dataset",
		Summary:     "Create a dataset",
		Description: "Creates a dataset under the account. The title is slugified for the detail URL; submitted credentials are encrypted before storage.",
		Tags:        []string{"datasets"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

func (h *Handler) detailOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-detail",
		Method:      http.MethodGet,
		Path:        "/{account}/{dataset_slug}/{id}",
		Summary:     "Dataset detail",
		Description: "Descriptive fields only; credential fields are never part of this response. Private datasets are visible to their owner only.",
		Tags:        []string{"datasets"},
		Middlewares: h.public,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-update",
		Method:      http.MethodPut,
		Path:        "/{account}/{dataset_slug}/{id}/update",
		Summary:     "Update descriptive fields",
		Description: "Owner only. Stored credentials and sync location are untouched by this path.",
		Tags:        []string{"datasets"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

func (h *Handler) credentialsOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-credentials",
		Method:      http.MethodGet,
		Path:        "/{account}/{dataset_slug}/{id}/update/auth",
		Summary:     "Read stored credentials",
		Description: "Owner-only maintenance view; the single place where stored credentials are decrypted.",
		Tags:        []string{"datasets"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

func (h *Handler) updateAuthOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-update-auth",
		Method:      http.MethodPut,
		Path:        "/{account}/{dataset_slug}/{id}/update/auth",
		Summary:     "Update credentials and sync location",
		Description: "Owner only. Descriptive fields are untouched by this path; both credential values are encrypted at write time.",
		Tags:        []string{"datasets"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

func (h *Handler) removeOp() huma.Operation {
	return huma.Operation{
		OperationID: "datasets-remove",
		Method:      http.MethodDelete,
		Path:        "/{account}/{dataset_slug}/{id}/remove",
		Summary:     "Remove a dataset",
		Tags:        []string{"datasets"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

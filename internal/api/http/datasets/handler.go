package datasets

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/api/http/middleware/auth"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/account"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/dataset"
)

type Handler struct {
	datasets dataset.Servicer
	accounts account.Servicer
	log      *slog.Logger
	authed   huma.Middlewares
	public   huma.Middlewares
}

// NewHandler wires the dataset routes. authed carries the strict auth
// middleware; public carries the optional one for the detail view.
func NewHandler(datasets dataset.Servicer, accounts account.Servicer, log *slog.Logger, authed, public huma.Middlewares) *Handler {
	return &Handler{
		datasets: datasets,
		accounts: accounts,
		log:      log,
		authed:   authed,
		public:   public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.detailOp(), h.detail)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.credentialsOp(), h.credentials)
	huma.Register(api, h.updateAuthOp(), h.updateAuth)
	huma.Register(api, h.removeOp(), h.remove)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	requesterID, ok := auth.GetAccountID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	acc, err := h.accounts.GetBySlug(ctx, input.Account)
	if err != nil {
		return nil, mapAccountError(err)
	}

	ds, err := h.datasets.Create(ctx, requesterID, acc.ID, dataset.CreateInput{
		Title:              input.Body.Title,
		Author:             input.Body.Author,
		URL:                input.Body.URL,
		SyncInstance:       input.Body.SyncInstance,
		SyncPath:           input.Body.SyncPath,
		PublicAccess:       input.Body.PublicAccess,
		Description:        input.Body.Description,
		CredentialUser:     input.Body.CredentialUser,
		CredentialPassword: input.Body.CredentialPassword,
		Keywords:           input.Body.Keywords,
	})
	if err != nil {
		return nil, mapDatasetError(err)
	}

	return &createOutput{
		Body: createResponse{Dataset: NewItem(ds, acc.Slug), Status: "Ok"},
	}, nil
}

func (h *Handler) detail(ctx context.Context, input *detailInput) (*detailOutput, error) {
	// Anonymous requesters read public datasets only.
	requesterID, authenticated := auth.GetAccountID(ctx)

	acc, err := h.accounts.GetBySlug(ctx, input.Account)
	if err != nil {
		return nil, mapAccountError(err)
	}

	ds, err := h.datasets.Get(ctx, requesterID, acc.ID, input.DatasetSlug, input.ID)
	if err != nil {
		if errors.Is(err, dataset.ErrForbidden) && !authenticated {
			return nil, huma.Error401Unauthorized("Unauthorized")
		}
		return nil, mapDatasetError(err)
	}

	out := detailOutput{Body: NewItem(ds, acc.Slug)}
	return &out, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	requesterID, ok := auth.GetAccountID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	acc, err := h.accounts.GetBySlug(ctx, input.Account)
	if err != nil {
		return nil, mapAccountError(err)
	}

	ds, err := h.datasets.UpdateDescriptive(ctx, requesterID, acc.ID, input.DatasetSlug, input.ID,
		dataset.DescriptivePatch{
			Title:        input.Body.Title,
			Author:       input.Body.Author,
			URL:          input.Body.URL,
			PublicAccess: input.Body.PublicAccess,
			Description:  input.Body.Description,
			Keywords:     input.Body.Keywords,
		})
	if err != nil {
		return nil, mapDatasetError(err)
	}

	return &updateOutput{
		Body: createResponse{Dataset: NewItem(ds, acc.Slug), Status: "Ok"},
	}, nil
}

func (h *Handler) credentials(ctx context.Context, input *credentialsInput) (*credentialsOutput, error) {
	requesterID, ok := auth.GetAccountID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	acc, err := h.accounts.GetBySlug(ctx, input.Account)
	if err != nil {
		return nil, mapAccountError(err)
	}

	creds, err := h.datasets.Credentials(ctx, requesterID, acc.ID, input.DatasetSlug, input.ID)
	if err != nil {
		return nil, mapDatasetError(err)
	}

	return &credentialsOutput{
		Body: credentialsResponse{
			User:         creds.User,
			Password:     creds.Password,
			SyncInstance: creds.SyncInstance,
			SyncPath:     creds.SyncPath,
		},
	}, nil
}

func (h *Handler) updateAuth(ctx context.Context, input *updateAuthInput) (*updateOutput, error) {
	requesterID, ok := auth.GetAccountID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	acc, err := h.accounts.GetBySlug(ctx, input.Account)
	if err != nil {
		return nil, mapAccountError(err)
	}

	ds, err := h.datasets.UpdateCredentials(ctx, requesterID, acc.ID, input.DatasetSlug, input.ID,
		dataset.CredentialPatch{
			User:         input.Body.User,
			Password:     input.Body.Password,
			SyncInstance: input.Body.SyncInstance,
			SyncPath:     input.Body.SyncPath,
		})
	if err != nil {
		return nil, mapDatasetError(err)
	}

	return &updateOutput{
		Body: createResponse{Dataset: NewItem(ds, acc.Slug), Status: "Ok"},
	}, nil
}

func (h *Handler) remove(ctx context.Context, input *removeInput) (*removeOutput, error) {
	requesterID, ok := auth.GetAccountID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	acc, err := h.accounts.GetBySlug(ctx, input.Account)
	if err != nil {
		return nil, mapAccountError(err)
	}

	if err := h.datasets.Remove(ctx, requesterID, acc.ID, input.DatasetSlug, input.ID); err != nil {
		return nil, mapDatasetError(err)
	}

	return &removeOutput{Body: removeResponse{Status: "Ok"}}, nil
}

func mapDatasetError(err error) error {
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return huma.Error404NotFound("dataset not found")
	case errors.Is(err, dataset.ErrForbidden):
		return huma.Error403Forbidden("not the dataset owner")
	case errors.Is(err, dataset.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return err
	}
}

func mapAccountError(err error) error {
	if errors.Is(err, account.ErrNotFound) {
		return huma.Error404NotFound("account not found")
	}
	return err
}

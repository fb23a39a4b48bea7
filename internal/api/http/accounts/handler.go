package accounts

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/api/http/datasets"
	"github.com/spatialdatahub/spatialdatahub.com/internal/api/http/middleware/auth"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/account"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/dataset"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/session"
)

type Handler struct {
	accounts account.Servicer
	datasets dataset.Servicer
	sessions session.Servicer
	log      *slog.Logger
	authed   huma.Middlewares
	public   huma.Middlewares
}

func NewHandler(accounts account.Servicer, datasets dataset.Servicer, sessions session.Servicer, log *slog.Logger, authed, public huma.Middlewares) *Handler {
	return &Handler{
		accounts: accounts,
		datasets: datasets,
		sessions: sessions,
		log:      log,
		authed:   authed,
		public:   public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.portalOp(), h.portal)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.removeOp(), h.remove)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	accs, err := h.accounts.List(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(accs))
	for i, acc := range accs {
		items[i] = newItem(acc)
	}

	return &listOutput{
		Body: listResponse{Accounts: items, Total: len(items)},
	}, nil
}

func (h *Handler) portal(ctx context.Context, input *portalInput) (*portalOutput, error) {
	// Anonymous requesters see public datasets only.
	requesterID, _ := auth.GetAccountID(ctx)

	acc, err := h.accounts.GetBySlug(ctx, input.Account)
	if err != nil {
		return nil, mapAccountError(err)
	}

	list, err := h.datasets.ListByAccount(ctx, requesterID, acc.ID, input.Query)
	if err != nil {
		return nil, err
	}

	items := make([]datasets.Item, len(list))
	for i, ds := range list {
		items[i] = datasets.NewItem(ds, acc.Slug)
	}

	return &portalOutput{
		Body: portalResponse{Account: newItem(acc), Datasets: items},
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	requesterID, ok := auth.GetAccountID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	acc, err := h.accounts.Update(ctx, requesterID, input.Account, account.Patch{
		Name:        input.Body.Name,
		Affiliation: input.Body.Affiliation,
	})
	if err != nil {
		return nil, mapAccountError(err)
	}

	return &updateOutput{
		Body: updateResponse{Account: newItem(acc), Status: "Ok"},
	}, nil
}

func (h *Handler) remove(ctx context.Context, input *removeInput) (*removeOutput, error) {
	requesterID, ok := auth.GetAccountID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.accounts.Remove(ctx, requesterID, input.Account); err != nil {
		return nil, mapAccountError(err)
	}

	if err := h.sessions.Revoke(ctx, requesterID); err != nil {
		h.log.Warn("failed to revoke sessions after account removal",
			"account_id", requesterID, "error", err)
	}

	return &removeOutput{Body: removeResponse{Status: "Ok"}}, nil
}

func mapAccountError(err error) error {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return huma.Error404NotFound("account not found")
	case errors.Is(err, account.ErrForbidden):
		return huma.Error403Forbidden("not the account owner")
	case errors.Is(err, account.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return err
	}
}

package auth

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/account"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/session"
)

type Handler struct {
	accounts   account.Servicer
	sessions   session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(accounts account.Servicer, sessions session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		accounts:   accounts,
		sessions:   sessions,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	acc, err := h.accounts.Register(ctx, input.Body.Username, input.Body.Password,
		input.Body.Name, input.Body.Affiliation)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrDuplicate):
			return nil, huma.Error409Conflict("username already taken")
		case errors.Is(err, account.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		default:
			return nil, err
		}
	}

	return &registerOutput{
		Body: RegisterResponse{ID: acc.ID, Slug: acc.Slug, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	acc, err := h.accounts.Authenticate(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.sessions.Create(ctx, acc.ID)
	if err != nil {
		h.log.Error("failed to create session", "account_id", acc.ID, "error", err)
		return nil, huma.Error500InternalServerError("could not create session")
	}

	return &loginOutput{
		Body: LoginResponse{Token: token, Status: "Ok"},
	}, nil
}

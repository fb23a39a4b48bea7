package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Liveness check",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}, h.check)
}

type output struct {
	Body response
}

type response struct {
	Status string `json:"status"`
}

func (h *Handler) check(ctx context.Context, _ *struct{}) (*output, error) {
	return &output{Body: response{Status: "Ok"}}, nil
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/session"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const accountIDKey contextKey = "accountID"

// Middleware rejects requests without a valid bearer session.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		accountID, ok := a.resolve(ctx)
		if !ok {
			a.unauthorized(ctx)
			return
		}
		next(huma.WithContext(ctx, WithAccountID(ctx.Context(), accountID)))
	}
}

// Optional resolves the requester when a valid token is present and
// passes the request through anonymously otherwise. Used on routes that
// serve public datasets to anyone but private ones to their owner.
func (a *Auth) Optional() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if accountID, ok := a.resolve(ctx); ok {
			ctx = huma.WithContext(ctx, WithAccountID(ctx.Context(), accountID))
		}
		next(ctx)
	}
}

func (a *Auth) resolve(ctx huma.Context) (int, bool) {
	header := ctx.Header("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, false
	}

	accountID, err := a.session.Validate(ctx.Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		a.log.Debug("session validation failed", "error", err)
		return 0, false
	}
	return accountID, true
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("failed to write unauthorized response", "error", err)
	}
}

// WithAccountID attaches the requester identity; exported for handler
// tests.
func WithAccountID(ctx context.Context, accountID int) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// GetAccountID returns the authenticated requester, if any.
func GetAccountID(ctx context.Context) (int, bool) {
	accountID, ok := ctx.Value(accountIDKey).(int)
	return accountID, ok
}

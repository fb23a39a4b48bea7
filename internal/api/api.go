package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	accountsAPI "github.com/spatialdatahub/spatialdatahub.com/internal/api/http/accounts"
	authAPI "github.com/spatialdatahub/spatialdatahub.com/internal/api/http/auth"
	datasetsAPI "github.com/spatialdatahub/spatialdatahub.com/internal/api/http/datasets"
	healthAPI "github.com/spatialdatahub/spatialdatahub.com/internal/api/http/health"
	"github.com/spatialdatahub/spatialdatahub.com/internal/api/http/middleware"
	authMW "github.com/spatialdatahub/spatialdatahub.com/internal/api/http/middleware/auth"
	loggerMW "github.com/spatialdatahub/spatialdatahub.com/internal/api/http/middleware/logger"
	"github.com/spatialdatahub/spatialdatahub.com/internal/crypto"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/account"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/dataset"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/session"
	"github.com/spatialdatahub/spatialdatahub.com/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health   *healthAPI.Handler
	Auth     *authAPI.Handler
	Accounts *accountsAPI.Handler
	Datasets *datasetsAPI.Handler
}

// New builds the chi mux with every operation registered through
// huma.Register. Route order matters: static prefixes (/health,
// /accounts, /auth) are registered before the /{account} wildcards.
func New(storage *postgres.Storage, enc *crypto.Encryptor, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Spatial Data Hub API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, enc, log)
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.Accounts.SetupRoutes(API)
	h.Datasets.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, enc *crypto.Encryptor, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMiddleware := authMW.New(sessionService, log)
	loggerMiddleware := loggerMW.New(log)
	middlewares := middleware.NewContainer()

	accountRepo := postgres.NewAccountRepository(storage, log)
	accountService := account.NewService(accountRepo, account.NewValidator(), log)

	datasetRepo := postgres.NewDatasetRepository(storage, log)
	keywordRepo := postgres.NewKeywordRepository(storage, log)
	datasetService := dataset.NewService(datasetRepo, keywordRepo, enc, log)

	middlewares.Add(loggerMiddleware.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMiddleware.Middleware())
	authHandler := authAPI.NewHandler(accountService, sessionService, log, middlewares.GetAllAndClear())

	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	accountAuthed := middlewares.GetAllAndClear()
	middlewares.Add(authMiddleware.Optional())
	middlewares.Add(loggerMiddleware.Middleware())
	accountPublic := middlewares.GetAllAndClear()
	accountsHandler := accountsAPI.NewHandler(accountService, datasetService, sessionService, log, accountAuthed, accountPublic)

	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	datasetAuthed := middlewares.GetAllAndClear()
	middlewares.Add(authMiddleware.Optional())
	middlewares.Add(loggerMiddleware.Middleware())
	datasetPublic := middlewares.GetAllAndClear()
	datasetsHandler := datasetsAPI.NewHandler(datasetService, accountService, log, datasetAuthed, datasetPublic)

	return &Handlers{
		Health:   healthHandler,
		Auth:     authHandler,
		Accounts: accountsHandler,
		Datasets: datasetsHandler,
	}
}

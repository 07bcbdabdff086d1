package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"rps-master/internal/api"
	"rps-master/internal/config"
	"rps-master/internal/constants"
	"rps-master/internal/middleware"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// NewHandler mounts every GameService procedure plus the health check.
func NewHandler(gs *GameServer, db *sql.DB, cfg *config.Config, logger zerolog.Logger) http.Handler {
	opts := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(logErrors()),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Grpc-Status", "Grpc-Message"},
	}).Handler)

	r.Get(api.HealthPath, health(db))

	r.Handle(api.ProcedureCreatePlayer, connect.NewUnaryHandler(api.ProcedureCreatePlayer, gs.CreatePlayer, opts...))
	r.Handle(api.ProcedureGetProfile, connect.NewUnaryHandler(api.ProcedureGetProfile, gs.GetProfile, opts...))
	r.Handle(api.ProcedurePlayRound, connect.NewUnaryHandler(api.ProcedurePlayRound, gs.PlayRound, opts...))
	r.Handle(api.ProcedurePurchase, connect.NewUnaryHandler(api.ProcedurePurchase, gs.Purchase, opts...))
	r.Handle(api.ProcedureSelectCosmetic, connect.NewUnaryHandler(api.ProcedureSelectCosmetic, gs.SelectCosmetic, opts...))
	r.Handle(api.ProcedureReset, connect.NewUnaryHandler(api.ProcedureReset, gs.Reset, opts...))
	r.Handle(api.ProcedureListRounds, connect.NewUnaryHandler(api.ProcedureListRounds, gs.ListRounds, opts...))
	r.Handle(api.ProcedureGetCatalog, connect.NewUnaryHandler(api.ProcedureGetCatalog, gs.GetCatalog, opts...))
	r.Handle(api.ProcedureExportSave, connect.NewUnaryHandler(api.ProcedureExportSave, gs.ExportSave, opts...))
	r.Handle(api.ProcedureImportSave, connect.NewUnaryHandler(api.ProcedureImportSave, gs.ImportSave, opts...))

	return r
}

func health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}
}

// logErrors reports failed procedures on the request-scoped logger. Internal
// errors log at error level, client mistakes at debug.
func logErrors() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)
			if err == nil {
				return resp, nil
			}

			logger := zerolog.Ctx(ctx)
			code := connect.CodeOf(err)
			event := logger.Debug()
			var connectErr *connect.Error
			if code == connect.CodeInternal || !errors.As(err, &connectErr) {
				event = logger.Error()
			}
			event.Err(err).
				Str("procedure", req.Spec().Procedure).
				Str("code", code.String()).
				Msg("procedure failed")
			return resp, err
		}
	}
}

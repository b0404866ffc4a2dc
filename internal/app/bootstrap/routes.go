// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	collab "github.com/dalemusser/collabhub/internal/app/engine/collab"
	errorsfeature "github.com/dalemusser/collabhub/internal/app/features/errors"
	groupsfeature "github.com/dalemusser/collabhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/collabhub/internal/app/features/health"
	interestsfeature "github.com/dalemusser/collabhub/internal/app/features/interests"
	opportunitiesfeature "github.com/dalemusser/collabhub/internal/app/features/opportunities"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. Collabhub verifies the caller
// token on every request, builds the collaboration engine over the
// connected database, and mounts the feature routers: health,
// opportunities (with nested interest submission), interest decisions,
// and groups (with each group's message log and document registry).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier, err := auth.NewVerifier(appCfg.CallerTokenKey, logger)
	if err != nil {
		logger.Error("caller token verifier init failed", zap.Error(err))
		return nil, err
	}

	engine := collab.New(deps.MongoDatabase, deps.Emitter, logger)
	errWriter := errorsfeature.NewWriter(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the verified caller into context.
	// Routes that mutate state sit behind auth.RequireCaller inside the
	// feature routers.
	r.Use(verifier.LoadCaller)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	opportunitiesHandler := opportunitiesfeature.NewHandler(engine, errWriter, logger)
	r.Mount("/opportunities", opportunitiesfeature.Routes(opportunitiesHandler))

	interestsHandler := interestsfeature.NewHandler(engine, errWriter, logger)
	r.Mount("/interests", interestsfeature.Routes(interestsHandler))

	groupsHandler := groupsfeature.NewHandler(engine, errWriter, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	return r, nil
}

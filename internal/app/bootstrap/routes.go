// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	errorsfeature "github.com/0-LuckyPenny/react-node-test/internal/app/features/errors"
	healthfeature "github.com/0-LuckyPenny/react-node-test/internal/app/features/health"
	meetingsfeature "github.com/0-LuckyPenny/react-node-test/internal/app/features/meetings"
	auditstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/audit"
	userstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/users"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/auditlog"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/auth"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// sessionMaxAge bounds how long a session cookie read by this service stays valid.
const sessionMaxAge = 24 * time.Hour

// BuildHandler constructs the root HTTP handler for meetingdesk.
//
// The meeting API lives under /api/meeting and requires a signed-in
// session. /health and /metrics are public.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, sessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data on each request, so role changes and deletions apply immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	auditLog := auditlog.New(auditstore.New(deps.MongoDatabase), logger, auditlog.Config{
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Loads SessionUser into context when the request carries a valid session.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if appCfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	meetingsHandler := meetingsfeature.NewHandler(deps.MongoDatabase, auditLog, logger)
	r.Mount("/api/meeting", meetingsfeature.Routes(meetingsHandler, sessionMgr))

	return r, nil
}

// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// minProdSessionKey is the shortest session key accepted when env is prod.
const minProdSessionKey = 32

// appConfigKeys defines the configuration keys for meetingdesk.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: MEETINGDESK_MONGO_URI, MEETINGDESK_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "meetingdesk", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "meetingdesk-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "audit_log_admin", Default: "all", Desc: "Meeting audit logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},

	{Name: "timeout_short", Default: "5s", Desc: "Budget for single-document store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Budget for list queries and batch updates"},
}

// LoadConfig loads WAFFLE core config and meetingdesk config.
//
// Precedence is flags > env > files > defaults. Core keys use the WAFFLE_
// prefix, app keys use MEETINGDESK_.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MEETINGDESK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		AuditLogAdmin:  auditMode(appValues.String("audit_log_admin")),
		MetricsEnabled: appValues.Bool("metrics_enabled"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// auditMode normalizes an audit destination setting. Blank means "all".
func auditMode(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "all"
	}
	return v
}

// ValidateConfig rejects configurations that cannot work before any
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must be set")
	}

	switch appCfg.AuditLogAdmin {
	case "all", "db", "log", "off":
	default:
		return fmt.Errorf("audit_log_admin must be one of all, db, log, off (got %q)", appCfg.AuditLogAdmin)
	}

	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < minProdSessionKey {
		return fmt.Errorf("session_key must be at least %d characters in prod", minProdSessionKey)
	}

	return nil
}

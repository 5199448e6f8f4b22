// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds meetingdesk configuration loaded in LoadConfig.
//
// WAFFLE's CoreConfig covers ports, TLS, logging and request limits. The
// fields here are the ones the meeting API itself needs: where the data
// lives, how sessions are read, and which side channels are enabled.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64

	// Session cookies are issued elsewhere; meetingdesk only reads them.
	SessionKey    string
	SessionName   string
	SessionDomain string

	// AuditLogAdmin is one of "all", "db", "log" or "off".
	AuditLogAdmin string

	MetricsEnabled bool

	// Store call budgets. Zero keeps the timeouts package default.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
}

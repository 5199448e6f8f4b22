// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/0-LuckyPenny/react-node-test/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Admin controls logging for meeting create/delete events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger writes audit events to MongoDB (via audit.Store) and zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. A blank Admin setting means "all".
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	config.Admin = strings.ToLower(strings.TrimSpace(config.Admin))
	if config.Admin == "" {
		config.Admin = "all"
	}
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// clientIP returns the host part of RemoteAddr. Proxy headers are not read
// here; the router's RealIP middleware has already applied them.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if len(event.MeetingIDs) > 0 {
		ids := make([]string, len(event.MeetingIDs))
		for i, id := range event.MeetingIDs {
			ids[i] = id.Hex()
		}
		fields = append(fields, zap.Strings("meeting_ids", ids))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event according to the configured destination.
// A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := "all"
	if event.Category == audit.CategoryAdmin {
		setting = l.config.Admin
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// MeetingCreated logs a successful create.
func (l *Logger) MeetingCreated(ctx context.Context, r *http.Request, actorID *primitive.ObjectID, meetingID primitive.ObjectID, related string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventMeetingCreated,
		ActorID:    actorID,
		MeetingIDs: []primitive.ObjectID{meetingID},
		IP:         clientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details:    map[string]string{"related": related},
	})
}

// MeetingDeleted logs a single soft delete.
func (l *Logger) MeetingDeleted(ctx context.Context, r *http.Request, actorID *primitive.ObjectID, meetingID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventMeetingDeleted,
		ActorID:    actorID,
		MeetingIDs: []primitive.ObjectID{meetingID},
		IP:         clientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// MeetingsDeleted logs a batch soft delete with the requested ids and the
// number actually modified.
func (l *Logger) MeetingsDeleted(ctx context.Context, r *http.Request, actorID *primitive.ObjectID, meetingIDs []primitive.ObjectID, modified int64) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventMeetingsDeleted,
		ActorID:    actorID,
		MeetingIDs: meetingIDs,
		IP:         clientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details: map[string]string{
			"requested": strconv.Itoa(len(meetingIDs)),
			"modified":  strconv.FormatInt(modified, 10),
		},
	})
}

// internal/app/features/meetings/handler.go
package meetings

import (
	"context"
	"net/http"

	apperrors "github.com/0-LuckyPenny/react-node-test/internal/app/features/errors"
	"github.com/0-LuckyPenny/react-node-test/internal/app/store/audit"
	contactstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/contacts"
	leadstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/leads"
	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/store/queries/meetinglist"
	userstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/users"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/auditlog"
	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MeetingStore is the slice of meetingstore.Store the controller uses.
type MeetingStore interface {
	meetinglist.MeetingSource
	Create(ctx context.Context, m models.Meeting) (models.Meeting, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (models.Meeting, error)
	SoftDeleteMany(ctx context.Context, ids []primitive.ObjectID) (meetingstore.UpdateSummary, error)
}

// ContactResolver batch-resolves contacts for the detail card.
type ContactResolver interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Contact, error)
}

// LeadResolver batch-resolves leads for the detail card.
type LeadResolver interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Lead, error)
}

// AuditHistory reads the audit trail of one meeting.
type AuditHistory interface {
	GetByMeeting(ctx context.Context, meetingID primitive.ObjectID, limit int64) ([]audit.Event, error)
}

var (
	_ AuditHistory             = (*audit.Store)(nil)
	_ MeetingStore             = (*meetingstore.Store)(nil)
	_ meetinglist.UserResolver = (*userstore.Store)(nil)
	_ ContactResolver          = (*contactstore.Store)(nil)
	_ LeadResolver             = (*leadstore.Store)(nil)
)

// Handler is the dependency container for the meeting endpoints.
type Handler struct {
	Meetings MeetingStore
	Users    meetinglist.UserResolver
	Contacts ContactResolver
	Leads    LeadResolver
	History  AuditHistory

	// Audit may be nil; auditlog.Logger treats that as a no-op.
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler wires the Mongo-backed stores. It is called from BuildHandler.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Meetings: meetingstore.New(db),
		Users:    userstore.New(db),
		Contacts: contactstore.New(db),
		Leads:    leadstore.New(db),
		History:  audit.New(db),
		Audit:    auditLog,
		Log:      logger,
	}
}

func (h *Handler) logError(r *http.Request, msg string, err error, fields ...zap.Field) {
	apperrors.NewErrorLogger(h.Log).Log(r, msg, err, fields...)
}

// internal/app/features/meetings/history.go
package meetings

import (
	"errors"
	"net/http"
	"time"

	apperrors "github.com/0-LuckyPenny/react-node-test/internal/app/features/errors"
	"github.com/0-LuckyPenny/react-node-test/internal/app/store/audit"
	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/metrics"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// historyLimit caps how many audit events one history response carries.
const historyLimit = 50

type historyEntry struct {
	EventType string            `json:"eventType"`
	Timestamp time.Time         `json:"timestamp"`
	ActorID   string            `json:"actorId,omitempty"`
	ActorName string            `json:"actorName,omitempty"`
	Success   bool              `json:"success"`
	Details   map[string]string `json:"details,omitempty"`
}

// ServeHistory returns the audit trail of one meeting, newest first. Batch
// deletes that included the meeting are part of its trail.
// GET /api/meeting/history/{id} (admins only)
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := meetingID(r)
	if !ok {
		metrics.RecordOperation(metrics.OpHistory, metrics.OutcomeNotFound, time.Since(start))
		apperrors.Message(w, http.StatusNotFound, msgNoMeeting)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "meeting history")
	defer cancel()

	if _, err := h.Meetings.GetByID(ctx, id); err != nil {
		if errors.Is(err, meetingstore.ErrNotFound) {
			metrics.RecordOperation(metrics.OpHistory, metrics.OutcomeNotFound, time.Since(start))
			apperrors.Message(w, http.StatusNotFound, msgNoMeeting)
			return
		}
		h.logError(r, "load meeting for history failed", err, zap.String("meeting_id", id.Hex()))
		metrics.RecordOperation(metrics.OpHistory, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	events, err := h.History.GetByMeeting(ctx, id, historyLimit)
	if err != nil {
		h.logError(r, "load meeting history failed", err, zap.String("meeting_id", id.Hex()))
		metrics.RecordOperation(metrics.OpHistory, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	actors, err := h.Users.GetByIDs(ctx, actorIDs(events))
	if err != nil {
		h.logError(r, "resolve history actors failed", err, zap.String("meeting_id", id.Hex()))
		metrics.RecordOperation(metrics.OpHistory, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	out := make([]historyEntry, 0, len(events))
	for _, e := range events {
		entry := historyEntry{
			EventType: e.EventType,
			Timestamp: e.Timestamp,
			Success:   e.Success,
			Details:   e.Details,
		}
		if e.ActorID != nil {
			entry.ActorID = e.ActorID.Hex()
			if u, ok := actors[*e.ActorID]; ok {
				entry.ActorName = u.FullName()
			}
		}
		out = append(out, entry)
	}

	metrics.RecordOperation(metrics.OpHistory, metrics.OutcomeOK, time.Since(start))
	apperrors.WriteJSON(w, http.StatusOK, out)
}

func actorIDs(events []audit.Event) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(events))
	ids := make([]primitive.ObjectID, 0, len(events))
	for _, e := range events {
		if e.ActorID == nil {
			continue
		}
		if _, dup := seen[*e.ActorID]; dup {
			continue
		}
		seen[*e.ActorID] = struct{}{}
		ids = append(ids, *e.ActorID)
	}
	return ids
}

// internal/app/features/meetings/view.go
package meetings

import (
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/0-LuckyPenny/react-node-test/internal/app/features/errors"
	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/store/queries/meetinglist"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/metrics"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const msgNoMeeting = "No meeting found."

// meetingID parses the {id} route param. A malformed id cannot name any
// meeting, so callers treat it as not found.
func meetingID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	return oid, err == nil
}

// ServeView returns one meeting, deleted or not, with its creator's name.
// GET /api/meeting/view/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := meetingID(r)
	if !ok {
		metrics.RecordOperation(metrics.OpView, metrics.OutcomeNotFound, time.Since(start))
		apperrors.Message(w, http.StatusNotFound, msgNoMeeting)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view meeting")
	defer cancel()

	view, err := meetinglist.View(ctx, h.Meetings, h.Users, id)
	switch {
	case errors.Is(err, meetingstore.ErrNotFound):
		metrics.RecordOperation(metrics.OpView, metrics.OutcomeNotFound, time.Since(start))
		apperrors.Message(w, http.StatusNotFound, msgNoMeeting)
		return
	case err != nil:
		h.logError(r, "view meeting failed", err, zap.String("meeting_id", id.Hex()))
		metrics.RecordOperation(metrics.OpView, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	metrics.RecordOperation(metrics.OpView, metrics.OutcomeOK, time.Since(start))
	apperrors.WriteJSON(w, http.StatusOK, view)
}

// internal/app/features/meetings/delete.go
package meetings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/0-LuckyPenny/react-node-test/internal/app/features/errors"
	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/authz"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/metrics"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/timeouts"
	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type deleteResponse struct {
	Message        string         `json:"message"`
	UpdatedMeeting models.Meeting `json:"updatedMeeting"`
}

type deleteManyResponse struct {
	Message         string                     `json:"message"`
	UpdatedMeetings meetingstore.UpdateSummary `json:"updatedMeetings"`
}

func actorFrom(r *http.Request) *primitive.ObjectID {
	_, _, id, ok := authz.UserCtx(r)
	if !ok {
		return nil
	}
	return &id
}

// HandleDelete soft-deletes one meeting and returns it as updated.
// DELETE /api/meeting/delete/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := meetingID(r)
	if !ok {
		metrics.RecordOperation(metrics.OpSoftDelete, metrics.OutcomeNotFound, time.Since(start))
		apperrors.Message(w, http.StatusNotFound, msgNoMeeting)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete meeting")
	defer cancel()

	updated, err := h.Meetings.SoftDelete(ctx, id)
	switch {
	case errors.Is(err, meetingstore.ErrNotFound):
		metrics.RecordOperation(metrics.OpSoftDelete, metrics.OutcomeNotFound, time.Since(start))
		apperrors.Message(w, http.StatusNotFound, msgNoMeeting)
		return
	case err != nil:
		h.logError(r, "delete meeting failed", err, zap.String("meeting_id", id.Hex()))
		metrics.RecordOperation(metrics.OpSoftDelete, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to delete Meeting")
		return
	}

	metrics.RecordOperation(metrics.OpSoftDelete, metrics.OutcomeOK, time.Since(start))
	metrics.RecordSoftDeleted(1)
	h.Audit.MeetingDeleted(ctx, r, actorFrom(r), id)

	apperrors.WriteJSON(w, http.StatusOK, deleteResponse{
		Message:        "Meeting deleted successfully",
		UpdatedMeeting: updated,
	})
}

// parseIDs decodes a JSON array of hex ids. Any malformed id fails the
// whole request.
func parseIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		ids = append(ids, oid)
	}
	return ids, nil
}

// HandleDeleteMany soft-deletes every listed meeting in one update.
// POST /api/meeting/deleteMany with body ["<id>", ...]
func (h *Handler) HandleDeleteMany(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var raw []string
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		metrics.RecordOperation(metrics.OpSoftDeleteMany, metrics.OutcomeInvalid, time.Since(start))
		apperrors.Error(w, http.StatusBadRequest, "Request body must be a JSON array of meeting ids")
		return
	}
	ids, err := parseIDs(raw)
	if err != nil {
		metrics.RecordOperation(metrics.OpSoftDeleteMany, metrics.OutcomeInvalid, time.Since(start))
		apperrors.Error(w, http.StatusBadRequest, "Invalid meeting id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete meetings")
	defer cancel()

	summary, err := h.Meetings.SoftDeleteMany(ctx, ids)
	if err != nil {
		h.logError(r, "delete meetings failed", err, zap.Int("count", len(ids)))
		metrics.RecordOperation(metrics.OpSoftDeleteMany, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to delete Meetings")
		return
	}

	metrics.RecordOperation(metrics.OpSoftDeleteMany, metrics.OutcomeOK, time.Since(start))
	metrics.RecordSoftDeleted(summary.Modified)
	if len(ids) > 0 {
		h.Audit.MeetingsDeleted(ctx, r, actorFrom(r), ids, summary.Modified)
	}

	apperrors.WriteJSON(w, http.StatusOK, deleteManyResponse{
		Message:         "Meetings deleted successfully",
		UpdatedMeetings: summary,
	})
}

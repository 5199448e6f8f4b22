// internal/app/features/meetings/create.go
package meetings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/0-LuckyPenny/react-node-test/internal/app/features/errors"
	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/metrics"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/timeouts"
	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// createRequest is the accepted add payload. Unknown fields are ignored;
// id, deleted and createdDate are always set by the store.
type createRequest struct {
	Agenda       string               `json:"agenda"`
	Attendes     []primitive.ObjectID `json:"attendes"`
	AttendesLead []primitive.ObjectID `json:"attendesLead"`
	Location     string               `json:"location"`
	Related      models.Related       `json:"related"`
	DateTime     *time.Time           `json:"dateTime"`
	Notes        string               `json:"notes"`
	CreateBy     *primitive.ObjectID  `json:"createBy"`
	Timestamp    *time.Time           `json:"timestamp"`
}

func (req createRequest) meeting() models.Meeting {
	createBy := req.CreateBy
	if createBy != nil && createBy.IsZero() {
		createBy = nil
	}
	return models.Meeting{
		Agenda:       req.Agenda,
		Attendes:     req.Attendes,
		AttendesLead: req.AttendesLead,
		Location:     req.Location,
		Related:      req.Related,
		DateTime:     req.DateTime,
		Notes:        req.Notes,
		CreateBy:     createBy,
		Timestamp:    req.Timestamp,
	}
}

// HandleCreate persists a new meeting.
// POST /api/meeting/add
//
// 200 with the stored meeting, or 400 {"error":"Failed to create Meeting"}.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logError(r, "decode meeting payload failed", err)
		metrics.RecordOperation(metrics.OpCreate, metrics.OutcomeInvalid, time.Since(start))
		apperrors.Error(w, http.StatusBadRequest, "Failed to create Meeting")
		return
	}

	m := req.meeting()
	if m.CreateBy == nil {
		m.CreateBy = actorFrom(r)
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create meeting")
	defer cancel()

	created, err := h.Meetings.Create(ctx, m)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, meetingstore.ErrInvalidRelated) {
			outcome = metrics.OutcomeInvalid
		}
		h.logError(r, "create meeting failed", err)
		metrics.RecordOperation(metrics.OpCreate, outcome, time.Since(start))
		apperrors.Error(w, http.StatusBadRequest, "Failed to create Meeting")
		return
	}
	metrics.RecordOperation(metrics.OpCreate, metrics.OutcomeOK, time.Since(start))
	h.Audit.MeetingCreated(ctx, r, actorFrom(r), created.ID, string(created.Related))

	h.Log.Debug("meeting created", zap.String("meeting_id", created.ID.Hex()))
	apperrors.WriteJSON(w, http.StatusOK, created)
}

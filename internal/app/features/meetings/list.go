// internal/app/features/meetings/list.go
package meetings

import (
	"net/http"
	"time"

	apperrors "github.com/0-LuckyPenny/react-node-test/internal/app/features/errors"
	"github.com/0-LuckyPenny/react-node-test/internal/app/store/queries/meetinglist"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/metrics"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList returns the visible meetings matching the query-string filter.
// GET /api/meeting?agenda=...&createBy=...
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	f, err := meetinglist.ParseFilter(r.URL.Query())
	if err != nil {
		metrics.RecordOperation(metrics.OpList, metrics.OutcomeInvalid, time.Since(start))
		apperrors.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list meetings")
	defer cancel()

	rows, err := meetinglist.List(ctx, h.Meetings, h.Users, f)
	if err != nil {
		h.logError(r, "list meetings failed", err, zap.Int("filter_fields", len(f)))
		metrics.RecordOperation(metrics.OpList, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	metrics.RecordOperation(metrics.OpList, metrics.OutcomeOK, time.Since(start))
	apperrors.WriteJSON(w, http.StatusOK, rows)
}

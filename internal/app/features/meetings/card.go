// internal/app/features/meetings/card.go
package meetings

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/0-LuckyPenny/react-node-test/internal/app/features/errors"
	"github.com/0-LuckyPenny/react-node-test/internal/app/policy/meetingpolicy"
	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/store/queries/meetinglist"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/authz"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/htmlsanitize"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/metrics"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/timeouts"
	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// attendee is one resolved attendee on the detail card. Href is set only
// when the caller may open the attendee's record.
type attendee struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
	Href string             `json:"href,omitempty"`
}

type cardDetails struct {
	DateTime  *time.Time     `json:"dateTime,omitempty"`
	Location  string         `json:"location,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	NotesHTML string         `json:"notesHTML,omitempty"`
	Related   models.Related `json:"related,omitempty"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	Deleted   bool           `json:"deleted"`
}

type cardActions struct {
	CanDelete      bool `json:"canDelete"`
	CanViewHistory bool `json:"canViewHistory"`
}

// attendeeLinkPrefix is the client route that opens each attendee entity.
var attendeeLinkPrefix = map[meetingpolicy.Entity]string{
	meetingpolicy.Contacts: "/contactView/",
	meetingpolicy.Leads:    "/leadView/",
}

// meetingCard is the detail view model for one meeting.
type meetingCard struct {
	ID            primitive.ObjectID `json:"_id"`
	Agenda        string             `json:"agenda"`
	CreatedByName string             `json:"createdByName"`
	Details       cardDetails        `json:"details"`
	Attendees     []attendee         `json:"attendees"`
	Actions       cardActions        `json:"actions"`
}

// ServeCard returns the detail card for one meeting.
// GET /api/meeting/view/{id}/card
func (h *Handler) ServeCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := meetingID(r)
	if !ok {
		metrics.RecordOperation(metrics.OpCard, metrics.OutcomeNotFound, time.Since(start))
		apperrors.Message(w, http.StatusNotFound, msgNoMeeting)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "meeting card")
	defer cancel()

	m, err := h.Meetings.GetByID(ctx, id)
	if errors.Is(err, meetingstore.ErrNotFound) {
		metrics.RecordOperation(metrics.OpCard, metrics.OutcomeNotFound, time.Since(start))
		apperrors.Message(w, http.StatusNotFound, msgNoMeeting)
		return
	}
	if err != nil {
		h.logError(r, "load meeting for card failed", err, zap.String("meeting_id", id.Hex()))
		metrics.RecordOperation(metrics.OpCard, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	view, err := meetinglist.Resolve(ctx, h.Users, m)
	if err != nil {
		h.logError(r, "resolve meeting creator failed", err, zap.String("meeting_id", id.Hex()))
		metrics.RecordOperation(metrics.OpCard, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	role, _ := authz.Role(r)
	attendees, err := h.resolveAttendees(ctx, m, role)
	if err != nil {
		h.logError(r, "resolve attendees failed", err, zap.String("meeting_id", id.Hex()))
		metrics.RecordOperation(metrics.OpCard, metrics.OutcomeError, time.Since(start))
		apperrors.Error(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	actions := cardActions{
		CanDelete:      meetingpolicy.Access(role, meetingpolicy.Meetings).Delete,
		CanViewHistory: authz.IsAdmin(r),
	}
	card := buildCard(view, attendees, actions)
	metrics.RecordOperation(metrics.OpCard, metrics.OutcomeOK, time.Since(start))
	apperrors.WriteJSON(w, http.StatusOK, card)
}

func buildCard(v models.MeetingView, attendees []attendee, actions cardActions) meetingCard {
	if attendees == nil {
		attendees = []attendee{}
	}
	return meetingCard{
		ID:            v.ID,
		Agenda:        v.Agenda,
		CreatedByName: v.CreatedByName,
		Details: cardDetails{
			DateTime:  v.DateTime,
			Location:  v.Location,
			Notes:     v.Notes,
			NotesHTML: htmlsanitize.NotesHTML(v.Notes),
			Related:   v.Related,
			Timestamp: v.Timestamp,
			Deleted:   v.Deleted,
		},
		Attendees: attendees,
		Actions:   actions,
	}
}

// resolveAttendees names the meeting's authoritative attendees in stored
// order. Ids that no longer resolve are left out. Links are added only for
// Contact or Lead meetings and only when role may view that entity type.
func (h *Handler) resolveAttendees(ctx context.Context, m models.Meeting, role string) ([]attendee, error) {
	ids := m.AttendeeIDs()
	if len(ids) == 0 {
		return nil, nil
	}

	entity := meetingpolicy.AttendeeEntity(string(m.Related))
	names := make(map[primitive.ObjectID]string, len(ids))
	switch entity {
	case meetingpolicy.Leads:
		leads, err := h.Leads.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for id, l := range leads {
			names[id] = l.LeadName
		}
	default:
		contacts, err := h.Contacts.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for id, c := range contacts {
			names[id] = c.FullName()
		}
	}

	prefix := ""
	if m.Related != models.RelatedUnspecified && meetingpolicy.Access(role, entity).View {
		prefix = attendeeLinkPrefix[entity]
	}

	out := make([]attendee, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			continue
		}
		a := attendee{ID: id, Name: name}
		if prefix != "" {
			a.Href = prefix + id.Hex()
		}
		out = append(out, a)
	}
	return out, nil
}

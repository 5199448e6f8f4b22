// Package meetinglist joins meetings to their creators and shapes them for
// the list and detail endpoints.
//
// The join runs in two steps instead of a $lookup pipeline: fetch meetings,
// then resolve every distinct createBy in one users query. The name is built
// here, so no server-side string concatenation is needed.
package meetinglist

import (
	"context"

	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/metrics"
	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MeetingSource is the slice of meetingstore.Store used here.
type MeetingSource interface {
	Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Meeting, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Meeting, error)
}

// UserResolver batch-resolves users by id.
type UserResolver interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
}

var _ MeetingSource = (*meetingstore.Store)(nil)

// List returns visible meetings matching f. A meeting is visible when it is
// not deleted and its creator exists and is not deleted.
func List(ctx context.Context, meetings MeetingSource, users UserResolver, f Filter) ([]models.MeetingView, error) {
	rows, err := meetings.Find(ctx, f.listQuery())
	if err != nil {
		return nil, err
	}
	creators, err := users.GetByIDs(ctx, creatorIDs(rows))
	if err != nil {
		return nil, err
	}
	out := visible(rows, creators)
	metrics.RecordDroppedRows(len(rows) - len(out))
	return out, nil
}

// View returns one meeting by id with its creator's name. Deleted meetings
// and meetings whose creator is deleted or missing are still returned.
func View(ctx context.Context, meetings MeetingSource, users UserResolver, id primitive.ObjectID) (models.MeetingView, error) {
	m, err := meetings.GetByID(ctx, id)
	if err != nil {
		return models.MeetingView{}, err
	}
	return Resolve(ctx, users, m)
}

// Resolve projects an already-loaded meeting, looking up its creator.
// A missing creator yields an empty name; a deleted one still resolves.
func Resolve(ctx context.Context, users UserResolver, m models.Meeting) (models.MeetingView, error) {
	name := ""
	if m.CreateBy != nil {
		creators, err := users.GetByIDs(ctx, []primitive.ObjectID{*m.CreateBy})
		if err != nil {
			return models.MeetingView{}, err
		}
		if u, ok := creators[*m.CreateBy]; ok {
			name = u.FullName()
		}
	}
	return Project(m, name), nil
}

// visible drops meetings without a live creator and projects the rest,
// keeping input order.
func visible(rows []models.Meeting, creators map[primitive.ObjectID]models.User) []models.MeetingView {
	out := make([]models.MeetingView, 0, len(rows))
	for _, m := range rows {
		if m.Deleted || m.CreateBy == nil {
			continue
		}
		u, ok := creators[*m.CreateBy]
		if !ok || u.Deleted {
			continue
		}
		out = append(out, Project(m, u.FullName()))
	}
	return out
}

// creatorIDs returns the distinct createBy ids in first-seen order.
func creatorIDs(rows []models.Meeting) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(rows))
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, m := range rows {
		if m.CreateBy == nil {
			continue
		}
		if _, dup := seen[*m.CreateBy]; dup {
			continue
		}
		seen[*m.CreateBy] = struct{}{}
		ids = append(ids, *m.CreateBy)
	}
	return ids
}

// Project shapes a meeting for output. Attendee lists are never null.
func Project(m models.Meeting, createdByName string) models.MeetingView {
	attendes := m.Attendes
	if attendes == nil {
		attendes = []primitive.ObjectID{}
	}
	attendesLead := m.AttendesLead
	if attendesLead == nil {
		attendesLead = []primitive.ObjectID{}
	}
	return models.MeetingView{
		ID:            m.ID,
		Agenda:        m.Agenda,
		Attendes:      attendes,
		AttendesLead:  attendesLead,
		CreatedByName: createdByName,
		DateTime:      m.DateTime,
		Deleted:       m.Deleted,
		Location:      m.Location,
		Notes:         m.Notes,
		Related:       m.Related,
		Timestamp:     m.Timestamp,
	}
}

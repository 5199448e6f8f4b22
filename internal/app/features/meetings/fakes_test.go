package meetings_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/0-LuckyPenny/react-node-test/internal/app/store/audit"
	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errStore = errors.New("store unavailable")

// fakeMeetings keeps meetings in insertion order. Find honours the deleted
// and agenda constraints, which is all the handler tests rely on.
type fakeMeetings struct {
	mu      sync.Mutex
	order   []primitive.ObjectID
	rows    map[primitive.ObjectID]models.Meeting
	err     error
	created []models.Meeting
}

func newFakeMeetings(seed ...models.Meeting) *fakeMeetings {
	f := &fakeMeetings{rows: map[primitive.ObjectID]models.Meeting{}}
	for _, m := range seed {
		f.put(m)
	}
	return f
}

func (f *fakeMeetings) put(m models.Meeting) {
	if _, ok := f.rows[m.ID]; !ok {
		f.order = append(f.order, m.ID)
	}
	f.rows[m.ID] = m
}

func (f *fakeMeetings) Create(_ context.Context, m models.Meeting) (models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Meeting{}, f.err
	}
	if !m.Related.IsValid() {
		return models.Meeting{}, meetingstore.ErrInvalidRelated
	}
	m.ID = primitive.NewObjectID()
	m.CreatedDate = time.Now().UTC()
	m.Deleted = false
	f.put(m)
	f.created = append(f.created, m)
	return m, nil
}

func (f *fakeMeetings) GetByID(_ context.Context, id primitive.ObjectID) (models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Meeting{}, f.err
	}
	m, ok := f.rows[id]
	if !ok {
		return models.Meeting{}, meetingstore.ErrNotFound
	}
	return m, nil
}

func (f *fakeMeetings) Find(_ context.Context, filter bson.M, _ ...*options.FindOptions) ([]models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Meeting
	for _, id := range f.order {
		m := f.rows[id]
		if d, ok := filter["deleted"].(bool); ok && m.Deleted != d {
			continue
		}
		if a, ok := filter["agenda"].(string); ok && m.Agenda != a {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMeetings) SoftDelete(_ context.Context, id primitive.ObjectID) (models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Meeting{}, f.err
	}
	m, ok := f.rows[id]
	if !ok {
		return models.Meeting{}, meetingstore.ErrNotFound
	}
	m.Deleted = true
	f.rows[id] = m
	return m, nil
}

func (f *fakeMeetings) SoftDeleteMany(_ context.Context, ids []primitive.ObjectID) (meetingstore.UpdateSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return meetingstore.UpdateSummary{}, f.err
	}
	var s meetingstore.UpdateSummary
	for _, id := range ids {
		m, ok := f.rows[id]
		if !ok {
			continue
		}
		s.Matched++
		if !m.Deleted {
			s.Modified++
		}
		m.Deleted = true
		f.rows[id] = m
	}
	return s, nil
}

type fakeUsers map[primitive.ObjectID]models.User

func (f fakeUsers) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := map[primitive.ObjectID]models.User{}
	for _, id := range ids {
		if u, ok := f[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakeContacts map[primitive.ObjectID]models.Contact

func (f fakeContacts) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Contact, error) {
	out := map[primitive.ObjectID]models.Contact{}
	for _, id := range ids {
		if c, ok := f[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

type fakeLeads map[primitive.ObjectID]models.Lead

func (f fakeLeads) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Lead, error) {
	out := map[primitive.ObjectID]models.Lead{}
	for _, id := range ids {
		if l, ok := f[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

// fakeHistory returns stored events whose MeetingIDs include the requested id.
type fakeHistory struct {
	events []audit.Event
	err    error
}

func (f *fakeHistory) GetByMeeting(_ context.Context, meetingID primitive.ObjectID, limit int64) ([]audit.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []audit.Event
	for _, e := range f.events {
		for _, id := range e.MeetingIDs {
			if id == meetingID {
				out = append(out, e)
				break
			}
		}
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func oidPtr(id primitive.ObjectID) *primitive.ObjectID { return &id }

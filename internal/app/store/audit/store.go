// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the Mongo collection holding audit events.
const Collection = "audit_events"

// Event categories
const (
	CategoryAdmin = "admin"
)

// Admin event types
const (
	EventMeetingCreated  = "meeting_created"
	EventMeetingDeleted  = "meeting_deleted"
	EventMeetingsDeleted = "meetings_deleted"
)

// Event is one audit record.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// ActorID is the signed-in user who performed the action.
	ActorID *primitive.ObjectID `bson:"actor_id,omitempty"`
	// MeetingIDs are the meetings the action touched.
	MeetingIDs []primitive.ObjectID `bson:"meeting_ids,omitempty"`

	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter narrows Query. Zero fields are ignored.
type QueryFilter struct {
	ActorID   *primitive.ObjectID
	MeetingID *primitive.ObjectID
	EventType string
	Since     *time.Time
	Limit     int64
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Log records an audit event, filling in the id and timestamp when unset.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Query returns matching events, most recent first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	query := bson.M{}
	if filter.ActorID != nil {
		query["actor_id"] = filter.ActorID
	}
	if filter.MeetingID != nil {
		query["meeting_ids"] = filter.MeetingID
	}
	if filter.EventType != "" {
		query["event_type"] = filter.EventType
	}
	if filter.Since != nil {
		query["timestamp"] = bson.M{"$gte": filter.Since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByMeeting returns the most recent events touching a meeting.
func (s *Store) GetByMeeting(ctx context.Context, meetingID primitive.ObjectID, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{MeetingID: &meetingID, Limit: limit})
}

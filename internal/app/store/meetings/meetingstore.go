// internal/app/store/meetings/meetingstore.go
package meetingstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the Mongo collection holding meeting records.
const Collection = "meetings"

var (
	// ErrNotFound is returned when no meeting has the requested id.
	ErrNotFound = errors.New("meeting not found")
	// ErrInvalidRelated is returned when related is not Contact, Lead or empty.
	ErrInvalidRelated = errors.New(`related must be "Contact", "Lead" or empty`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// UpdateSummary reports the outcome of a batch soft delete.
type UpdateSummary struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

// Create inserts a new meeting. It assigns the id, stamps createdDate and
// clears the deleted flag; every other field is stored exactly as given.
func (s *Store) Create(ctx context.Context, m models.Meeting) (models.Meeting, error) {
	if !m.Related.IsValid() {
		return models.Meeting{}, ErrInvalidRelated
	}

	m.ID = primitive.NewObjectID()
	m.CreatedDate = time.Now().UTC()
	m.Deleted = false

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Meeting{}, fmt.Errorf("insert meeting: %w", err)
	}
	return m, nil
}

// GetByID returns a meeting regardless of its deleted flag.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Meeting, error) {
	var m models.Meeting
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Meeting{}, ErrNotFound
	}
	if err != nil {
		return models.Meeting{}, fmt.Errorf("find meeting %s: %w", id.Hex(), err)
	}
	return m, nil
}

// Find returns meetings matching the filter in store order.
// The caller owns the filter, including any deleted constraint.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Meeting, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find meetings: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Meeting
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode meetings: %w", err)
	}
	return out, nil
}

// SoftDelete sets deleted=true on one meeting and returns the updated record.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) (models.Meeting, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.Meeting
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"deleted": true}}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Meeting{}, ErrNotFound
	}
	if err != nil {
		return models.Meeting{}, fmt.Errorf("soft delete meeting %s: %w", id.Hex(), err)
	}
	return m, nil
}

// SoftDeleteMany sets deleted=true on every listed meeting in one update.
// Ids that match nothing are ignored.
func (s *Store) SoftDeleteMany(ctx context.Context, ids []primitive.ObjectID) (UpdateSummary, error) {
	if len(ids) == 0 {
		return UpdateSummary{}, nil
	}
	res, err := s.c.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		return UpdateSummary{}, fmt.Errorf("soft delete meetings: %w", err)
	}
	return UpdateSummary{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

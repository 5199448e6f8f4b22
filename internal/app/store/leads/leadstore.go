package leadstore

import (
	"context"
	"fmt"

	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "leads"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetByIDs returns the leads with the given ids, keyed by id.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Lead, error) {
	out := make(map[primitive.ObjectID]models.Lead, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}
	defer cur.Close(ctx)

	var rows []models.Lead
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	for _, l := range rows {
		out[l.ID] = l
	}
	return out, nil
}

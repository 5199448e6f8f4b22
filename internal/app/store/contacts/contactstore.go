package contactstore

import (
	"context"
	"fmt"

	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "contacts"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetByIDs returns the contacts with the given ids, keyed by id.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Contact, error) {
	out := make(map[primitive.ObjectID]models.Contact, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}
	defer cur.Close(ctx)

	var rows []models.Contact
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	for _, c := range rows {
		out[c.ID] = c
	}
	return out, nil
}

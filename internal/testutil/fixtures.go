package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts an active user.
func (f *Fixtures) CreateUser(ctx context.Context, first, last, role string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, first, last, role, false)
}

// CreateDeletedUser inserts a soft-deleted user.
func (f *Fixtures) CreateDeletedUser(ctx context.Context, first, last string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, first, last, "user", true)
}

func (f *Fixtures) insertUser(ctx context.Context, first, last, role string, deleted bool) models.User {
	f.t.Helper()
	u := models.User{
		ID:          primitive.NewObjectID(),
		FirstName:   first,
		LastName:    last,
		Email:       first + "@test.com",
		Role:        role,
		Deleted:     deleted,
		CreatedDate: time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create user: %v", err)
	}
	return u
}

// CreateContact inserts a contact.
func (f *Fixtures) CreateContact(ctx context.Context, first, last string) models.Contact {
	f.t.Helper()
	c := models.Contact{
		ID:        primitive.NewObjectID(),
		FirstName: first,
		LastName:  last,
		Email:     first + "@contact.test",
	}
	if _, err := f.db.Collection("contacts").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create contact: %v", err)
	}
	return c
}

// CreateLead inserts a lead.
func (f *Fixtures) CreateLead(ctx context.Context, name string) models.Lead {
	f.t.Helper()
	l := models.Lead{
		ID:       primitive.NewObjectID(),
		LeadName: name,
	}
	if _, err := f.db.Collection("leads").InsertOne(ctx, l); err != nil {
		f.t.Fatalf("failed to create lead: %v", err)
	}
	return l
}

// CreateMeeting inserts m as-is, filling in the id and createdDate when
// they are zero. It bypasses the store so tests can seed deleted meetings
// or meetings without a creator.
func (f *Fixtures) CreateMeeting(ctx context.Context, m models.Meeting) models.Meeting {
	f.t.Helper()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.CreatedDate.IsZero() {
		m.CreatedDate = time.Now().UTC()
	}
	if _, err := f.db.Collection("meetings").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create meeting: %v", err)
	}
	return m
}

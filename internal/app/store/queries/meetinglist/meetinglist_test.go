package meetinglist_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	meetingstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/store/queries/meetinglist"
	userstore "github.com/0-LuckyPenny/react-node-test/internal/app/store/users"
	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"github.com/0-LuckyPenny/react-node-test/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// captureSource returns rows as-is and remembers the filter it was given.
type captureSource struct {
	rows   []models.Meeting
	filter bson.M
	err    error
}

func (c *captureSource) Find(_ context.Context, filter bson.M, _ ...*options.FindOptions) ([]models.Meeting, error) {
	c.filter = filter
	return c.rows, c.err
}

func (c *captureSource) GetByID(_ context.Context, id primitive.ObjectID) (models.Meeting, error) {
	for _, m := range c.rows {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Meeting{}, meetingstore.ErrNotFound
}

type countingUsers struct {
	users map[primitive.ObjectID]models.User
	calls int
	asked []primitive.ObjectID
}

func (c *countingUsers) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	c.calls++
	c.asked = ids
	out := map[primitive.ObjectID]models.User{}
	for _, id := range ids {
		if u, ok := c.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func ptr(id primitive.ObjectID) *primitive.ObjectID { return &id }

func TestList_ForcesDeletedFalseAndBatchesCreators(t *testing.T) {
	ada := models.User{ID: primitive.NewObjectID(), FirstName: "Ada", LastName: "Lovelace"}
	bob := models.User{ID: primitive.NewObjectID(), FirstName: "Bob", LastName: "Smith"}
	src := &captureSource{rows: []models.Meeting{
		{ID: primitive.NewObjectID(), Agenda: "1", CreateBy: ptr(ada.ID)},
		{ID: primitive.NewObjectID(), Agenda: "2", CreateBy: ptr(bob.ID)},
		{ID: primitive.NewObjectID(), Agenda: "3", CreateBy: ptr(ada.ID)},
	}}
	users := &countingUsers{users: map[primitive.ObjectID]models.User{ada.ID: ada, bob.ID: bob}}

	got, err := meetinglist.List(context.Background(), src, users, meetinglist.Filter{"agenda": "x"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if src.filter["deleted"] != false || src.filter["agenda"] != "x" {
		t.Errorf("filter = %v", src.filter)
	}
	if users.calls != 1 || len(users.asked) != 2 {
		t.Errorf("expected one batch lookup of 2 distinct ids, got %d calls %v", users.calls, users.asked)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows", len(got))
	}
	for i, want := range []string{"Ada Lovelace", "Bob Smith", "Ada Lovelace"} {
		if got[i].CreatedByName != want {
			t.Errorf("row %d name = %q, want %q", i, got[i].CreatedByName, want)
		}
		if got[i].Attendes == nil || got[i].AttendesLead == nil {
			t.Errorf("row %d attendee lists must be non-nil", i)
		}
	}
	if got[0].Agenda != "1" || got[2].Agenda != "3" {
		t.Error("store order must be preserved")
	}
}

func TestList_Exclusions(t *testing.T) {
	live := models.User{ID: primitive.NewObjectID(), FirstName: "A", LastName: "B"}
	dead := models.User{ID: primitive.NewObjectID(), FirstName: "C", LastName: "D", Deleted: true}
	keep := models.Meeting{ID: primitive.NewObjectID(), CreateBy: ptr(live.ID)}
	src := &captureSource{rows: []models.Meeting{
		keep,
		{ID: primitive.NewObjectID(), CreateBy: ptr(dead.ID)},
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID(), CreateBy: ptr(primitive.NewObjectID())},
		{ID: primitive.NewObjectID(), CreateBy: ptr(live.ID), Deleted: true},
	}}
	users := &countingUsers{users: map[primitive.ObjectID]models.User{live.ID: live, dead.ID: dead}}

	got, err := meetinglist.List(context.Background(), src, users, meetinglist.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != keep.ID || got[0].CreatedByName != "A B" {
		t.Errorf("got %+v", got)
	}
}

func TestList_StoreError(t *testing.T) {
	src := &captureSource{err: errors.New("boom")}
	if _, err := meetinglist.List(context.Background(), src, &countingUsers{}, meetinglist.Filter{}); err == nil {
		t.Error("expected error")
	}
}

func TestView_MissingCreatorGivesEmptyName(t *testing.T) {
	m := models.Meeting{ID: primitive.NewObjectID(), CreateBy: ptr(primitive.NewObjectID()), Deleted: true}
	src := &captureSource{rows: []models.Meeting{m}}

	got, err := meetinglist.View(context.Background(), src, &countingUsers{}, m.ID)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if got.CreatedByName != "" || !got.Deleted {
		t.Errorf("got %+v", got)
	}
}

func TestView_NotFound(t *testing.T) {
	_, err := meetinglist.View(context.Background(), &captureSource{}, &countingUsers{}, primitive.NewObjectID())
	if !errors.Is(err, meetingstore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestView_NoCreatorSkipsLookup(t *testing.T) {
	m := models.Meeting{ID: primitive.NewObjectID()}
	users := &countingUsers{}

	if _, err := meetinglist.View(context.Background(), &captureSource{rows: []models.Meeting{m}}, users, m.ID); err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if users.calls != 0 {
		t.Errorf("expected no user lookup, got %d", users.calls)
	}
}

/* ----------------------------- against Mongo ----------------------------- */

func TestList_Mongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u1 := fx.CreateUser(ctx, "Ada", "Lovelace", "user")
	gone := fx.CreateDeletedUser(ctx, "Old", "Timer")
	c1 := fx.CreateContact(ctx, "Grace", "Hopper")

	visible := fx.CreateMeeting(ctx, models.Meeting{Agenda: "Sprint Review", CreateBy: ptr(u1.ID), Related: models.RelatedContact, Attendes: []primitive.ObjectID{c1.ID}})
	deleted := fx.CreateMeeting(ctx, models.Meeting{Agenda: "Sprint Review", CreateBy: ptr(u1.ID), Deleted: true})
	orphan := fx.CreateMeeting(ctx, models.Meeting{Agenda: "Sprint Review", CreateBy: ptr(gone.ID)})
	fx.CreateMeeting(ctx, models.Meeting{Agenda: "Other", CreateBy: ptr(u1.ID)})

	meetings := meetingstore.New(db)
	users := userstore.New(db)

	rows, err := meetinglist.List(ctx, meetings, users, meetinglist.Filter{"agenda": "Sprint Review"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != visible.ID || rows[0].CreatedByName != "Ada Lovelace" {
		t.Fatalf("rows = %+v", rows)
	}

	// Attendee filters match array elements.
	rows, err = meetinglist.List(ctx, meetings, users, meetinglist.Filter{"attendes": c1.ID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != visible.ID {
		t.Errorf("attendee filter rows = %+v", rows)
	}

	for _, id := range []primitive.ObjectID{deleted.ID, orphan.ID} {
		v, err := meetinglist.View(ctx, meetings, users, id)
		if err != nil {
			t.Fatalf("View(%s) failed: %v", id.Hex(), err)
		}
		if v.ID != id {
			t.Errorf("View returned %s, want %s", v.ID.Hex(), id.Hex())
		}
	}
	v, _ := meetinglist.View(ctx, meetings, users, orphan.ID)
	if v.CreatedByName != "Old Timer" {
		t.Errorf("orphan view name = %q", v.CreatedByName)
	}
}

func TestList_Mongo_DateEquality(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u1 := fx.CreateUser(ctx, "Ada", "Lovelace", "user")
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)
	later := at.Add(time.Hour)
	hit := fx.CreateMeeting(ctx, models.Meeting{Agenda: "Planning", CreateBy: ptr(u1.ID), DateTime: &at})
	fx.CreateMeeting(ctx, models.Meeting{Agenda: "Planning", CreateBy: ptr(u1.ID), DateTime: &later})

	f, err := meetinglist.ParseFilter(url.Values{"dateTime": {"2024-05-01T15:00:00+02:00"}})
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}
	rows, err := meetinglist.List(ctx, meetingstore.New(db), userstore.New(db), f)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != hit.ID {
		t.Errorf("rows = %+v", rows)
	}
}

package meetings_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0-LuckyPenny/react-node-test/internal/app/features/meetings"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/auth"
	"github.com/0-LuckyPenny/react-node-test/internal/domain/models"
	"github.com/0-LuckyPenny/react-node-test/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fixture struct {
	h        *meetings.Handler
	meetings *fakeMeetings
	ada      models.User
	gone     models.User
}

func newFixture(seed ...models.Meeting) *fixture {
	ada := models.User{ID: primitive.NewObjectID(), FirstName: "Ada", LastName: "Lovelace"}
	gone := models.User{ID: primitive.NewObjectID(), FirstName: "Old", LastName: "Timer", Deleted: true}
	fm := newFakeMeetings(seed...)
	return &fixture{
		h: &meetings.Handler{
			Meetings: fm,
			Users:    fakeUsers{ada.ID: ada, gone.ID: gone},
			Contacts: fakeContacts{},
			Leads:    fakeLeads{},
			History:  &fakeHistory{},
			Log:      zap.NewNop(),
		},
		meetings: fm,
		ada:      ada,
		gone:     gone,
	}
}

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "meetingdesk", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

/* --------------------------------- create --------------------------------- */

func TestHandleCreate_DefaultsCreatorToSessionUser(t *testing.T) {
	fx := newFixture()
	user := testutil.RegularUser()
	contact := primitive.NewObjectID()

	req := testutil.NewJSONRequest(t, "POST", "/api/meeting/add", map[string]any{
		"agenda":   "Sprint Review",
		"related":  "Contact",
		"attendes": []string{contact.Hex()},
		"dateTime": "2024-05-01T10:00:00Z",
		"deleted":  true,
		"bogus":    "ignored",
	})
	req = testutil.WithUser(req, user)
	rec := testutil.NewRecorder()

	fx.h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var got models.Meeting
	rec.DecodeJSON(t, &got)
	if got.ID.IsZero() {
		t.Error("expected generated id")
	}
	if got.Deleted {
		t.Error("expected deleted=false on create")
	}
	if got.CreatedDate.IsZero() {
		t.Error("expected createdDate")
	}
	if len(fx.meetings.created) != 1 {
		t.Fatalf("expected one create, got %d", len(fx.meetings.created))
	}
	stored := fx.meetings.created[0]
	if stored.CreateBy == nil || stored.CreateBy.Hex() != user.ID {
		t.Errorf("createBy = %v, want session user %s", stored.CreateBy, user.ID)
	}
	if len(stored.Attendes) != 1 || stored.Attendes[0] != contact {
		t.Errorf("attendes = %v", stored.Attendes)
	}
	if stored.DateTime == nil || !stored.DateTime.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("dateTime = %v", stored.DateTime)
	}
}

func TestHandleCreate_KeepsExplicitCreator(t *testing.T) {
	fx := newFixture()
	req := testutil.NewJSONRequest(t, "POST", "/api/meeting/add", map[string]any{
		"agenda":   "Planning",
		"createBy": fx.ada.ID.Hex(),
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()

	fx.h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if got := fx.meetings.created[0].CreateBy; got == nil || *got != fx.ada.ID {
		t.Errorf("createBy = %v, want %s", got, fx.ada.ID.Hex())
	}
}

func TestHandleCreate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		storeErr error
	}{
		{"malformed json", `{"agenda":`, nil},
		{"bad attendee id", `{"agenda":"x","attendes":["nope"]}`, nil},
		{"invalid related", `{"agenda":"x","related":"Account"}`, nil},
		{"store failure", `{"agenda":"x"}`, errStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			fx.meetings.err = tt.storeErr
			req := httptest.NewRequest("POST", "/api/meeting/add", bytes.NewBufferString(tt.body))
			rec := testutil.NewRecorder()

			fx.h.HandleCreate(rec, req)

			rec.AssertStatus(t, http.StatusBadRequest)
			var body map[string]string
			rec.DecodeJSON(t, &body)
			if body["error"] != "Failed to create Meeting" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

/* ---------------------------------- list ---------------------------------- */

func TestServeList_HidesDeletedAndOrphaned(t *testing.T) {
	fx := newFixture()
	visible := models.Meeting{ID: primitive.NewObjectID(), Agenda: "Visible", CreateBy: oidPtr(fx.ada.ID)}
	fx.meetings.put(visible)
	fx.meetings.put(models.Meeting{ID: primitive.NewObjectID(), Agenda: "Deleted", CreateBy: oidPtr(fx.ada.ID), Deleted: true})
	fx.meetings.put(models.Meeting{ID: primitive.NewObjectID(), Agenda: "Deleted creator", CreateBy: oidPtr(fx.gone.ID)})
	fx.meetings.put(models.Meeting{ID: primitive.NewObjectID(), Agenda: "No creator"})
	fx.meetings.put(models.Meeting{ID: primitive.NewObjectID(), Agenda: "Unknown creator", CreateBy: oidPtr(primitive.NewObjectID())})

	rec := testutil.NewRecorder()
	fx.h.ServeList(rec, httptest.NewRequest("GET", "/api/meeting", nil))

	rec.AssertStatus(t, http.StatusOK)
	var rows []models.MeetingView
	rec.DecodeJSON(t, &rows)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %+v", len(rows), rows)
	}
	if rows[0].ID != visible.ID || rows[0].CreatedByName != "Ada Lovelace" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestServeList_EmptyIsArray(t *testing.T) {
	fx := newFixture()
	rec := testutil.NewRecorder()
	fx.h.ServeList(rec, httptest.NewRequest("GET", "/api/meeting", nil))

	rec.AssertStatus(t, http.StatusOK)
	if got := bytes.TrimSpace(rec.Body.Bytes()); string(got) != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestServeList_BadFilter(t *testing.T) {
	fx := newFixture()
	for _, q := range []string{"?color=red", "?createBy=xyz"} {
		rec := testutil.NewRecorder()
		fx.h.ServeList(rec, httptest.NewRequest("GET", "/api/meeting"+q, nil))
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}

func TestServeList_StoreFailure(t *testing.T) {
	fx := newFixture()
	fx.meetings.err = errStore

	rec := testutil.NewRecorder()
	fx.h.ServeList(rec, httptest.NewRequest("GET", "/api/meeting", nil))

	rec.AssertStatus(t, http.StatusInternalServerError)
	var body map[string]string
	rec.DecodeJSON(t, &body)
	if body["error"] != "Failed to retrieve data" {
		t.Errorf("body = %v", body)
	}
}

/* ---------------------------------- view ---------------------------------- */

func TestServeView_ReturnsDeletedMeeting(t *testing.T) {
	fx := newFixture()
	m := models.Meeting{ID: primitive.NewObjectID(), Agenda: "Retro", CreateBy: oidPtr(fx.gone.ID), Deleted: true}
	fx.meetings.put(m)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/api/meeting/view/"+m.ID.Hex(), nil), "id", m.ID.Hex())
	rec := testutil.NewRecorder()
	fx.h.ServeView(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var got models.MeetingView
	rec.DecodeJSON(t, &got)
	if !got.Deleted {
		t.Error("expected deleted=true")
	}
	if got.CreatedByName != "Old Timer" {
		t.Errorf("createdByName = %q, want deleted creator's name", got.CreatedByName)
	}
}

func TestServeView_NotFound(t *testing.T) {
	fx := newFixture()
	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/", nil), "id", id)
		rec := testutil.NewRecorder()
		fx.h.ServeView(rec, req)

		rec.AssertStatus(t, http.StatusNotFound)
		var body map[string]string
		rec.DecodeJSON(t, &body)
		if body["message"] != "No meeting found." {
			t.Errorf("id %q: body = %v", id, body)
		}
	}
}

func TestServeView_StoreFailure(t *testing.T) {
	fx := newFixture()
	fx.meetings.err = errStore
	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/", nil), "id", primitive.NewObjectID().Hex())
	rec := testutil.NewRecorder()

	fx.h.ServeView(rec, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
}

/* --------------------------------- delete --------------------------------- */

func TestHandleDelete_ReturnsUpdatedMeeting(t *testing.T) {
	fx := newFixture()
	m := models.Meeting{ID: primitive.NewObjectID(), Agenda: "Standup", CreateBy: oidPtr(fx.ada.ID)}
	fx.meetings.put(m)

	req := testutil.WithChiURLParam(httptest.NewRequest("DELETE", "/", nil), "id", m.ID.Hex())
	rec := testutil.NewRecorder()
	fx.h.HandleDelete(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		Message        string         `json:"message"`
		UpdatedMeeting models.Meeting `json:"updatedMeeting"`
	}
	rec.DecodeJSON(t, &body)
	if body.Message != "Meeting deleted successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if body.UpdatedMeeting.ID != m.ID || !body.UpdatedMeeting.Deleted {
		t.Errorf("updatedMeeting = %+v", body.UpdatedMeeting)
	}
}

func TestHandleDelete_NotFoundAndFailure(t *testing.T) {
	fx := newFixture()
	req := testutil.WithChiURLParam(httptest.NewRequest("DELETE", "/", nil), "id", primitive.NewObjectID().Hex())
	rec := testutil.NewRecorder()
	fx.h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)

	fx.meetings.err = errStore
	req = testutil.WithChiURLParam(httptest.NewRequest("DELETE", "/", nil), "id", primitive.NewObjectID().Hex())
	rec = testutil.NewRecorder()
	fx.h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestHandleDeleteMany_IgnoresMissingIDs(t *testing.T) {
	fx := newFixture()
	m := models.Meeting{ID: primitive.NewObjectID(), Agenda: "A", CreateBy: oidPtr(fx.ada.ID)}
	fx.meetings.put(m)

	req := testutil.NewJSONRequest(t, "POST", "/api/meeting/deleteMany", []string{m.ID.Hex(), primitive.NewObjectID().Hex()})
	rec := testutil.NewRecorder()
	fx.h.HandleDeleteMany(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		Message         string `json:"message"`
		UpdatedMeetings struct {
			Matched  int64 `json:"matchedCount"`
			Modified int64 `json:"modifiedCount"`
		} `json:"updatedMeetings"`
	}
	rec.DecodeJSON(t, &body)
	if body.Message != "Meetings deleted successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if body.UpdatedMeetings.Matched != 1 || body.UpdatedMeetings.Modified != 1 {
		t.Errorf("summary = %+v", body.UpdatedMeetings)
	}
	if !fx.meetings.rows[m.ID].Deleted {
		t.Error("expected existing meeting to be deleted")
	}
}

func TestHandleDeleteMany_EmptyList(t *testing.T) {
	fx := newFixture()
	rec := testutil.NewRecorder()
	fx.h.HandleDeleteMany(rec, testutil.NewJSONRequest(t, "POST", "/", []string{}))
	rec.AssertStatus(t, http.StatusOK)
}

func TestHandleDeleteMany_BadInput(t *testing.T) {
	fx := newFixture()
	for _, body := range []string{`{"ids":[]}`, `["` + primitive.NewObjectID().Hex() + `","zzz"]`} {
		rec := testutil.NewRecorder()
		fx.h.HandleDeleteMany(rec, httptest.NewRequest("POST", "/", bytes.NewBufferString(body)))
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}

/* --------------------------------- routes --------------------------------- */

func TestRoutes_RequireSignIn(t *testing.T) {
	fx := newFixture()
	r := meetings.Routes(fx.h, newSessionManager(t))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRoutes_DeleteRequiresCapability(t *testing.T) {
	fx := newFixture()
	m := models.Meeting{ID: primitive.NewObjectID(), Agenda: "A", CreateBy: oidPtr(fx.ada.ID)}
	fx.meetings.put(m)
	r := meetings.Routes(fx.h, newSessionManager(t))

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("DELETE", "/delete/"+m.ID.Hex(), nil), testutil.AnalystUser())
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("analyst delete: status = %d, want 403", rec.Code)
	}
	if fx.meetings.rows[m.ID].Deleted {
		t.Error("analyst must not delete")
	}

	rec = httptest.NewRecorder()
	req = testutil.WithUser(httptest.NewRequest("DELETE", "/delete/"+m.ID.Hex(), nil), testutil.RegularUser())
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("user delete: status = %d, want 200", rec.Code)
	}
}

func TestRoutes_AnalystCanRead(t *testing.T) {
	fx := newFixture()
	r := meetings.Routes(fx.h, newSessionManager(t))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.WithUser(httptest.NewRequest("GET", "/", nil), testutil.AnalystUser()))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

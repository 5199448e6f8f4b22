// internal/app/features/meetings/routes.go
package meetings

import (
	"net/http"

	"github.com/0-LuckyPenny/react-node-test/internal/app/policy/meetingpolicy"
	"github.com/0-LuckyPenny/react-node-test/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the meeting API. It is served under /api/meeting.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/add", h.HandleCreate)
		pr.Get("/", h.ServeList)
		pr.Get("/view/{id}", h.ServeView)
		pr.Get("/view/{id}/card", h.ServeCard)

		pr.Group(func(dr chi.Router) {
			dr.Use(requireMeetingDelete)
			dr.Delete("/delete/{id}", h.HandleDelete)
			dr.Post("/deleteMany", h.HandleDeleteMany)
		})

		pr.With(sm.RequireRole("admin", "superadmin")).Get("/history/{id}", h.ServeHistory)
	})

	return r
}

// requireMeetingDelete lets the request through only when the user's role
// holds the delete capability on meetings.
func requireMeetingDelete(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !meetingpolicy.ForRequest(r, meetingpolicy.Meetings).Delete {
			auth.Forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Package meetingpolicy decides what a role may do with meetings and the
// records meetings point at.
//
// Authorization rules:
//   - Superadmins and Admins can view, update and delete everything
//   - Users can view and update everything, and delete only meetings
//   - Analysts can only view
//   - Other roles get nothing
package meetingpolicy

import (
	"net/http"
	"strings"

	"github.com/0-LuckyPenny/react-node-test/internal/app/system/authz"
)

// Entity names a record type a capability applies to.
type Entity string

const (
	Meetings Entity = "Meetings"
	Contacts Entity = "Contacts"
	Leads    Entity = "Leads"
)

// Capabilities is the set of actions a role holds on one entity type.
type Capabilities struct {
	View   bool `json:"view"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Access returns the capabilities of role on entity. Unknown roles and
// unknown entities get the zero value.
func Access(role string, entity Entity) Capabilities {
	switch entity {
	case Meetings, Contacts, Leads:
	default:
		return Capabilities{}
	}

	switch strings.ToLower(strings.TrimSpace(role)) {
	case "superadmin", "admin":
		return Capabilities{View: true, Update: true, Delete: true}
	case "user":
		return Capabilities{View: true, Update: true, Delete: entity == Meetings}
	case "analyst":
		return Capabilities{View: true}
	default:
		return Capabilities{}
	}
}

// ForRequest returns the signed-in user's capabilities on entity.
// Visitors get nothing.
func ForRequest(r *http.Request, entity Entity) Capabilities {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return Capabilities{}
	}
	return Access(role, entity)
}

// AttendeeEntity maps a meeting's related field to the entity type its
// attendees belong to. Anything other than "Lead" resolves to Contacts.
func AttendeeEntity(related string) Entity {
	if related == "Lead" {
		return Leads
	}
	return Contacts
}

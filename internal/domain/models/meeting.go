// internal/domain/models/meeting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Related tags which attendee collection on a Meeting is authoritative.
type Related string

const (
	RelatedContact     Related = "Contact"
	RelatedLead        Related = "Lead"
	RelatedUnspecified Related = ""
)

// IsValid reports whether r is one of the known tags (including unspecified).
func (r Related) IsValid() bool {
	switch r {
	case RelatedContact, RelatedLead, RelatedUnspecified:
		return true
	}
	return false
}

// Meeting is a meeting record in the "meetings" collection.
//
// Field names on the wire and on disk are shared with the existing CRM client,
// so they keep its spelling (including "attendes").
type Meeting struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Agenda       string               `bson:"agenda" json:"agenda"`
	Attendes     []primitive.ObjectID `bson:"attendes,omitempty" json:"attendes"`
	AttendesLead []primitive.ObjectID `bson:"attendesLead,omitempty" json:"attendesLead"`
	Location     string               `bson:"location,omitempty" json:"location,omitempty"`
	Related      Related              `bson:"related,omitempty" json:"related,omitempty"`
	DateTime     *time.Time           `bson:"dateTime,omitempty" json:"dateTime,omitempty"`
	Notes        string               `bson:"notes,omitempty" json:"notes,omitempty"`
	CreateBy     *primitive.ObjectID  `bson:"createBy,omitempty" json:"createBy,omitempty"`
	Timestamp    *time.Time           `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	Deleted      bool                 `bson:"deleted" json:"deleted"`
	CreatedDate  time.Time            `bson:"createdDate" json:"createdDate"`
}

// AttendeeIDs returns the authoritative attendee references: the lead list
// for Lead meetings, the contact list otherwise.
func (m Meeting) AttendeeIDs() []primitive.ObjectID {
	if m.Related == RelatedLead {
		return m.AttendesLead
	}
	return m.Attendes
}

// MeetingView is the read-side projection of a Meeting with the creator's
// name joined in. It is never stored.
type MeetingView struct {
	ID            primitive.ObjectID   `json:"_id"`
	Agenda        string               `json:"agenda"`
	Attendes      []primitive.ObjectID `json:"attendes"`
	AttendesLead  []primitive.ObjectID `json:"attendesLead"`
	CreatedByName string               `json:"createdByName"`
	DateTime      *time.Time           `json:"dateTime,omitempty"`
	Deleted       bool                 `json:"deleted"`
	Location      string               `json:"location,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Related       Related              `json:"related,omitempty"`
	Timestamp     *time.Time           `json:"timestamp,omitempty"`
}

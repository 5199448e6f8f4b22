package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Contact is an attendee of Contact-related meetings.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Deleted   bool               `bson:"deleted" json:"deleted"`
}

// Lead is an attendee of Lead-related meetings.
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	LeadName  string             `bson:"leadName" json:"leadName"`
	LeadEmail string             `bson:"leadEmail,omitempty" json:"leadEmail,omitempty"`
	Deleted   bool               `bson:"deleted" json:"deleted"`
}

// FullName joins first and last name with a single space.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

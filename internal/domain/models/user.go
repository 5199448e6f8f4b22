// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a console user. Meetings reference users through createBy; this
// service only reads them.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Role        string             `bson:"role,omitempty" json:"role,omitempty"` // superadmin | admin | user | analyst
	Deleted     bool               `bson:"deleted" json:"deleted"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
}

// FullName joins first and last name with a single space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

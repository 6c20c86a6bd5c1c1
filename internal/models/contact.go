package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is stored in the "contacts" collection. Owner is the creating
// user; sharedUsers grants read access and never contains the owner.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	FirstName     string `bson:"first_name" json:"firstName"`
	LastName      string `bson:"last_name" json:"lastName"`
	Email         string `bson:"email" json:"email"`
	ContactNumber string `bson:"contact_number" json:"contactNumber"`
	ProfilePhoto  string `bson:"profile_photo,omitempty" json:"profilePhoto,omitempty"`

	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	SharedUsers []primitive.ObjectID `bson:"shared_users,omitempty" json:"sharedUsers,omitempty"`
}

// SharedUserRef is the display form of a shared user returned by
// share/unshare responses.
type SharedUserRef struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
}

// SharedContact is a contact with sharedUsers resolved to display fields.
type SharedContact struct {
	Contact     `bson:",inline"`
	SharedUsers []SharedUserRef `json:"sharedUsers"`
}

// IsOwner reports whether userID owns the contact.
func (c *Contact) IsOwner(userID primitive.ObjectID) bool {
	return c.Owner == userID
}

// IsSharedWith reports whether the contact has been shared with userID.
func (c *Contact) IsSharedWith(userID primitive.ObjectID) bool {
	for _, id := range c.SharedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// CanView reports whether userID is the owner or a shared user.
func (c *Contact) CanView(userID primitive.ObjectID) bool {
	return c.IsOwner(userID) || c.IsSharedWith(userID)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// User is stored in the "users" collection. Email carries a unique index
// that spans soft-deleted accounts.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	FirstName     string `bson:"first_name" json:"firstName"`
	LastName      string `bson:"last_name" json:"lastName"`
	Email         string `bson:"email" json:"email"`
	ContactNumber string `bson:"contact_number" json:"contactNumber"`
	ProfilePhoto  string `bson:"profile_photo,omitempty" json:"profilePhoto,omitempty"`
	Password      string `bson:"password" json:"-"` // Don't return password in JSON

	Role       string `bson:"role" json:"role"`
	IsApproved bool   `bson:"is_approved" json:"isApproved"`
	IsActive   bool   `bson:"is_active" json:"isActive"`
	IsDeleted  bool   `bson:"is_deleted" json:"isDeleted"`

	ResetPasswordToken   string     `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"reset_password_expires,omitempty" json:"-"`
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanSignIn returns the reason an account may not sign in, or "" when the
// account is in good standing.
func (u *User) CanSignIn() string {
	switch {
	case !u.IsActive:
		return "Your account has been deactivated. Contact support."
	case u.IsDeleted:
		return "Your account has been deleted."
	case !u.IsApproved:
		return "Your account is not approved yet."
	}
	return ""
}

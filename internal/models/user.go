package models

import (
	"time"
)

// User represents an account in the user directory. Only the password field
// is ever mutated by this service; everything else is owned by whatever
// provisioned the account.
type User struct {
	Base         `bson:",inline"`
	Login        string    `bson:"login" json:"login"`
	Name         string    `bson:"name" json:"name"` // display name
	Email        string    `bson:"email" json:"email"`
	Role         string    `bson:"role" json:"role"` // e.g. "subscriber", "editor"
	PasswordHash string    `bson:"password" json:"-"`
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	Deleted      bool      `bson:"deleted" json:"-"` // Soft delete flag
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

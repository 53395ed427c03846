package models

import "time"

// User represents an account entity used for authentication and board
// ownership scoping.
type User struct {
	// UserID is the unique identifier of the user (UUID). Items reference it
	// through their owner_id column.
	UserID string `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Name is the display name of the user. Non-sensitive.
	Name string `json:"name"`

	// Password carries the plaintext password of a register/login request.
	// It is never persisted: the store keeps only PasswordHash.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	// Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

package models

import "time"

// Account is an authentication record. It is separate from the User
// profile: the account holds credentials and the role, the profile holds
// display data and is materialised lazily on first sign-in.
type Account struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Roles recognised by the route guard.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

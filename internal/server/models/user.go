// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account row. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Identity returns the id/email/role projection of u.
func (u *User) Identity() UserIdentity {
	return UserIdentity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// UserIdentity is the public projection of a user returned by GET /whoMI
// and embedded in session tokens.
type UserIdentity struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Role  Role   `db:"role" json:"role"`
}

// Package models holds the request and response payloads the CLI exchanges
// with the account API.
package models

import "time"

// Role mirrors the server's integer role: 1 user, 2 admin.
type Role int

const (
	RoleUser  Role = 1
	RoleAdmin Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ProfileDetails is the user_details object of a registration request.
type ProfileDetails struct {
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
}

// RegisterRequest is the body of POST /register. A nil Role lets the server
// pick the default.
type RegisterRequest struct {
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	FullName    string          `json:"fullName"`
	Role        *Role           `json:"role,omitempty"`
	UserDetails *ProfileDetails `json:"user_details"`
}

// InsertResult is the body of a successful registration.
type InsertResult struct {
	Command  string `json:"command"`
	RowCount int    `json:"rowCount"`
	Rows     []InsertedRow `json:"rows"`
}

type InsertedRow struct {
	UserID string `json:"user_id"`
}

// UserID returns the id of the created user, or "" when the result is empty.
func (r *InsertResult) UserID() string {
	if r == nil || len(r.Rows) == 0 {
		return ""
	}
	return r.Rows[0].UserID
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the data part of a successful login.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Identity is the data part of GET /whoMI.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

package models

// Role is the single integer authorization attribute carried by a user.
type Role int

const (
	RoleUser  Role = 1
	RoleAdmin Role = 2
)

// DefaultRole is assigned when registration omits a role.
const DefaultRole = RoleUser

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

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

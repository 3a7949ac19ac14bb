package models

// Role is the canonical portal role for managed users.
type Role int

const (
	RoleProvider Role = iota
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "provider"
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// User is the canonical managed user. RoleID is the backend's numeric role
// identifier, retained only for round-tripping to the update endpoint; zero
// means the backend never supplied one.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	RoleID int    `json:"role_id,omitempty"`
}

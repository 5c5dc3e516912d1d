package session

import "fmt"

// Role decides which dashboard and navigation set a session sees.
type Role int

const (
	RolePatient Role = iota
	RoleDoctor
	RoleAdmin
)

// Roles lists every role in display order.
var Roles = []Role{RolePatient, RoleDoctor, RoleAdmin}

func (r Role) String() string {
	switch r {
	case RolePatient:
		return "patient"
	case RoleDoctor:
		return "doctor"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Title is the human label used in greetings.
func (r Role) Title() string {
	switch r {
	case RolePatient:
		return "Patient"
	case RoleDoctor:
		return "Doctor"
	case RoleAdmin:
		return "Administrator"
	default:
		return "User"
	}
}

// DashboardPath is where a logged in session lands.
func (r Role) DashboardPath() string {
	return "/" + r.String()
}

// ParseRole reports whether s names a known role.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "patient":
		return RolePatient, true
	case "doctor":
		return RoleDoctor, true
	case "admin":
		return RoleAdmin, true
	}
	return RolePatient, false
}

// RoleOrDefault maps anything unknown to RolePatient.
func RoleOrDefault(s string) Role {
	r, _ := ParseRole(s)
	return r
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, ok := ParseRole(string(text))
	if !ok {
		return fmt.Errorf("unknown role %q", string(text))
	}
	*r = parsed
	return nil
}

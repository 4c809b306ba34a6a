package domain

import "strings"

type User struct {
	ID        string   `json:"id" db:"id"`
	FirstName string   `json:"first_name" db:"first_name"`
	LastName  string   `json:"last_name" db:"last_name"`
	Email     string   `json:"email" db:"email"`
	Role      UserRole `json:"role" db:"role"`
}

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleClient  UserRole = "CLIENT"
	RoleTeam    UserRole = "TEAM"
	RoleGuest   UserRole = "GUEST"

	// RoleUnknown is the neutral bucket for any value outside the enumeration.
	RoleUnknown UserRole = ""
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleClient, RoleTeam, RoleGuest:
		return true
	default:
		return false
	}
}

// ParseRole maps free-form input onto the enumeration. Anything it does not
// recognise lands in RoleUnknown.
func ParseRole(s string) UserRole {
	r := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	if r.IsValid() {
		return r
	}
	return RoleUnknown
}

// HasElevatedAccess reports whether the role sees every project.
func (r UserRole) HasElevatedAccess() bool {
	return r == RoleAdmin || r == RoleManager
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) HasName() bool {
	return u.FirstName != "" && u.LastName != ""
}

// Viewer is the identity a feed or listing is computed for.
type Viewer struct {
	ID   string   `json:"id"`
	Role UserRole `json:"role"`
}

func NewViewer(id string, role string) Viewer {
	return Viewer{ID: id, Role: ParseRole(role)}
}

func (u *User) Viewer() Viewer {
	return Viewer{ID: u.ID, Role: ParseRole(string(u.Role))}
}

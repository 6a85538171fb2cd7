package domain

// Role represents a user's access level.
type Role string

// User roles.
const (
	RoleIntern Role = "intern"
	RoleAdmin  Role = "admin"
)

// IsValid checks if the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleIntern, RoleAdmin:
		return true
	}
	return false
}

// HasPermission reports whether the role satisfies the minimum required role.
func (r Role) HasPermission(minRole Role) bool {
	levels := map[Role]int{
		RoleIntern: 1,
		RoleAdmin:  2,
	}
	return levels[r] >= levels[minRole]
}

// User represents an application user account.
// Password is stored and compared as plaintext for behavioral parity with the
// mock backend this service replaces. Sanitized copies never carry it.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// Sanitized returns a copy of the user with the password stripped.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

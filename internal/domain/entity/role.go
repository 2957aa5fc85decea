package entity

// Role is the closed set of principal roles. Anything outside the set fails
// closed at the authentication layer, never falls back to a default.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a stored role value onto the closed enum. The boolean is
// false for unrecognized values.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleStaff, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

// Principal is a verified {id, role} pair, immutable for the request's
// lifetime. It is resolved once by the auth middleware and passed as explicit
// context into the use cases.
type Principal struct {
	ID   string
	Role Role
}

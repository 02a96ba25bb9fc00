package constants

// Platform roles. Every authenticated request carries exactly one of
// these in its JWT claims; authorization tables key off them.
const (
	RolePassenger = "passenger"
	RoleCoolie    = "coolie"
	RoleAdmin     = "admin"
)

// ValidRole reports whether s is a known platform role.
func ValidRole(s string) bool {
	switch s {
	case RolePassenger, RoleCoolie, RoleAdmin:
		return true
	default:
		return false
	}
}

// RegistrableRoles are the roles a user may self-register with.
// Admin accounts are only created by the seeder.
var RegistrableRoles = []string{RolePassenger, RoleCoolie}

package entity

// Authorization roles. Every user carries at least RoleUser; RoleAdmin is
// granted through the admin promote operation.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// DefaultRoles is the role set assigned at registration.
func DefaultRoles() []string {
	return []string{RoleUser}
}

package auth

import "strings"

// Role is the simplified role used for capability checks.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDeveloper Role = "DEVELOPER"
	RoleChef      Role = "CHEF"
	RoleEmployee  Role = "EMPLOYEE"
	RoleUser      Role = "USER"
)

// Roles lists every role, most privileged first.
var Roles = []Role{RoleDeveloper, RoleAdmin, RoleChef, RoleEmployee, RoleUser}

// MapBackendRole converts a backend authority ("ROLE_CHEF") into a Role.
// Unknown values map to RoleUser.
func MapBackendRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ROLE_ADMIN", "ADMIN":
		return RoleAdmin
	case "ROLE_DEVELOPER", "DEVELOPER":
		return RoleDeveloper
	case "ROLE_CHEF", "CHEF":
		return RoleChef
	case "ROLE_EMPLOYEE", "EMPLOYEE":
		return RoleEmployee
	}
	return RoleUser
}

// BackendRole is the inverse of MapBackendRole.
func (r Role) BackendRole() string {
	return "ROLE_" + string(r)
}

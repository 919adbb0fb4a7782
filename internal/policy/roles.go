// Package policy maps roles to what they may do in the kitchen.
package policy

import (
	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/gate"
)

// Resource types used in permissions.
const (
	ResourceProduit = "produit"
	ResourceMenu    = "menu"
	ResourceUser    = "user"
	ResourceAlerte  = "alerte"
	ResourceRapport = "rapport"
)

var readAll = gate.Expand(gate.WildcardAll, gate.ReadActions...)

// RolePermissions is the static role table.
var RolePermissions = map[auth.Role][]gate.Permission{
	auth.RoleDeveloper: {gate.PermissionSuperAdmin},
	auth.RoleAdmin:     {gate.PermissionSuperAdmin},
	auth.RoleChef: append([]gate.Permission{
		ResourceProduit + ":*",
		ResourceMenu + ":*",
		ResourceRapport + ":*",
	}, readAll...),
	auth.RoleEmployee: readAll,
	auth.RoleUser:     readAll,
}

// Capability is a coarse, UI-level right derived from the role table.
type Capability string

const (
	ManageInventory Capability = "manage_inventory"
	ManageMenus     Capability = "manage_menus"
	ManageUsers     Capability = "manage_users"
	ViewReports     Capability = "view_reports"
	ReadOnly        Capability = "read_only"
)

// capabilityPermission is the permission a role must hold for a capability.
var capabilityPermission = map[Capability]gate.Permission{
	ManageInventory: gate.NewPermission(ResourceProduit, gate.ActionUpdate),
	ManageMenus:     gate.NewPermission(ResourceMenu, gate.ActionUpdate),
	ManageUsers:     gate.NewPermission(ResourceUser, gate.ActionUpdate),
	ViewReports:     gate.NewPermission(ResourceRapport, gate.ActionReport),
}

// Profiles builds one static profile per role.
func Profiles() map[auth.Role]*gate.StaticProfile {
	out := make(map[auth.Role]*gate.StaticProfile, len(RolePermissions))
	for role, perms := range RolePermissions {
		out[role] = gate.NewStaticProfile(string(role), perms...)
	}
	return out
}

// NewResolver returns a resolver over the static role table.
func NewResolver() *gate.StaticResolver[auth.Role] {
	r := gate.NewStaticResolver[auth.Role]()
	for role, p := range Profiles() {
		r.Set(role, p)
	}
	return r
}

var profiles = Profiles()

// Has reports whether role holds capability c. ReadOnly is held by EMPLOYEE
// only: USER is not granted writes either but is not shown as read-only.
func Has(role auth.Role, c Capability) bool {
	if c == ReadOnly {
		return role == auth.RoleEmployee
	}
	p, ok := profiles[role]
	if !ok {
		return false
	}
	perm, ok := capabilityPermission[c]
	return ok && p.HasPermission(perm)
}

func CanManageInventory(role auth.Role) bool { return Has(role, ManageInventory) }
func CanManageMenus(role auth.Role) bool     { return Has(role, ManageMenus) }
func CanManageUsers(role auth.Role) bool     { return Has(role, ManageUsers) }
func CanViewReports(role auth.Role) bool     { return Has(role, ViewReports) }
func IsReadOnly(role auth.Role) bool         { return Has(role, ReadOnly) }

// Capabilities lists what role may do, in a fixed order.
func Capabilities(role auth.Role) []Capability {
	var out []Capability
	for _, c := range []Capability{ManageInventory, ManageMenus, ManageUsers, ViewReports, ReadOnly} {
		if Has(role, c) {
			out = append(out, c)
		}
	}
	return out
}

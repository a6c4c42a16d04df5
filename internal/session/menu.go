package session

import "github.com/tillworks/till/internal/api"

// Link is one navigation entry with the roles allowed to see it. The role
// filter is a UX convenience only; the server enforces authorization
// independently on every endpoint.
type Link struct {
	Path  string
	Label string
	Roles []api.Role
}

// Menu returns the full navigation table in display order.
func Menu() []Link {
	return []Link{
		{Path: "/dashboard", Label: "Dashboard", Roles: []api.Role{api.RoleAdmin, api.RoleCashier}},
		{Path: "/products", Label: "Products", Roles: []api.Role{api.RoleAdmin, api.RoleCashier}},
		{Path: "/categories", Label: "Categories", Roles: []api.Role{api.RoleAdmin}},
		{Path: "/inventory", Label: "Inventory", Roles: []api.Role{api.RoleAdmin}},
		{Path: "/orders", Label: "Orders", Roles: []api.Role{api.RoleAdmin, api.RoleCashier}},
		{Path: "/reports", Label: "Reports", Roles: []api.Role{api.RoleAdmin}},
	}
}

// Allows reports whether the link's allowed-role set contains role.
func (l Link) Allows(role api.Role) bool {
	for _, r := range l.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FilterMenu returns the links visible to the given role, preserving order.
func FilterMenu(links []Link, role api.Role) []Link {
	var visible []Link
	for _, link := range links {
		if link.Allows(role) {
			visible = append(visible, link)
		}
	}
	return visible
}

// ActiveLink returns the link matching the current path exactly, or
// ok=false when no link matches.
func ActiveLink(links []Link, currentPath string) (Link, bool) {
	for _, link := range links {
		if link.Path == currentPath {
			return link, true
		}
	}
	return Link{}, false
}

package handlers

import (
	"strings"

	"github.com/romich96/AlexCoffee/internal/models"
)

// routePermissions maps back-office route prefixes to the roles allowed
// to use them. Longest prefix wins; anything not listed is public.
// Access is decided here, before handler logic, rather than inside each
// handler.
var routePermissions = []struct {
	prefix string
	roles  []models.Role
}{
	{"/admin/users", []models.Role{models.RoleAdmin}},
	{"/admin", []models.Role{models.RoleAdmin, models.RoleManager}},
}

// Allowed reports whether the role may access the route.
func Allowed(role models.Role, route string) bool {
	for _, rp := range routePermissions {
		if strings.HasPrefix(route, rp.prefix) {
			for _, allowed := range rp.roles {
				if role == allowed {
					return true
				}
			}
			return false
		}
	}
	return true // public route
}

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/romich96/AlexCoffee/internal/models"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role  models.Role
		route string
		want  bool
	}{
		{models.RoleAdmin, "/admin", true},
		{models.RoleAdmin, "/admin/orders", true},
		{models.RoleAdmin, "/admin/users", true},
		{models.RoleManager, "/admin", true},
		{models.RoleManager, "/admin/orders", true},
		{models.RoleManager, "/admin/users", false},
		{models.RoleManager, "/admin/users/delete", false},
		{models.RoleClient, "/admin", false},
		{models.RoleClient, "/admin/orders", false},
		{models.RoleClient, "/cart", true},
		{models.RoleClient, "/checkout", true},
		{"", "/", true},
		{"", "/admin", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.role, tc.route), "%s on %s", tc.role, tc.route)
	}
}

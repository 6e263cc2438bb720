package security_test

import (
	"testing"

	"watchlist-server/internal/security"

	"github.com/stretchr/testify/assert"
)

func TestContainsRole(t *testing.T) {
	tests := []struct {
		name     string
		roles    string
		required string
		expected bool
	}{
		{name: "single admin", roles: "admin", required: "admin", expected: true},
		{name: "admin among others", roles: "guest,admin,customer", required: "admin", expected: true},
		{name: "spaces around entries", roles: " guest , admin ", required: "admin", expected: true},
		{name: "no admin", roles: "guest,customer", required: "admin", expected: false},
		{name: "empty string", roles: "", required: "admin", expected: false},
		{name: "substring is not a match", roles: "administrator", required: "admin", expected: false},
		{name: "case sensitive", roles: "Admin", required: "admin", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, security.ContainsRole(tt.roles, tt.required))
		})
	}
}

func TestValidateRoleAdmin(t *testing.T) {
	assert.NoError(t, security.ValidateRoleAdmin("admin"))
	assert.NoError(t, security.ValidateRoleAdmin("customer,admin"))

	assert.ErrorIs(t, security.ValidateRoleAdmin("guest,customer"), security.ErrForbidden)
	assert.ErrorIs(t, security.ValidateRoleAdmin(""), security.ErrForbidden)
}

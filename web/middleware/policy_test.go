package middleware

import (
	"testing"

	"user-admin/database/model"

	"github.com/stretchr/testify/assert"
)

func TestPolicyPublicPaths(t *testing.T) {
	policy := DefaultPolicy()

	for _, path := range []string{
		"/auth/login",
		"/auth/register",
		"/auth/logout",
		"/error",
		"/users/",
		"/users/info",
	} {
		assert.Equal(t, Allow, policy.Decide(path, nil), path)
	}
}

func TestPolicyAdminPaths(t *testing.T) {
	policy := DefaultPolicy()

	admin := []string{model.RoleAdmin}
	user := []string{model.RoleUser}
	both := []string{model.RoleUser, model.RoleAdmin}

	assert.Equal(t, RedirectLogin, policy.Decide("/api/admin/users", nil))
	assert.Equal(t, Deny, policy.Decide("/api/admin/users", user))
	assert.Equal(t, Allow, policy.Decide("/api/admin/users", admin))
	assert.Equal(t, Allow, policy.Decide("/api/admin/users/7", both))

	// a session with no authorities at all is authenticated but
	// under-privileged
	assert.Equal(t, Deny, policy.Decide("/api/admin/users", []string{}))
}

func TestPolicyUserPaths(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, RedirectLogin, policy.Decide("/api/user", nil))
	assert.Equal(t, Allow, policy.Decide("/api/user/", []string{model.RoleUser}))
	assert.Equal(t, Allow, policy.Decide("/api/user/", []string{model.RoleAdmin}))
	assert.Equal(t, Deny, policy.Decide("/api/user/", []string{"ROLE_OTHER"}))
}

func TestPolicyCatchAll(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, RedirectLogin, policy.Decide("/panel/", nil))
	assert.Equal(t, Allow, policy.Decide("/panel/", []string{model.RoleUser}))
	assert.Equal(t, Allow, policy.Decide("/", []string{"ROLE_OTHER"}))
	assert.Equal(t, RedirectLogin, policy.Decide("/", nil))
}

// The most specific prefix must win regardless of rule order.
func TestPolicyLongestPrefixWins(t *testing.T) {
	policy := NewPolicy([]Rule{
		{Prefix: "/"},
		{Prefix: "/api/", Roles: []string{model.RoleUser}},
		{Prefix: "/api/admin/", Roles: []string{model.RoleAdmin}},
	})

	assert.Equal(t, Deny, policy.Decide("/api/admin/users", []string{model.RoleUser}))
	assert.Equal(t, Allow, policy.Decide("/api/other", []string{model.RoleUser}))
	assert.Equal(t, Allow, policy.Decide("/somewhere", []string{"ROLE_OTHER"}))
}

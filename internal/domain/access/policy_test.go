package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBypassPolicy(t *testing.T) {
	p := DefaultBypassPolicy()

	assert.True(t, p.Bypasses(RoleAdmin))
	assert.True(t, p.Bypasses(RoleStudent))
	assert.False(t, p.Bypasses(RoleTeacher))
	assert.False(t, p.Bypasses(RoleMember))
	assert.False(t, p.Bypasses(Role("")))
	assert.Equal(t, []Role{RoleAdmin, RoleStudent}, p.Roles())

	rule, ok := p.Rule(RoleStudent)
	assert.True(t, ok)
	assert.True(t, rule.Provisional)

	rule, ok = p.Rule(RoleAdmin)
	assert.True(t, ok)
	assert.False(t, rule.Provisional)
}

func TestBypassPolicy_ZeroValueBypassesNothing(t *testing.T) {
	var p BypassPolicy
	assert.False(t, p.Bypasses(RoleAdmin))
	assert.Empty(t, p.Roles())
}

func TestBypassPolicy_WithoutLeavesOriginalIntact(t *testing.T) {
	p := DefaultBypassPolicy()
	revoked := p.Without(RoleStudent)

	assert.False(t, revoked.Bypasses(RoleStudent))
	assert.True(t, revoked.Bypasses(RoleAdmin))
	assert.True(t, p.Bypasses(RoleStudent))
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleMember} {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("owner").Valid())
}

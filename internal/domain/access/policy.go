package access

import "sort"

// BypassRule exempts one role from plan tier checks.
// Provisional rules are expected to be revisited and may be revoked by configuration.
type BypassRule struct {
	Role        Role
	Provisional bool
}

var (
	AdminBypass = BypassRule{Role: RoleAdmin}

	// Students are assumed entitled for now; revoke with BypassPolicy.Without(RoleStudent).
	StudentBypass = BypassRule{Role: RoleStudent, Provisional: true}
)

// BypassPolicy is the fixed set of roles exempt from tier checks.
// The zero value bypasses nothing. A policy is never mutated after construction.
type BypassPolicy struct {
	rules map[Role]BypassRule
}

func NewBypassPolicy(rules ...BypassRule) BypassPolicy {
	m := make(map[Role]BypassRule, len(rules))
	for _, r := range rules {
		m[r.Role] = r
	}
	return BypassPolicy{rules: m}
}

func DefaultBypassPolicy() BypassPolicy {
	return NewBypassPolicy(AdminBypass, StudentBypass)
}

func (p BypassPolicy) Bypasses(role Role) bool {
	_, ok := p.rules[role]
	return ok
}

// Rule returns the rule registered for role, if any.
func (p BypassPolicy) Rule(role Role) (BypassRule, bool) {
	r, ok := p.rules[role]
	return r, ok
}

// Without returns a copy of p with role removed.
func (p BypassPolicy) Without(role Role) BypassPolicy {
	m := make(map[Role]BypassRule, len(p.rules))
	for k, v := range p.rules {
		if k != role {
			m[k] = v
		}
	}
	return BypassPolicy{rules: m}
}

// Roles lists the bypassing roles in sorted order.
func (p BypassPolicy) Roles() []Role {
	out := make([]Role, 0, len(p.rules))
	for r := range p.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

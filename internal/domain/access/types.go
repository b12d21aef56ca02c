package access

import "entitlements-api/internal/domain/plans"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleMember  Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleMember:
		return true
	}
	return false
}

// Subject is the read-only view of a user that gating needs.
// A nil PlanTier means the user has no plan provisioned.
type Subject struct {
	Role     Role
	PlanTier *plans.Tier
}

// GateRequest describes the feature being opened and the tier it requires.
type GateRequest struct {
	RequiredTier plans.Tier
	FeatureName  string
}

// DecisionBasis names the rule that produced a GateDecision.
type DecisionBasis string

const (
	BasisRoleBypass  DecisionBasis = "role_bypass"
	BasisPlan        DecisionBasis = "plan"
	BasisDefaultPlan DecisionBasis = "default_plan"
)

type GateDecision struct {
	Allowed bool
	Basis   DecisionBasis
}

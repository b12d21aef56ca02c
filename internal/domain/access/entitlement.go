package access

import "entitlements-api/internal/domain/plans"

// Evaluator decides whether a subject may open a gated feature.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	bypass BypassPolicy
}

func NewEvaluator(bypass BypassPolicy) *Evaluator {
	return &Evaluator{bypass: bypass}
}

// Evaluate returns the gate decision for s requesting req.
//
// Order:
//  1. a bypassing role is allowed regardless of plan;
//  2. a missing plan tier is treated as plans.Lowest();
//  3. allowed when the effective tier ranks at or above req.RequiredTier.
//
// An unknown tier on either side is returned as a *plans.UnknownTierError.
// The required tier is checked before the bypass, so a misconfigured gate
// fails for every role.
func (e *Evaluator) Evaluate(s Subject, req GateRequest) (GateDecision, error) {
	if _, err := plans.Ordinal(req.RequiredTier); err != nil {
		return GateDecision{}, err
	}

	if e.bypass.Bypasses(s.Role) {
		return GateDecision{Allowed: true, Basis: BasisRoleBypass}, nil
	}

	effective := plans.Lowest()
	basis := BasisDefaultPlan
	if s.PlanTier != nil {
		effective = *s.PlanTier
		basis = BasisPlan
	}

	cmp, err := plans.Compare(effective, req.RequiredTier)
	if err != nil {
		return GateDecision{}, err
	}
	return GateDecision{Allowed: cmp >= 0, Basis: basis}, nil
}

// Policy returns the bypass policy the evaluator consults.
func (e *Evaluator) Policy() BypassPolicy {
	return e.bypass
}

// Package gate joins the stored user record with the entitlement evaluator,
// the feature catalog and the subscription classifier.
package gate

import (
	"errors"
	"fmt"
	"time"

	"entitlements-api/internal/domain/access"
	"entitlements-api/internal/domain/features"
	"entitlements-api/internal/domain/plans"
	"entitlements-api/internal/domain/subscription"
	"entitlements-api/internal/domain/users"
	"entitlements-api/internal/infra/metrics"

	"go.uber.org/zap"
)

var ErrUnknownFeature = errors.New("unknown feature")

type FeatureDecision struct {
	Feature      string
	RequiredTier plans.Tier
	Allowed      bool
	Basis        access.DecisionBasis
}

type Gate struct {
	evaluator *access.Evaluator
	catalog   features.Catalog
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

func New(evaluator *access.Evaluator, catalog features.Catalog, m *metrics.Metrics, log *zap.Logger) *Gate {
	return &Gate{
		evaluator: evaluator,
		catalog:   catalog,
		metrics:   m,
		log:       log.With(zap.String("component", "gate")),
		now:       time.Now,
	}
}

func (g *Gate) Catalog() features.Catalog {
	return g.catalog
}

// Check evaluates one named feature for u. Results are never cached: plan
// state may change between calls.
func (g *Gate) Check(u users.User, feature string) (FeatureDecision, error) {
	req, ok := g.catalog.Request(feature)
	if !ok {
		return FeatureDecision{}, fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	}

	out := FeatureDecision{Feature: feature, RequiredTier: req.RequiredTier}

	subject, err := u.Subject(g.now())
	if err == nil {
		var d access.GateDecision
		d, err = g.evaluator.Evaluate(subject, req)
		out.Allowed, out.Basis = d.Allowed, d.Basis
	}
	if err != nil {
		g.metrics.ObserveConfigError(feature)
		g.log.Error("gate evaluation failed",
			zap.String("feature", feature),
			zap.Uint("user_id", u.ID),
			zap.Error(err),
		)
		return FeatureDecision{}, err
	}

	g.metrics.ObserveDecision(feature, access.GateDecision{Allowed: out.Allowed, Basis: out.Basis})
	g.log.Debug("gate decision",
		zap.String("feature", feature),
		zap.Uint("user_id", u.ID),
		zap.Bool("allowed", out.Allowed),
		zap.String("basis", string(out.Basis)),
	)
	return out, nil
}

// CheckAll evaluates every catalog feature, sorted by name.
func (g *Gate) CheckAll(u users.User) ([]FeatureDecision, error) {
	names := g.catalog.Names()
	out := make([]FeatureDecision, 0, len(names))
	for _, name := range names {
		d, err := g.Check(u, name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Alert classifies the subscription health of u at now and counts the level
// as shown. Listings that only report the level should call Classify.
func (g *Gate) Alert(u users.User, now time.Time) (subscription.AlertInput, subscription.AlertLevel) {
	in := u.AlertInput(now)
	level := subscription.Classify(in)
	g.metrics.ObserveAlert(level)
	return in, level
}

// Classify is Alert without observing the level.
func (g *Gate) Classify(u users.User, now time.Time) (subscription.AlertInput, subscription.AlertLevel) {
	in := u.AlertInput(now)
	return in, subscription.Classify(in)
}

// BypassRoles lists the roles currently exempt from tier checks.
func (g *Gate) BypassRoles() []access.Role {
	return g.evaluator.Policy().Roles()
}

package gate

import (
	"testing"
	"time"

	"entitlements-api/internal/domain/access"
	"entitlements-api/internal/domain/features"
	"entitlements-api/internal/domain/plans"
	"entitlements-api/internal/domain/subscription"
	"entitlements-api/internal/domain/users"
	"entitlements-api/internal/infra/logger"
	"entitlements-api/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, catalog features.Catalog) *Gate {
	t.Helper()
	g, _ := newObservedGate(t, catalog)
	return g
}

func newObservedGate(t *testing.T, catalog features.Catalog) (*Gate, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(
		access.NewEvaluator(access.DefaultBypassPolicy()),
		catalog,
		metrics.New(reg),
		logger.NewTestLogger(t),
	), reg
}

// subscribed gives u a plan of tier backed by a subscription in status.
func subscribed(u users.User, tier, status string) users.User {
	sub := "sub_" + tier
	u.Plan = &plans.Plan{Tier: tier}
	u.SubscriptionId = &sub
	u.StripeSubscriptionStatus = &status
	return u
}

func TestGate_Check(t *testing.T) {
	g := newTestGate(t, features.DefaultCatalog())

	tests := []struct {
		name      string
		user      users.User
		feature   string
		wantAllow bool
		wantBasis access.DecisionBasis
	}{
		{
			name:      "member_basic_messages",
			user:      subscribed(users.User{ID: 1, Role: "member"}, "basic", "active"),
			feature:   features.Messages,
			wantAllow: false,
			wantBasis: access.BasisPlan,
		},
		{
			name:      "member_premium_messages",
			user:      subscribed(users.User{ID: 2, Role: "member"}, "premium", "active"),
			feature:   features.Messages,
			wantAllow: true,
			wantBasis: access.BasisPlan,
		},
		{
			name:      "member_no_plan_courses",
			user:      users.User{ID: 3, Role: "member"},
			feature:   features.Courses,
			wantAllow: true,
			wantBasis: access.BasisDefaultPlan,
		},
		{
			name:      "admin_no_plan_certificates",
			user:      users.User{ID: 4, Role: "admin"},
			feature:   features.Certificates,
			wantAllow: true,
			wantBasis: access.BasisRoleBypass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := g.Check(tt.user, tt.feature)
			require.NoError(t, err)
			assert.Equal(t, tt.feature, d.Feature)
			assert.Equal(t, tt.wantAllow, d.Allowed)
			assert.Equal(t, tt.wantBasis, d.Basis)
		})
	}
}

func TestGate_Check_UnknownFeature(t *testing.T) {
	g := newTestGate(t, features.DefaultCatalog())

	_, err := g.Check(users.User{Role: "admin"}, "teleport")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestGate_Check_MisconfiguredPlanRow(t *testing.T) {
	g := newTestGate(t, features.DefaultCatalog())

	_, err := g.Check(users.User{ID: 9, Role: "member", Plan: &plans.Plan{Tier: "gold"}}, features.Courses)
	assert.ErrorIs(t, err, plans.ErrUnknownTier)
}

func TestGate_Check_MisconfiguredCatalogFailsEvenForAdmin(t *testing.T) {
	g := newTestGate(t, features.NewCatalog(map[string]plans.Tier{"vip": "gold"}))

	_, err := g.Check(users.User{Role: "admin"}, "vip")
	assert.ErrorIs(t, err, plans.ErrUnknownTier)
}

func TestGate_CheckAll(t *testing.T) {
	g := newTestGate(t, features.DefaultCatalog())

	out, err := g.CheckAll(subscribed(users.User{Role: "member"}, "intermediate", "active"))
	require.NoError(t, err)

	got := map[string]bool{}
	names := make([]string, 0, len(out))
	for _, d := range out {
		got[d.Feature] = d.Allowed
		names = append(names, d.Feature)
	}
	assert.Equal(t, features.DefaultCatalog().Names(), names)
	assert.Equal(t, map[string]bool{
		features.Certificates: false,
		features.Courses:      true,
		features.LiveSessions: false,
		features.Messages:     true,
		features.Teachers:     true,
	}, got)
}

func TestGate_Alert(t *testing.T) {
	g := newTestGate(t, features.DefaultCatalog())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := now.Add(3 * 24 * time.Hour)
	sub, status := "sub_1", "active"

	in, level := g.Alert(users.User{SubscriptionId: &sub, StripeSubscriptionStatus: &status, CurrentPeriodEnd: &end}, now)
	assert.Equal(t, subscription.StatusActive, in.Status)
	assert.Equal(t, subscription.AlertWarning, level)
}

func TestGate_Check_LapsedSubscriptionLosesPlan(t *testing.T) {
	g := newTestGate(t, features.DefaultCatalog())
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	ended := now.Add(-90 * 24 * time.Hour)
	paidThrough := now.Add(5 * 24 * time.Hour)

	lapsed := subscribed(users.User{ID: 11, Role: "member"}, "premium", "canceled")
	lapsed.CurrentPeriodEnd = &ended

	d, err := g.Check(lapsed, features.Certificates)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, access.BasisDefaultPlan, d.Basis)

	_, level := g.Alert(lapsed, now)
	assert.Equal(t, subscription.AlertCritical, level)

	stillPaid := subscribed(users.User{ID: 12, Role: "member"}, "premium", "canceled")
	stillPaid.CurrentPeriodEnd = &paidThrough

	d, err = g.Check(stillPaid, features.Certificates)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, access.BasisPlan, d.Basis)

	pastDue := subscribed(users.User{ID: 13, Role: "member"}, "premium", "past_due")
	d, err = g.Check(pastDue, features.Messages)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestGate_ClassifyDoesNotObserve(t *testing.T) {
	g, reg := newObservedGate(t, features.DefaultCatalog())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, level := g.Classify(users.User{}, now)
	assert.Equal(t, subscription.AlertNone, level)
	n, err := testutil.GatherAndCount(reg, "entitlements_subscription_alerts_total")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	g.Alert(users.User{}, now)
	n, err = testutil.GatherAndCount(reg, "entitlements_subscription_alerts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGate_BypassRoles(t *testing.T) {
	g := newTestGate(t, features.DefaultCatalog())
	assert.Equal(t, []access.Role{access.RoleAdmin, access.RoleStudent}, g.BypassRoles())
}

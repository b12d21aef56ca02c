package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTier(t *testing.T) {
	t.Run("nil_plan_is_absent", func(t *testing.T) {
		tier, err := PlanTier(nil)
		require.NoError(t, err)
		assert.Nil(t, tier)
	})

	t.Run("stored_tier", func(t *testing.T) {
		tier, err := PlanTier(&Plan{Tier: " premium "})
		require.NoError(t, err)
		require.NotNil(t, tier)
		assert.Equal(t, TierPremium, *tier)
	})

	t.Run("blank_tier_on_existing_plan_is_error", func(t *testing.T) {
		_, err := PlanTier(&Plan{Tier: ""})
		assert.ErrorIs(t, err, ErrUnknownTier)
	})

	t.Run("typo_is_error", func(t *testing.T) {
		_, err := PlanTier(&Plan{Tier: "intermedate"})
		assert.ErrorIs(t, err, ErrUnknownTier)
	})
}

func TestTierFromMetadata(t *testing.T) {
	tests := []struct {
		name    string
		md      map[string]string
		want    Tier
		wantErr bool
	}{
		{name: "tier_key", md: map[string]string{"tier": "intermediate"}, want: TierIntermediate},
		{name: "legacy_plan_key", md: map[string]string{"plan": "basic"}, want: TierBasic},
		{name: "tier_wins", md: map[string]string{"tier": "premium", "plan": "basic"}, want: TierPremium},
		{name: "nil_metadata", md: nil, wantErr: true},
		{name: "unknown", md: map[string]string{"tier": "gold"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TierFromMetadata(tt.md)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

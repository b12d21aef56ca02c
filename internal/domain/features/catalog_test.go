package features

import (
	"testing"

	"entitlements-api/internal/domain/plans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, []string{Certificates, Courses, LiveSessions, Messages, Teachers}, c.Names())

	req, ok := c.Request(Messages)
	require.True(t, ok)
	assert.Equal(t, plans.TierIntermediate, req.RequiredTier)
	assert.Equal(t, Messages, req.FeatureName)

	_, ok = c.Request("nope")
	assert.False(t, ok)

	for _, name := range c.Names() {
		req, _ := c.Request(name)
		assert.True(t, req.RequiredTier.Valid(), name)
	}
}

func TestCatalog_WithOverridesCopies(t *testing.T) {
	base := DefaultCatalog()
	over := base.WithOverrides(map[string]plans.Tier{
		Courses:  plans.TierPremium,
		"replay": plans.TierIntermediate,
	})

	req, _ := over.Request(Courses)
	assert.Equal(t, plans.TierPremium, req.RequiredTier)
	_, ok := over.Request("replay")
	assert.True(t, ok)

	req, _ = base.Request(Courses)
	assert.Equal(t, plans.TierBasic, req.RequiredTier)
	_, ok = base.Request("replay")
	assert.False(t, ok)
}

func TestNewCatalog_IsolatedFromInput(t *testing.T) {
	in := map[string]plans.Tier{"x": plans.TierBasic}
	c := NewCatalog(in)
	in["x"] = plans.TierPremium

	req, _ := c.Request("x")
	assert.Equal(t, plans.TierBasic, req.RequiredTier)
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string]plans.Tier
		wantErr bool
	}{
		{name: "empty", in: "", want: map[string]plans.Tier{}},
		{name: "single", in: "courses=premium", want: map[string]plans.Tier{"courses": plans.TierPremium}},
		{
			name: "spaces_and_trailing_comma",
			in:   " messages = basic , teachers=PREMIUM,",
			want: map[string]plans.Tier{"messages": plans.TierBasic, "teachers": plans.TierPremium},
		},
		{name: "missing_equals", in: "courses", wantErr: true},
		{name: "missing_name", in: "=basic", wantErr: true},
		{name: "unknown_tier", in: "courses=gold", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverrides(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOverrides_UnknownTierWrapsSentinel(t *testing.T) {
	_, err := ParseOverrides("courses=gold")
	assert.ErrorIs(t, err, plans.ErrUnknownTier)
}

// Package features lists the gated features and the plan tier each one requires.
package features

import (
	"fmt"
	"sort"
	"strings"

	"entitlements-api/internal/domain/access"
	"entitlements-api/internal/domain/plans"
)

const (
	Courses      = "courses"
	Messages     = "messages"
	Teachers     = "teachers"
	LiveSessions = "live_sessions"
	Certificates = "certificates"
)

var defaultTiers = map[string]plans.Tier{
	Courses:      plans.TierBasic,
	Messages:     plans.TierIntermediate,
	Teachers:     plans.TierIntermediate,
	LiveSessions: plans.TierPremium,
	Certificates: plans.TierPremium,
}

// Catalog is an immutable feature -> required tier table.
type Catalog struct {
	tiers map[string]plans.Tier
}

func DefaultCatalog() Catalog {
	return NewCatalog(defaultTiers)
}

func NewCatalog(tiers map[string]plans.Tier) Catalog {
	m := make(map[string]plans.Tier, len(tiers))
	for k, v := range tiers {
		m[k] = v
	}
	return Catalog{tiers: m}
}

// WithOverrides returns a copy of c where the given features require new tiers.
// Overrides may also introduce features absent from c.
func (c Catalog) WithOverrides(overrides map[string]plans.Tier) Catalog {
	m := make(map[string]plans.Tier, len(c.tiers)+len(overrides))
	for k, v := range c.tiers {
		m[k] = v
	}
	for k, v := range overrides {
		m[k] = v
	}
	return Catalog{tiers: m}
}

// Request builds the gate request for a named feature.
func (c Catalog) Request(name string) (access.GateRequest, bool) {
	t, ok := c.tiers[name]
	if !ok {
		return access.GateRequest{}, false
	}
	return access.GateRequest{RequiredTier: t, FeatureName: name}, true
}

func (c Catalog) Names() []string {
	out := make([]string, 0, len(c.tiers))
	for k := range c.tiers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ParseOverrides reads "feature=tier,feature=tier". Unknown tiers are an error.
func ParseOverrides(s string) (map[string]plans.Tier, error) {
	out := map[string]plans.Tier{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("feature override %q: expected name=tier", pair)
		}
		t, err := plans.ParseTier(raw)
		if err != nil {
			return nil, fmt.Errorf("feature override %q: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

package plans

import (
	"errors"
	"fmt"
	"strings"
)

// Tier identifies a purchasable plan level.
type Tier string

// Tier constants (single source of truth)
const (
	TierBasic        Tier = "basic"
	TierIntermediate Tier = "intermediate"
	TierPremium      Tier = "premium"
)

// tierOrdinals ranks tiers by subscription value. Lowest paid tier = 1.
var tierOrdinals = map[Tier]int{
	TierBasic:        1,
	TierIntermediate: 2,
	TierPremium:      3,
}

// orderedTiers lists known tiers from lowest to highest.
var orderedTiers = []Tier{TierBasic, TierIntermediate, TierPremium}

// ErrUnknownTier is matched by every *UnknownTierError.
var ErrUnknownTier = errors.New("unknown plan tier")

// UnknownTierError reports a tier identifier that is not part of the hierarchy.
// It is a configuration error: callers must surface it, never map it to allow/deny.
type UnknownTierError struct {
	Tier Tier
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("unknown plan tier %q", string(e.Tier))
}

func (e *UnknownTierError) Is(target error) bool {
	return target == ErrUnknownTier
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := tierOrdinals[t]
	return ok
}

func (t Tier) String() string {
	return string(t)
}

// Ordinal returns the rank of t in the hierarchy.
func Ordinal(t Tier) (int, error) {
	n, ok := tierOrdinals[t]
	if !ok {
		return 0, &UnknownTierError{Tier: t}
	}
	return n, nil
}

// Compare returns -1, 0 or +1 when a is below, equal to or above b.
func Compare(a, b Tier) (int, error) {
	oa, err := Ordinal(a)
	if err != nil {
		return 0, err
	}
	ob, err := Ordinal(b)
	if err != nil {
		return 0, err
	}

	switch d := oa - ob; {
	case d < 0:
		return -1, nil
	case d > 0:
		return 1, nil
	default:
		return 0, nil
	}
}

// Lowest returns the most restrictive tier.
func Lowest() Tier {
	return orderedTiers[0]
}

// Tiers returns every known tier, lowest first.
func Tiers() []Tier {
	out := make([]Tier, len(orderedTiers))
	copy(out, orderedTiers)
	return out
}

// ParseTier normalizes s and resolves it to a known tier.
// Blank input is rejected too: absence is modelled with a nil *Tier, not "".
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &UnknownTierError{Tier: Tier(s)}
	}
	return t, nil
}

package valueobject

import "fmt"

// RiskTier is an immutable value object classifying attrition risk.
type RiskTier struct {
	value string
}

var (
	RiskTierLow    = RiskTier{value: "low"}
	RiskTierMedium = RiskTier{value: "medium"}
	RiskTierHigh   = RiskTier{value: "high"}
)

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "low":
		return RiskTierLow, nil
	case "medium":
		return RiskTierMedium, nil
	case "high":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %s", s)
	}
}

// RiskTierFromProbability derives the tier from an overall probability.
// Boundaries are inclusive on the lower bound of each tier: p >= 0.70 is
// high, p >= 0.40 is medium, anything below is low.
func RiskTierFromProbability(p float64) RiskTier {
	switch {
	case p >= 0.70:
		return RiskTierHigh
	case p >= 0.40:
		return RiskTierMedium
	default:
		return RiskTierLow
	}
}

// String returns the string representation.
func (r RiskTier) String() string {
	return r.value
}

// IsZero returns true if the RiskTier has not been set.
func (r RiskTier) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskTier.
func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}

// IsHigh returns true if the tier is high.
func (r RiskTier) IsHigh() bool {
	return r.value == "high"
}

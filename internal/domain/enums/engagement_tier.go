package enums

type EngagementTier string

const (
	EngagementTierStandard  EngagementTier = "standard"
	EngagementTierPremium   EngagementTier = "premium"
	EngagementTierExclusive EngagementTier = "exclusive"
)

func (t EngagementTier) IsValid() bool {
	switch t {
	case EngagementTierStandard, EngagementTierPremium, EngagementTierExclusive:
		return true
	}
	return false
}

// HasExclusiveAccess reports whether the tier unlocks premium-only surfaces.
func (t EngagementTier) HasExclusiveAccess() bool {
	return t == EngagementTierPremium || t == EngagementTierExclusive
}

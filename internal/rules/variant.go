// Package rules implements the per-variant campaign rule model and the
// validation engine built on it. Everything in this package is pure data and
// pure functions: no I/O, no logging, no state shared across calls.
package rules

import "fmt"

// CampaignVariant identifies one of the supported campaign types. The set is
// closed; RulesFor is defined for every value below and for nothing else.
type CampaignVariant string

const (
	VariantDemandGen      CampaignVariant = "DEMAND_GEN"
	VariantSearch         CampaignVariant = "SEARCH"
	VariantDisplay        CampaignVariant = "DISPLAY"
	VariantVideo          CampaignVariant = "VIDEO"
	VariantShopping       CampaignVariant = "SHOPPING"
	VariantPerformanceMax CampaignVariant = "PERFORMANCE_MAX"
)

// AllVariants lists every declared variant in a stable order.
var AllVariants = []CampaignVariant{
	VariantDemandGen,
	VariantSearch,
	VariantDisplay,
	VariantVideo,
	VariantShopping,
	VariantPerformanceMax,
}

// ParseVariant converts an untrusted string into a CampaignVariant. Callers at
// the HTTP boundary must go through this so that the engine only ever sees
// declared tags.
func ParseVariant(s string) (CampaignVariant, error) {
	v := CampaignVariant(s)
	for _, known := range AllVariants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown campaign type: %q", s)
}

func (v CampaignVariant) String() string { return string(v) }

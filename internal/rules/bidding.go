package rules

import "fmt"

// BiddingStrategy identifies an optimization objective understood by the ad
// platform. Some strategies need a numeric target (CPA or ROAS) before they
// can be used; see TargetKind.
type BiddingStrategy string

const (
	MaximizeConversions     BiddingStrategy = "maximize_conversions"
	MaximizeConversionValue BiddingStrategy = "maximize_conversion_value"
	MaximizeClicks          BiddingStrategy = "maximize_clicks"
	TargetCPA               BiddingStrategy = "target_cpa"
	TargetROAS              BiddingStrategy = "target_roas"
	TargetCPC               BiddingStrategy = "target_cpc"
	ManualCPC               BiddingStrategy = "manual_cpc"
	ManualCPM               BiddingStrategy = "manual_cpm"
	TargetCPM               BiddingStrategy = "target_cpm"
)

// TargetKind says which numeric target, if any, a strategy depends on.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetKindCPA
	TargetKindROAS
)

// strategyInfo is the catalog entry for one bidding strategy.
type strategyInfo struct {
	Label  string
	Target TargetKind
}

// biddingCatalog is built once and never mutated.
var biddingCatalog = map[BiddingStrategy]strategyInfo{
	MaximizeConversions:     {Label: "Maximize Conversions", Target: TargetNone},
	MaximizeConversionValue: {Label: "Maximize Conversion Value", Target: TargetNone},
	MaximizeClicks:          {Label: "Maximize Clicks", Target: TargetNone},
	TargetCPA:               {Label: "Target CPA", Target: TargetKindCPA},
	TargetROAS:              {Label: "Target ROAS", Target: TargetKindROAS},
	TargetCPC:               {Label: "Target CPC", Target: TargetNone},
	ManualCPC:               {Label: "Manual CPC", Target: TargetNone},
	ManualCPM:               {Label: "Manual CPM", Target: TargetNone},
	TargetCPM:               {Label: "Target CPM", Target: TargetNone},
}

// AllStrategies lists every declared strategy in a stable order.
var AllStrategies = []BiddingStrategy{
	MaximizeConversions,
	MaximizeConversionValue,
	MaximizeClicks,
	TargetCPA,
	TargetROAS,
	TargetCPC,
	ManualCPC,
	ManualCPM,
	TargetCPM,
}

// ParseStrategy converts an untrusted string into a BiddingStrategy.
func ParseStrategy(s string) (BiddingStrategy, error) {
	b := BiddingStrategy(s)
	if _, ok := biddingCatalog[b]; !ok {
		return "", fmt.Errorf("unknown bidding strategy: %q", s)
	}
	return b, nil
}

// Label returns the display name for a strategy.
func (b BiddingStrategy) Label() string { return biddingCatalog[b].Label }

// RequiredTarget reports which numeric target the strategy needs, if any.
func (b BiddingStrategy) RequiredTarget() TargetKind { return biddingCatalog[b].Target }

func (b BiddingStrategy) String() string { return string(b) }

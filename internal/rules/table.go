package rules

import "fmt"

// Image slot policies shared by the variants that take images. Values follow
// Google Ads asset requirements: landscape 1.91:1 min 600x314, square 1:1 min
// 300x300, logo 1:1 min 128x128, each with 2% ratio tolerance.
var marketingImageSlots = []ImageSlotSpec{
	{
		Slot:           SlotLandscape,
		Ratio:          1.91,
		RatioTolerance: 0.02,
		MinWidth:       600,
		MinHeight:      314,
		Description:    "Landscape (1.91:1) - minimum 600x314 pixels",
	},
	{
		Slot:           SlotSquare,
		Ratio:          1.0,
		RatioTolerance: 0.02,
		MinWidth:       300,
		MinHeight:      300,
		Description:    "Square (1:1) - minimum 300x300 pixels",
	},
	{
		Slot:           SlotLogo,
		Ratio:          1.0,
		RatioTolerance: 0.02,
		MinWidth:       128,
		MinHeight:      128,
		Description:    "Logo (1:1) - minimum 128x128 pixels",
	},
}

// SlotPolicy returns the dimension policy for an image slot. Every
// image-bearing variant declares the same three slots, so the policy is a
// property of the slot, not the variant.
func SlotPolicy(slot ImageSlot) (ImageSlotSpec, bool) {
	for _, s := range marketingImageSlots {
		if s.Slot == slot {
			return s, true
		}
	}
	return ImageSlotSpec{}, false
}

const videoCaveat = "VIDEO campaigns cannot be created via the Google Ads API. " +
	"Please use Google Ads UI or Google Ads Scripts to create VIDEO campaigns."

// RulesFor resolves the rule record for a variant. It is total over the
// declared CampaignVariant values; an undeclared tag is a caller contract
// violation (parse input with ParseVariant first) and panics.
func RulesFor(v CampaignVariant) VariantRules {
	switch v {
	case VariantDemandGen:
		return VariantRules{
			Variant:      v,
			Headlines:    TextListSpec{MinCount: 1, MaxCount: 5, MaxLength: 40, Required: true},
			Descriptions: TextListSpec{MinCount: 1, MaxCount: 5, MaxLength: 90, Required: true},
			BusinessName: SingleTextSpec{Required: true, MaxLength: 25, Exists: true},
			ImageSlots:   marketingImageSlots,

			FinalURLRequired: true,
			Strategies: []BiddingStrategy{
				MaximizeConversions, TargetCPA, MaximizeClicks, TargetCPC,
			},
			AutomatedPublishSupported: true,
		}

	case VariantPerformanceMax:
		return VariantRules{
			Variant:      v,
			Headlines:    TextListSpec{MinCount: 3, MaxCount: 15, MaxLength: 30, Required: true},
			LongHeadline: SingleTextSpec{Required: true, MaxLength: 90, Exists: true},
			Descriptions: TextListSpec{
				MinCount: 2, MaxCount: 5, MaxLength: 90, Required: true,
				ShortRequired: true, ShortMaxLength: 60,
			},
			BusinessName: SingleTextSpec{Required: true, MaxLength: 25, Exists: true},
			ImageSlots:   marketingImageSlots,

			FinalURLRequired: true,
			Strategies: []BiddingStrategy{
				MaximizeConversions, MaximizeConversionValue,
			},
			AutomatedPublishSupported: true,
		}

	case VariantSearch:
		// Responsive Search Ads: minimum 3 headlines and 2 descriptions.
		return VariantRules{
			Variant:      v,
			Headlines:    TextListSpec{MinCount: 3, MaxCount: 15, MaxLength: 30, Required: true},
			Descriptions: TextListSpec{MinCount: 2, MaxCount: 4, MaxLength: 90, Required: true},
			Keywords: TextListSpec{
				MinCount: 1, MaxCount: 1000, MaxLength: 80, Required: true, Unique: true,
			},

			FinalURLRequired: true,
			Strategies: []BiddingStrategy{
				ManualCPC, MaximizeClicks, TargetCPA, MaximizeConversions,
			},
			AutomatedPublishSupported: true,
		}

	case VariantDisplay:
		return VariantRules{
			Variant:      v,
			Headlines:    TextListSpec{MinCount: 1, MaxCount: 5, MaxLength: 30, Required: true},
			LongHeadline: SingleTextSpec{Required: true, MaxLength: 90, Exists: true},
			Descriptions: TextListSpec{MinCount: 1, MaxCount: 5, MaxLength: 90, Required: true},
			BusinessName: SingleTextSpec{Required: true, MaxLength: 25, Exists: true},
			ImageSlots:   marketingImageSlots,

			FinalURLRequired: true,
			Strategies: []BiddingStrategy{
				ManualCPC, ManualCPM, MaximizeConversions, TargetCPA,
			},
			AutomatedPublishSupported: true,
		}

	case VariantVideo:
		return VariantRules{
			Variant:      v,
			Headlines:    TextListSpec{MinCount: 0, MaxCount: 5, MaxLength: 30},
			Descriptions: TextListSpec{MinCount: 0, MaxCount: 5, MaxLength: 90},

			VideoURLRequired: true,
			Strategies: []BiddingStrategy{
				MaximizeConversions, TargetCPA, TargetCPM,
			},
			AutomatedPublishSupported: false,
			Caveat:                    videoCaveat,
		}

	case VariantShopping:
		return VariantRules{
			Variant: v,

			MerchantCenterIDRequired: true,
			Strategies: []BiddingStrategy{
				MaximizeClicks, TargetROAS, ManualCPC,
			},
			AutomatedPublishSupported: true,
		}
	}
	panic(fmt.Sprintf("rules: undeclared campaign variant %q", v))
}

// StrategiesFor is a derived view of the permitted bidding strategies.
func StrategiesFor(v CampaignVariant) []BiddingStrategy {
	return RulesFor(v).Strategies
}

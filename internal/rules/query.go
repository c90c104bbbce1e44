package rules

// Read-only convenience queries over the variant rule table, used by form
// rendering and pre-publish checks. Pure projections, no new logic.

// FieldShown reports whether a field is part of the given variant at all.
func FieldShown(v CampaignVariant, f Field) bool {
	r := RulesFor(v)
	switch f {
	case FieldHeadlines:
		return r.Headlines.Exists()
	case FieldLongHeadline:
		return r.LongHeadline.Exists
	case FieldDescriptions:
		return r.Descriptions.Exists()
	case FieldKeywords:
		return r.Keywords.Exists()
	case FieldBusinessName:
		return r.BusinessName.Exists
	case FieldImages:
		return len(r.ImageSlots) > 0
	case FieldFinalURL:
		return r.FinalURLRequired
	case FieldVideoURL:
		return r.VideoURLRequired
	case FieldMerchantCenterID:
		return r.MerchantCenterIDRequired
	case FieldBiddingStrategy:
		return true
	case FieldTargetCPA, FieldTargetROAS:
		// Shown whenever the variant permits a strategy needing that target.
		kind := TargetKindCPA
		if f == FieldTargetROAS {
			kind = TargetKindROAS
		}
		for _, s := range r.Strategies {
			if s.RequiredTarget() == kind {
				return true
			}
		}
		return false
	}
	return false
}

// DefaultStrategy returns the first permitted strategy for a variant. The
// table guarantees every variant permits at least one.
func DefaultStrategy(v CampaignVariant) BiddingStrategy {
	return RulesFor(v).Strategies[0]
}

// AutomatedPublish reports whether the variant can be created through the
// automated path, and the caveat to show when it cannot.
func AutomatedPublish(v CampaignVariant) (bool, string) {
	r := RulesFor(v)
	return r.AutomatedPublishSupported, r.Caveat
}

// SlotsFor returns the image slots declared by a variant (nil when it takes
// no images).
func SlotsFor(v CampaignVariant) []ImageSlotSpec {
	return RulesFor(v).ImageSlots
}

package rules

// Field identifies a campaign field in validation errors and visibility
// queries. These match the JSON field names of the campaign model so that a
// form can map errors back to inputs directly.
type Field string

const (
	FieldHeadlines        Field = "headlines"
	FieldLongHeadline     Field = "long_headline"
	FieldDescriptions     Field = "descriptions"
	FieldKeywords         Field = "keywords"
	FieldBusinessName     Field = "business_name"
	FieldImages           Field = "images"
	FieldFinalURL         Field = "final_url"
	FieldVideoURL         Field = "video_url"
	FieldMerchantCenterID Field = "merchant_center_id"
	FieldBiddingStrategy  Field = "bidding_strategy"
	FieldTargetCPA        Field = "target_cpa"
	FieldTargetROAS       Field = "target_roas"
)

// TextListSpec bounds a list-like text field (headlines, descriptions,
// keywords). MaxCount == 0 means the field does not exist for the variant and
// nothing about it is ever checked.
type TextListSpec struct {
	MinCount  int
	MaxCount  int
	MaxLength int // Unicode code points, not bytes
	Required  bool

	// ShortRequired demands at least one non-empty entry of length
	// <= ShortMaxLength. Only descriptions use this (Performance Max).
	ShortRequired  bool
	ShortMaxLength int

	// Unique demands case- and whitespace-insensitive uniqueness across
	// entries. Only keywords use this (Search).
	Unique bool
}

// Exists reports whether the field is part of the variant at all.
func (s TextListSpec) Exists() bool { return s.MaxCount > 0 }

// SingleTextSpec bounds a scalar text field (long headline, business name).
type SingleTextSpec struct {
	Required  bool
	MaxLength int
	Exists    bool
}

// ImageSlot names one of the image slots a variant may declare.
type ImageSlot string

const (
	SlotLandscape ImageSlot = "landscape"
	SlotSquare    ImageSlot = "square"
	SlotLogo      ImageSlot = "logo"
)

// ImageSlotSpec declares one slot and its dimension policy. The policy is
// advisory to this package: pixel measurement happens in a collaborating
// layer that has fetched the image bytes.
type ImageSlotSpec struct {
	Slot           ImageSlot
	Ratio          float64 // width / height
	RatioTolerance float64 // fraction, e.g. 0.02 for 2%
	MinWidth       int
	MinHeight      int
	Description    string
}

// VariantRules is the full rule record for one campaign variant.
type VariantRules struct {
	Variant CampaignVariant

	Headlines    TextListSpec
	LongHeadline SingleTextSpec
	Descriptions TextListSpec
	Keywords     TextListSpec
	BusinessName SingleTextSpec

	// ImageSlots is empty for variants that take no images. When non-empty,
	// at least one marketing slot (landscape or square) or the logo slot
	// must be filled before publishing.
	ImageSlots []ImageSlotSpec

	FinalURLRequired         bool
	VideoURLRequired         bool
	MerchantCenterIDRequired bool

	// Strategies is the ordered permitted list; the first entry is the
	// default offered to the user.
	Strategies []BiddingStrategy

	// AutomatedPublishSupported is false for variants the platform refuses
	// to create through its API; Caveat then explains the manual path.
	AutomatedPublishSupported bool
	Caveat                    string
}

// ImageAssets carries the per-slot URLs of a candidate campaign.
type ImageAssets struct {
	LandscapeURL string `json:"landscape_url,omitempty"`
	SquareURL    string `json:"square_url,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// URLFor returns the URL filled into the given slot, if any.
func (a ImageAssets) URLFor(slot ImageSlot) string {
	switch slot {
	case SlotLandscape:
		return a.LandscapeURL
	case SlotSquare:
		return a.SquareURL
	case SlotLogo:
		return a.LogoURL
	}
	return ""
}

// Candidate is the value under validation: a campaign-shaped plain data
// object. Callers construct it from already-parsed input; this package never
// parses strings into numbers or dates.
type Candidate struct {
	Variant CampaignVariant

	Headlines    []string
	LongHeadline string
	Descriptions []string
	Keywords     []string
	BusinessName string
	Images       ImageAssets
	FinalURL     string
	VideoURL     string

	MerchantCenterID string

	// Strategy is optional; the zero value means the caller has not picked
	// one, in which case the variant default is implied but not enforced.
	Strategy   BiddingStrategy
	TargetCPA  int64   // micros, 0 = unset
	TargetROAS float64 // multiplier, 0 = unset
}

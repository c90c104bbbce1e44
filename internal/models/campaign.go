package models

import (
	"time"

	"adcampaign/internal/rules"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "DRAFT"
	CampaignStatusPublished CampaignStatus = "PUBLISHED"
	CampaignStatusPaused    CampaignStatus = "PAUSED"
	CampaignStatusError     CampaignStatus = "ERROR"
)

type CampaignObjective string

const (
	ObjectiveSales          CampaignObjective = "SALES"
	ObjectiveLeads          CampaignObjective = "LEADS"
	ObjectiveWebsiteTraffic CampaignObjective = "WEBSITE_TRAFFIC"
)

// Campaign is the stored campaign record. Variant-specific shape rules live
// in the rules package; this model only carries the data.
type Campaign struct {
	ID           string            `json:"id"`
	OwnerID      string            `json:"owner_id,omitempty"`
	Name         string            `json:"name" validate:"required,min=1,max=255"`
	Objective    CampaignObjective `json:"objective" validate:"required,oneof=SALES LEADS WEBSITE_TRAFFIC"`
	CampaignType string            `json:"campaign_type"`
	Status       CampaignStatus    `json:"status"`

	DailyBudget int64      `json:"daily_budget" validate:"required,gt=0"` // micros
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`

	BiddingStrategy string  `json:"bidding_strategy,omitempty"`
	TargetCPA       int64   `json:"target_cpa,omitempty"`  // micros
	TargetROAS      float64 `json:"target_roas,omitempty"` // multiplier

	// Platform mapping, filled in after a successful publish.
	GoogleCampaignID string `json:"google_campaign_id,omitempty"`
	GoogleAdGroupID  string `json:"google_ad_group_id,omitempty"`
	GoogleAdID       string `json:"google_ad_id,omitempty"`

	// Variant-specific creative fields.
	Headlines        []string          `json:"headlines,omitempty"`
	LongHeadline     string            `json:"long_headline,omitempty"`
	Descriptions     []string          `json:"descriptions,omitempty"`
	BusinessName     string            `json:"business_name,omitempty"`
	Images           rules.ImageAssets `json:"images"`
	Keywords         []string          `json:"keywords,omitempty"`
	FinalURL         string            `json:"final_url,omitempty"`
	VideoURL         string            `json:"video_url,omitempty"`
	MerchantCenterID string            `json:"merchant_center_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RuleCandidate projects the campaign onto the shape the rules engine
// validates. CampaignType and BiddingStrategy are assumed parsed at the
// boundary (ParseVariant / ParseStrategy).
func (c *Campaign) RuleCandidate() rules.Candidate {
	return rules.Candidate{
		Variant:          rules.CampaignVariant(c.CampaignType),
		Headlines:        c.Headlines,
		LongHeadline:     c.LongHeadline,
		Descriptions:     c.Descriptions,
		Keywords:         c.Keywords,
		BusinessName:     c.BusinessName,
		Images:           c.Images,
		FinalURL:         c.FinalURL,
		VideoURL:         c.VideoURL,
		MerchantCenterID: c.MerchantCenterID,
		Strategy:         rules.BiddingStrategy(c.BiddingStrategy),
		TargetCPA:        c.TargetCPA,
		TargetROAS:       c.TargetROAS,
	}
}

type CreateCampaignRequest struct {
	Name         string            `json:"name" validate:"required,min=1,max=255"`
	Objective    CampaignObjective `json:"objective" validate:"required,oneof=SALES LEADS WEBSITE_TRAFFIC"`
	CampaignType string            `json:"campaign_type,omitempty"`
	DailyBudget  int64             `json:"daily_budget" validate:"required,gt=0"`
	StartDate    time.Time         `json:"start_date" validate:"required"`
	EndDate      *time.Time        `json:"end_date,omitempty"`

	BiddingStrategy string  `json:"bidding_strategy,omitempty"`
	TargetCPA       int64   `json:"target_cpa,omitempty" validate:"omitempty,gt=0"`
	TargetROAS      float64 `json:"target_roas,omitempty" validate:"omitempty,gt=0"`

	Headlines        []string          `json:"headlines,omitempty"`
	LongHeadline     string            `json:"long_headline,omitempty"`
	Descriptions     []string          `json:"descriptions,omitempty"`
	BusinessName     string            `json:"business_name,omitempty"`
	Images           rules.ImageAssets `json:"images"`
	Keywords         []string          `json:"keywords,omitempty"`
	FinalURL         string            `json:"final_url,omitempty"`
	VideoURL         string            `json:"video_url,omitempty"`
	MerchantCenterID string            `json:"merchant_center_id,omitempty"`
}

type UpdateCampaignRequest struct {
	Name         *string            `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Objective    *CampaignObjective `json:"objective,omitempty" validate:"omitempty,oneof=SALES LEADS WEBSITE_TRAFFIC"`
	CampaignType *string            `json:"campaign_type,omitempty"`
	DailyBudget  *int64             `json:"daily_budget,omitempty" validate:"omitempty,gt=0"`
	StartDate    *time.Time         `json:"start_date,omitempty"`
	EndDate      *time.Time         `json:"end_date,omitempty"`

	BiddingStrategy *string  `json:"bidding_strategy,omitempty"`
	TargetCPA       *int64   `json:"target_cpa,omitempty" validate:"omitempty,gt=0"`
	TargetROAS      *float64 `json:"target_roas,omitempty" validate:"omitempty,gt=0"`

	Headlines        *[]string          `json:"headlines,omitempty"`
	LongHeadline     *string            `json:"long_headline,omitempty"`
	Descriptions     *[]string          `json:"descriptions,omitempty"`
	BusinessName     *string            `json:"business_name,omitempty"`
	Images           *rules.ImageAssets `json:"images,omitempty"`
	Keywords         *[]string          `json:"keywords,omitempty"`
	FinalURL         *string            `json:"final_url,omitempty"`
	VideoURL         *string            `json:"video_url,omitempty"`
	MerchantCenterID *string            `json:"merchant_center_id,omitempty"`
}

// ValidationResponse is the /validate endpoint payload: the rules outcome
// plus per-variant requirement context the form layer renders from.
type ValidationResponse struct {
	rules.Outcome
	CampaignType string              `json:"campaign_type"`
	Requirements VariantRequirements `json:"requirements"`
	ImageReports []ImageReport       `json:"image_reports,omitempty"`
}

// ImageReport describes one inspected image slot: the measured dimensions and
// any policy problems found.
type ImageReport struct {
	Slot     string   `json:"slot"`
	URL      string   `json:"url"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	OK       bool     `json:"ok"`
	Problems []string `json:"problems,omitempty"`
}

// VariantRequirements is the serializable projection of a variant's rules
// used by the variant metadata endpoint and the /validate response.
type VariantRequirements struct {
	Headlines        *ListRequirement `json:"headlines,omitempty"`
	LongHeadline     *TextRequirement `json:"long_headline,omitempty"`
	Descriptions     *ListRequirement `json:"descriptions,omitempty"`
	Keywords         *ListRequirement `json:"keywords,omitempty"`
	BusinessName     *TextRequirement `json:"business_name,omitempty"`
	ImageSlots       []ImageSlotInfo  `json:"image_slots,omitempty"`
	FinalURL         bool             `json:"final_url_required"`
	VideoURL         bool             `json:"video_url_required"`
	MerchantCenter   bool             `json:"merchant_center_id_required"`
	Strategies       []string         `json:"bidding_strategies"`
	DefaultStrategy  string           `json:"default_bidding_strategy"`
	AutomatedPublish bool             `json:"automated_publish_supported"`
	Caveat           string           `json:"caveat,omitempty"`
}

type ListRequirement struct {
	MinCount       int  `json:"min_count"`
	MaxCount       int  `json:"max_count"`
	MaxLength      int  `json:"max_length"`
	Required       bool `json:"required"`
	ShortRequired  bool `json:"short_required,omitempty"`
	ShortMaxLength int  `json:"short_max_length,omitempty"`
	Unique         bool `json:"unique,omitempty"`
}

type TextRequirement struct {
	Required  bool `json:"required"`
	MaxLength int  `json:"max_length"`
}

type ImageSlotInfo struct {
	Slot           string  `json:"slot"`
	Ratio          float64 `json:"ratio"`
	RatioTolerance float64 `json:"ratio_tolerance"`
	MinWidth       int     `json:"min_width"`
	MinHeight      int     `json:"min_height"`
	Description    string  `json:"description"`
}

// RequirementsFor builds the serializable requirement view for a variant.
func RequirementsFor(v rules.CampaignVariant) VariantRequirements {
	r := rules.RulesFor(v)
	out := VariantRequirements{
		FinalURL:         r.FinalURLRequired,
		VideoURL:         r.VideoURLRequired,
		MerchantCenter:   r.MerchantCenterIDRequired,
		DefaultStrategy:  string(rules.DefaultStrategy(v)),
		AutomatedPublish: r.AutomatedPublishSupported,
		Caveat:           r.Caveat,
	}
	for _, s := range r.Strategies {
		out.Strategies = append(out.Strategies, string(s))
	}
	if r.Headlines.Exists() {
		out.Headlines = listRequirement(r.Headlines)
	}
	if r.Descriptions.Exists() {
		out.Descriptions = listRequirement(r.Descriptions)
	}
	if r.Keywords.Exists() {
		out.Keywords = listRequirement(r.Keywords)
	}
	if r.LongHeadline.Exists {
		out.LongHeadline = &TextRequirement{Required: r.LongHeadline.Required, MaxLength: r.LongHeadline.MaxLength}
	}
	if r.BusinessName.Exists {
		out.BusinessName = &TextRequirement{Required: r.BusinessName.Required, MaxLength: r.BusinessName.MaxLength}
	}
	for _, s := range r.ImageSlots {
		out.ImageSlots = append(out.ImageSlots, ImageSlotInfo{
			Slot:           string(s.Slot),
			Ratio:          s.Ratio,
			RatioTolerance: s.RatioTolerance,
			MinWidth:       s.MinWidth,
			MinHeight:      s.MinHeight,
			Description:    s.Description,
		})
	}
	return out
}

func listRequirement(s rules.TextListSpec) *ListRequirement {
	return &ListRequirement{
		MinCount:       s.MinCount,
		MaxCount:       s.MaxCount,
		MaxLength:      s.MaxLength,
		Required:       s.Required,
		ShortRequired:  s.ShortRequired,
		ShortMaxLength: s.ShortMaxLength,
		Unique:         s.Unique,
	}
}

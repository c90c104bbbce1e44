package interfaces

import (
	"context"

	"adcampaign/internal/models"
)

// CampaignFilter defines the filter criteria for listing campaigns
type CampaignFilter struct {
	OwnerID      string
	Status       string
	CampaignType string
	Limit        int
	Offset       int
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]*models.Campaign, error)
	Count(ctx context.Context, filter CampaignFilter) (int, error)
	Update(ctx context.Context, id string, campaign *models.Campaign) error
	UpdateStatus(ctx context.Context, id string, status models.CampaignStatus, platformIDs *PlatformIDs) error
	Delete(ctx context.Context, id string) error
}

// PlatformIDs carries the identifiers returned by the ad platform after a
// successful publish.
type PlatformIDs struct {
	CampaignID string
	AdGroupID  string
	AdID       string
}

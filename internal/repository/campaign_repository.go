package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"adcampaign/internal/interfaces"
	"adcampaign/internal/models"
	"adcampaign/internal/rules"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) interfaces.CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `
	id, owner_id, name, objective, campaign_type, status,
	daily_budget, start_date, end_date,
	bidding_strategy, target_cpa, target_roas,
	google_campaign_id, google_ad_group_id, google_ad_id,
	headlines, long_headline, descriptions, business_name,
	images, keywords, final_url, video_url, merchant_center_id,
	created_at, updated_at
`

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	images, err := json.Marshal(campaign.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		INSERT INTO campaigns (
			id, owner_id, name, objective, campaign_type, status,
			daily_budget, start_date, end_date,
			bidding_strategy, target_cpa, target_roas,
			headlines, long_headline, descriptions, business_name,
			images, keywords, final_url, video_url, merchant_center_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21
		)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowContext(
		ctx,
		query,
		campaign.ID,
		nullString(campaign.OwnerID),
		campaign.Name,
		string(campaign.Objective),
		campaign.CampaignType,
		string(campaign.Status),
		campaign.DailyBudget,
		campaign.StartDate,
		campaign.EndDate,
		nullString(campaign.BiddingStrategy),
		nullInt64(campaign.TargetCPA),
		nullFloat64(campaign.TargetROAS),
		pq.Array(orEmpty(campaign.Headlines)),
		nullString(campaign.LongHeadline),
		pq.Array(orEmpty(campaign.Descriptions)),
		nullString(campaign.BusinessName),
		images,
		pq.Array(orEmpty(campaign.Keywords)),
		nullString(campaign.FinalURL),
		nullString(campaign.VideoURL),
		nullString(campaign.MerchantCenterID),
	).Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	campaign, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return campaign, nil
}

// List retrieves campaigns matching the filter, newest first.
func (r *campaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`

	where, args := filterClauses(filter)
	if len(where) > 0 {
		query += " AND " + strings.Join(where, " AND ")
	}
	argPos := len(args) + 1

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) Count(ctx context.Context, filter interfaces.CampaignFilter) (int, error) {
	query := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	where, args := filterClauses(filter)
	if len(where) > 0 {
		query += " AND " + strings.Join(where, " AND ")
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Update rewrites every mutable column of a campaign.
func (r *campaignRepository) Update(ctx context.Context, id string, campaign *models.Campaign) error {
	images, err := json.Marshal(campaign.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		UPDATE campaigns
		SET name = $1,
			objective = $2,
			campaign_type = $3,
			status = $4,
			daily_budget = $5,
			start_date = $6,
			end_date = $7,
			bidding_strategy = $8,
			target_cpa = $9,
			target_roas = $10,
			headlines = $11,
			long_headline = $12,
			descriptions = $13,
			business_name = $14,
			images = $15,
			keywords = $16,
			final_url = $17,
			video_url = $18,
			merchant_center_id = $19,
			updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $20
		RETURNING updated_at
	`

	err = r.db.QueryRowContext(
		ctx,
		query,
		campaign.Name,
		string(campaign.Objective),
		campaign.CampaignType,
		string(campaign.Status),
		campaign.DailyBudget,
		campaign.StartDate,
		campaign.EndDate,
		nullString(campaign.BiddingStrategy),
		nullInt64(campaign.TargetCPA),
		nullFloat64(campaign.TargetROAS),
		pq.Array(orEmpty(campaign.Headlines)),
		nullString(campaign.LongHeadline),
		pq.Array(orEmpty(campaign.Descriptions)),
		nullString(campaign.BusinessName),
		images,
		pq.Array(orEmpty(campaign.Keywords)),
		nullString(campaign.FinalURL),
		nullString(campaign.VideoURL),
		nullString(campaign.MerchantCenterID),
		id,
	).Scan(&campaign.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

// UpdateStatus transitions a campaign's status and, when the platform
// returned identifiers, records them.
func (r *campaignRepository) UpdateStatus(ctx context.Context, id string, status models.CampaignStatus, platformIDs *interfaces.PlatformIDs) error {
	var res sql.Result
	var err error
	if platformIDs != nil {
		res, err = r.db.ExecContext(ctx, `
			UPDATE campaigns
			SET status = $1,
				google_campaign_id = $2,
				google_ad_group_id = $3,
				google_ad_id = $4,
				updated_at = NOW() AT TIME ZONE 'UTC'
			WHERE id = $5
		`, string(status), platformIDs.CampaignID, platformIDs.AdGroupID, nullString(platformIDs.AdID), id)
	} else {
		res, err = r.db.ExecContext(ctx, `
			UPDATE campaigns
			SET status = $1,
				updated_at = NOW() AT TIME ZONE 'UTC'
			WHERE id = $2
		`, string(status), id)
	}
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a campaign by ID
func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func filterClauses(filter interfaces.CampaignFilter) ([]string, []interface{}) {
	var args []interface{}
	var whereClauses []string
	argPos := 1

	if filter.OwnerID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("owner_id = $%d", argPos))
		args = append(args, filter.OwnerID)
		argPos++
	}
	if filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.CampaignType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("campaign_type = $%d", argPos))
		args = append(args, filter.CampaignType)
		argPos++
	}
	return whereClauses, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var c models.Campaign
	var ownerID, biddingStrategy, longHeadline, businessName sql.NullString
	var googleCampaignID, googleAdGroupID, googleAdID sql.NullString
	var finalURL, videoURL, merchantCenterID sql.NullString
	var endDate sql.NullTime
	var targetCPA sql.NullInt64
	var targetROAS sql.NullFloat64
	var images []byte

	err := row.Scan(
		&c.ID,
		&ownerID,
		&c.Name,
		&c.Objective,
		&c.CampaignType,
		&c.Status,
		&c.DailyBudget,
		&c.StartDate,
		&endDate,
		&biddingStrategy,
		&targetCPA,
		&targetROAS,
		&googleCampaignID,
		&googleAdGroupID,
		&googleAdID,
		pq.Array(&c.Headlines),
		&longHeadline,
		pq.Array(&c.Descriptions),
		&businessName,
		&images,
		pq.Array(&c.Keywords),
		&finalURL,
		&videoURL,
		&merchantCenterID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.OwnerID = ownerID.String
	c.BiddingStrategy = biddingStrategy.String
	c.LongHeadline = longHeadline.String
	c.BusinessName = businessName.String
	c.GoogleCampaignID = googleCampaignID.String
	c.GoogleAdGroupID = googleAdGroupID.String
	c.GoogleAdID = googleAdID.String
	c.FinalURL = finalURL.String
	c.VideoURL = videoURL.String
	c.MerchantCenterID = merchantCenterID.String
	if endDate.Valid {
		c.EndDate = &endDate.Time
	}
	c.TargetCPA = targetCPA.Int64
	c.TargetROAS = targetROAS.Float64

	if len(images) > 0 {
		var assets rules.ImageAssets
		if err := json.Unmarshal(images, &assets); err != nil {
			return nil, fmt.Errorf("failed to decode images: %w", err)
		}
		c.Images = assets
	}
	return &c, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullFloat64(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}

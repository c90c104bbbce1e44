package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"adcampaign/internal/interfaces"
	"adcampaign/internal/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreateCampaignScansTimestamps(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO campaigns").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	c := &models.Campaign{
		ID:           "3e2a1f6e-7a3b-4f6e-9a14-0f1d7c2b8a90",
		Name:         "Spring Sale",
		Objective:    models.ObjectiveSales,
		CampaignType: "SEARCH",
		Status:       models.CampaignStatusDraft,
		DailyBudget:  10_000_000,
		StartDate:    now,
	}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !c.CreatedAt.Equal(now) || !c.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not scanned: %v %v", c.CreatedAt, c.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDScansFullRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepository(db)

	now := time.Now().UTC()
	cols := []string{
		"id", "owner_id", "name", "objective", "campaign_type", "status",
		"daily_budget", "start_date", "end_date",
		"bidding_strategy", "target_cpa", "target_roas",
		"google_campaign_id", "google_ad_group_id", "google_ad_id",
		"headlines", "long_headline", "descriptions", "business_name",
		"images", "keywords", "final_url", "video_url", "merchant_center_id",
		"created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE id").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"c1", "u1", "Spring Sale", "SALES", "SEARCH", "DRAFT",
			int64(10_000_000), now, nil,
			"target_cpa", int64(5_000_000), nil,
			nil, nil, nil,
			[]byte(`{"Run faster","Shop shoes","Free shipping"}`), nil,
			[]byte(`{"Top shoes","Order today"}`), nil,
			[]byte(`{"landscape_url":"https://cdn.example.com/a.png"}`),
			[]byte(`{"running shoes"}`),
			"https://example.com/shoes", nil, nil,
			now, now,
		))

	c, err := repo.GetByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if c.Name != "Spring Sale" || c.CampaignType != "SEARCH" {
		t.Fatalf("unexpected campaign: %+v", c)
	}
	if len(c.Headlines) != 3 || len(c.Descriptions) != 2 || len(c.Keywords) != 1 {
		t.Fatalf("array columns not scanned: %+v", c)
	}
	if c.BiddingStrategy != "target_cpa" || c.TargetCPA != 5_000_000 {
		t.Fatalf("bidding fields not scanned: %+v", c)
	}
	if c.Images.LandscapeURL != "https://cdn.example.com/a.png" {
		t.Fatalf("images not decoded: %+v", c.Images)
	}
	if c.EndDate != nil {
		t.Fatalf("expected nil end date, got %v", c.EndDate)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestDeleteReportsMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepository(db)

	mock.ExpectExec("DELETE FROM campaigns WHERE id").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUpdateStatusWithPlatformIDs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepository(db)

	mock.ExpectExec("UPDATE campaigns").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "c1", models.CampaignStatusPublished, &interfaces.PlatformIDs{
		CampaignID: "customers/123/campaigns/456",
		AdGroupID:  "customers/123/adGroups/789",
		AdID:       "customers/123/ads/999",
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
}

func TestListAppliesFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE 1=1 AND status = (.+) ORDER BY created_at DESC LIMIT").
		WithArgs("DRAFT", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// No rows returned; what matters is that the filter reached the query.
	_, err := repo.List(context.Background(), interfaces.CampaignFilter{Status: "DRAFT", Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"adcampaign/internal/interfaces"
	"adcampaign/internal/middleware"
	"adcampaign/internal/models"
	"adcampaign/internal/rules"
	"adcampaign/internal/services"
)

type mockCampaignRepo struct {
	campaigns map[string]*models.Campaign
}

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{campaigns: map[string]*models.Campaign{}}
}

var _ interfaces.CampaignRepository = (*mockCampaignRepo)(nil)

func (m *mockCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	m.campaigns[campaign.ID] = campaign
	return nil
}

func (m *mockCampaignRepo) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (m *mockCampaignRepo) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, c := range m.campaigns {
		if filter.OwnerID != "" && c.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		if filter.CampaignType != "" && c.CampaignType != filter.CampaignType {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCampaignRepo) Count(ctx context.Context, filter interfaces.CampaignFilter) (int, error) {
	list, _ := m.List(ctx, filter)
	return len(list), nil
}

func (m *mockCampaignRepo) Update(ctx context.Context, id string, campaign *models.Campaign) error {
	if _, ok := m.campaigns[id]; !ok {
		return sql.ErrNoRows
	}
	m.campaigns[id] = campaign
	return nil
}

func (m *mockCampaignRepo) UpdateStatus(ctx context.Context, id string, status models.CampaignStatus, platformIDs *interfaces.PlatformIDs) error {
	c, ok := m.campaigns[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.Status = status
	if platformIDs != nil {
		c.GoogleCampaignID = platformIDs.CampaignID
		c.GoogleAdGroupID = platformIDs.AdGroupID
		c.GoogleAdID = platformIDs.AdID
	}
	return nil
}

func (m *mockCampaignRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.campaigns[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.campaigns, id)
	return nil
}

type mockPlatform struct {
	configured bool
	publishErr error
	statusErr  error
	paused     []string
	enabled    []string
}

func (m *mockPlatform) IsConfigured() bool { return m.configured }

func (m *mockPlatform) PublishCampaign(ctx context.Context, campaign *models.Campaign) (*interfaces.PlatformIDs, error) {
	if m.publishErr != nil {
		return nil, m.publishErr
	}
	return &interfaces.PlatformIDs{
		CampaignID: "customers/1/campaigns/100",
		AdGroupID:  "customers/1/adGroups/200",
	}, nil
}

func (m *mockPlatform) PauseCampaign(ctx context.Context, id string) error {
	m.paused = append(m.paused, id)
	return m.statusErr
}

func (m *mockPlatform) EnableCampaign(ctx context.Context, id string) error {
	m.enabled = append(m.enabled, id)
	return m.statusErr
}

func campaignRouter(repo interfaces.CampaignRepository, platform *mockPlatform) *chi.Mux {
	h := NewCampaignHandler(repo, platform, nil)
	r := chi.NewRouter()
	r.Post("/campaigns", h.CreateCampaign)
	r.Get("/campaigns", h.ListCampaigns)
	r.Route("/campaigns/{id}", func(r chi.Router) {
		r.Get("/", h.GetCampaign)
		r.Put("/", h.UpdateCampaign)
		r.Delete("/", h.DeleteCampaign)
		r.Post("/validate", h.ValidateCampaign)
		r.Post("/publish", h.PublishCampaign)
		r.Post("/pause", h.PauseCampaign)
		r.Post("/enable", h.EnableCampaign)
	})
	return r
}

// asUser simulates the JWT middleware by putting a user ID on the request
// context before the router sees it.
func asUser(router http.Handler, userID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.CtxUserID, userID)
		router.ServeHTTP(w, r.WithContext(ctx))
	})
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func searchDraftPayload() map[string]any {
	return map[string]any{
		"name":          "Running Shoes Search",
		"objective":     "SALES",
		"campaign_type": "SEARCH",
		"daily_budget":  10_000_000,
		"start_date":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"headlines":     []string{"Run Faster", "Shop Shoes", "Best Prices"},
		"descriptions":  []string{"Great shoes for every run.", "Free shipping on all orders."},
		"keywords":      []string{"running shoes", "trail shoes"},
		"final_url":     "https://shoes.example.com",
	}
}

func TestCreateCampaignDraft(t *testing.T) {
	repo := newMockCampaignRepo()
	router := campaignRouter(repo, &mockPlatform{configured: true})

	w := postJSON(t, router, "/campaigns", searchDraftPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}

	var created models.Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created.Status != models.CampaignStatusDraft {
		t.Errorf("status = %s, want DRAFT", created.Status)
	}
	if created.ID == "" {
		t.Error("expected generated ID")
	}
	if created.BiddingStrategy != string(rules.ManualCPC) {
		t.Errorf("default strategy = %q, want manual_cpc", created.BiddingStrategy)
	}
	if len(repo.campaigns) != 1 {
		t.Errorf("repo has %d campaigns, want 1", len(repo.campaigns))
	}
}

func TestCreateCampaignUnknownType(t *testing.T) {
	router := campaignRouter(newMockCampaignRepo(), &mockPlatform{})

	payload := searchDraftPayload()
	payload["campaign_type"] = "BANNER"

	w := postJSON(t, router, "/campaigns", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "invalid_campaign_type" {
		t.Errorf("error = %v", resp["error"])
	}
}

func TestCreateCampaignDraftRuleViolation(t *testing.T) {
	router := campaignRouter(newMockCampaignRepo(), &mockPlatform{})

	payload := searchDraftPayload()
	payload["headlines"] = []string{"This headline is far too long for a search campaign slot"}

	w := postJSON(t, router, "/campaigns", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}

	var resp models.ValidationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Valid {
		t.Error("expected invalid outcome")
	}
	found := false
	for _, e := range resp.Errors {
		if e.Code == rules.CodeMaxLength && e.Field == rules.FieldHeadlines {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MAX_LENGTH on headlines, got %v", resp.Errors)
	}
}

func TestCreateCampaignMissingRequiredFieldsStillDrafts(t *testing.T) {
	// Draft creation defers publish-only requirements like keywords and URL.
	router := campaignRouter(newMockCampaignRepo(), &mockPlatform{})

	payload := map[string]any{
		"name":          "Bare Draft",
		"objective":     "LEADS",
		"campaign_type": "SEARCH",
		"daily_budget":  5_000_000,
		"start_date":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}

	w := postJSON(t, router, "/campaigns", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	router := campaignRouter(newMockCampaignRepo(), &mockPlatform{})

	req := httptest.NewRequest(http.MethodGet, "/campaigns/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json got %q", ct)
	}
}

func seedCampaign(repo *mockCampaignRepo, c *models.Campaign) *models.Campaign {
	if c.ID == "" {
		c.ID = "c1"
	}
	repo.campaigns[c.ID] = c
	return c
}

func validSearchCampaign() *models.Campaign {
	return &models.Campaign{
		ID:              "c1",
		Name:            "Running Shoes Search",
		Objective:       models.ObjectiveSales,
		CampaignType:    "SEARCH",
		Status:          models.CampaignStatusDraft,
		DailyBudget:     10_000_000,
		StartDate:       time.Now().Add(24 * time.Hour),
		BiddingStrategy: string(rules.ManualCPC),
		Headlines:       []string{"Run Faster", "Shop Shoes", "Best Prices"},
		Descriptions:    []string{"Great shoes for every run.", "Free shipping on all orders."},
		Keywords:        []string{"running shoes", "trail shoes"},
		FinalURL:        "https://shoes.example.com",
	}
}

func TestValidateCampaignReportsPublishGaps(t *testing.T) {
	repo := newMockCampaignRepo()
	c := validSearchCampaign()
	c.Keywords = nil
	c.FinalURL = ""
	seedCampaign(repo, c)
	router := campaignRouter(repo, &mockPlatform{})

	w := postJSON(t, router, "/campaigns/c1/validate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	var resp models.ValidationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Valid {
		t.Error("expected invalid outcome")
	}
	codes := map[rules.Code]bool{}
	for _, e := range resp.Errors {
		codes[e.Code] = true
	}
	if !codes[rules.CodeMinCount] || !codes[rules.CodeURLRequired] {
		t.Errorf("expected MIN_COUNT and URL_REQUIRED, got %v", resp.Errors)
	}
	if resp.Requirements.DefaultStrategy != "manual_cpc" {
		t.Errorf("requirements default strategy = %q", resp.Requirements.DefaultStrategy)
	}

	// Validation never mutates stored state.
	if repo.campaigns["c1"].Status != models.CampaignStatusDraft {
		t.Error("validate changed campaign status")
	}
}

func TestPublishCampaign(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, validSearchCampaign())
	platform := &mockPlatform{configured: true}
	router := campaignRouter(repo, platform)

	w := postJSON(t, router, "/campaigns/c1/publish", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	stored := repo.campaigns["c1"]
	if stored.Status != models.CampaignStatusPublished {
		t.Errorf("status = %s, want PUBLISHED", stored.Status)
	}
	if stored.GoogleCampaignID != "customers/1/campaigns/100" {
		t.Errorf("platform campaign id = %q", stored.GoogleCampaignID)
	}
}

func TestPublishCampaignBlockedByRules(t *testing.T) {
	repo := newMockCampaignRepo()
	c := validSearchCampaign()
	c.FinalURL = ""
	seedCampaign(repo, c)
	router := campaignRouter(repo, &mockPlatform{configured: true})

	w := postJSON(t, router, "/campaigns/c1/publish", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	if repo.campaigns["c1"].Status != models.CampaignStatusDraft {
		t.Error("failed publish should not change status")
	}
}

func TestPublishVideoCampaignRejected(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, &models.Campaign{
		ID:           "v1",
		Name:         "Launch Teaser",
		Objective:    models.ObjectiveLeads,
		CampaignType: "VIDEO",
		Status:       models.CampaignStatusDraft,
		DailyBudget:  5_000_000,
		StartDate:    time.Now().Add(24 * time.Hour),
		VideoURL:     "https://videos.example.com/teaser.mp4",
	})
	router := campaignRouter(repo, &mockPlatform{configured: true})

	w := postJSON(t, router, "/campaigns/v1/publish", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "manual_publish_required" {
		t.Errorf("error = %v", resp["error"])
	}
}

func TestPublishPlatformFailureSetsErrorStatus(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, validSearchCampaign())
	platform := &mockPlatform{configured: true, publishErr: errors.New("Daily budget is below the platform minimum")}
	router := campaignRouter(repo, platform)

	w := postJSON(t, router, "/campaigns/c1/publish", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d (%s)", w.Code, w.Body.String())
	}
	if repo.campaigns["c1"].Status != models.CampaignStatusError {
		t.Errorf("status = %s, want ERROR", repo.campaigns["c1"].Status)
	}
}

func TestPauseAndEnableCampaign(t *testing.T) {
	repo := newMockCampaignRepo()
	c := validSearchCampaign()
	c.Status = models.CampaignStatusPublished
	c.GoogleCampaignID = "customers/1/campaigns/100"
	seedCampaign(repo, c)
	platform := &mockPlatform{configured: true}
	router := campaignRouter(repo, platform)

	w := postJSON(t, router, "/campaigns/c1/pause", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pause: expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if repo.campaigns["c1"].Status != models.CampaignStatusPaused {
		t.Errorf("status = %s, want PAUSED", repo.campaigns["c1"].Status)
	}
	if len(platform.paused) != 1 {
		t.Errorf("platform pause calls = %d", len(platform.paused))
	}

	w = postJSON(t, router, "/campaigns/c1/enable", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("enable: expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if repo.campaigns["c1"].Status != models.CampaignStatusPublished {
		t.Errorf("status = %s, want PUBLISHED", repo.campaigns["c1"].Status)
	}
}

func TestPauseDraftCampaignConflicts(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, validSearchCampaign())
	router := campaignRouter(repo, &mockPlatform{configured: true})

	w := postJSON(t, router, "/campaigns/c1/pause", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestUpdateCampaignTypeImmutable(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, validSearchCampaign())
	router := campaignRouter(repo, &mockPlatform{})

	body, _ := json.Marshal(map[string]any{"campaign_type": "DISPLAY"})
	req := httptest.NewRequest(http.MethodPut, "/campaigns/c1/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "campaign_type_immutable" {
		t.Errorf("error = %v", resp["error"])
	}
}

func TestUpdateCampaignAppliesPartialChanges(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, validSearchCampaign())
	router := campaignRouter(repo, &mockPlatform{})

	body, _ := json.Marshal(map[string]any{
		"name":      "Renamed",
		"headlines": []string{"Fresh Copy", "New Angle", "Same Shoes"},
	})
	req := httptest.NewRequest(http.MethodPut, "/campaigns/c1/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	stored := repo.campaigns["c1"]
	if stored.Name != "Renamed" {
		t.Errorf("name = %q", stored.Name)
	}
	if len(stored.Headlines) != 3 || stored.Headlines[0] != "Fresh Copy" {
		t.Errorf("headlines = %v", stored.Headlines)
	}
	if stored.FinalURL != "https://shoes.example.com" {
		t.Error("untouched fields should survive partial update")
	}
}

func TestDeleteCampaign(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, validSearchCampaign())
	router := campaignRouter(repo, &mockPlatform{})

	req := httptest.NewRequest(http.MethodDelete, "/campaigns/c1/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if len(repo.campaigns) != 0 {
		t.Error("campaign should be deleted")
	}

	req = httptest.NewRequest(http.MethodDelete, "/campaigns/c1/", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestDeletePublishedCampaignConflicts(t *testing.T) {
	repo := newMockCampaignRepo()
	c := validSearchCampaign()
	c.Status = models.CampaignStatusPublished
	seedCampaign(repo, c)
	router := campaignRouter(repo, &mockPlatform{})

	req := httptest.NewRequest(http.MethodDelete, "/campaigns/c1/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
	if len(repo.campaigns) != 1 {
		t.Error("published campaign must not be deleted")
	}
}

func TestListCampaignsFiltersByType(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, validSearchCampaign())
	display := validSearchCampaign()
	display.ID = "c2"
	display.CampaignType = "DISPLAY"
	seedCampaign(repo, display)
	router := campaignRouter(repo, &mockPlatform{})

	req := httptest.NewRequest(http.MethodGet, "/campaigns?campaign_type=SEARCH", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Campaigns []models.Campaign `json:"campaigns"`
		Total     int               `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 1 || len(resp.Campaigns) != 1 {
		t.Fatalf("total = %d, campaigns = %d", resp.Total, len(resp.Campaigns))
	}
	if resp.Campaigns[0].CampaignType != "SEARCH" {
		t.Errorf("campaign type = %s", resp.Campaigns[0].CampaignType)
	}
}

func TestCreateCampaignRecordsOwner(t *testing.T) {
	repo := newMockCampaignRepo()
	router := asUser(campaignRouter(repo, &mockPlatform{}), "user-1")

	w := postJSON(t, router, "/campaigns", searchDraftPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}

	var created models.Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created.OwnerID != "user-1" {
		t.Errorf("owner_id = %q, want user-1", created.OwnerID)
	}
	if stored := repo.campaigns[created.ID]; stored == nil || stored.OwnerID != "user-1" {
		t.Errorf("stored owner_id not recorded: %+v", stored)
	}
}

func TestCampaignsScopedToOwner(t *testing.T) {
	repo := newMockCampaignRepo()
	c := validSearchCampaign()
	c.OwnerID = "user-1"
	seedCampaign(repo, c)
	router := campaignRouter(repo, &mockPlatform{})
	owner := asUser(router, "user-1")
	stranger := asUser(router, "user-2")

	req := httptest.NewRequest(http.MethodGet, "/campaigns/c1/", nil)
	w := httptest.NewRecorder()
	stranger.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("stranger get: expected 404 got %d (%s)", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/campaigns/c1/", nil)
	w = httptest.NewRecorder()
	owner.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("owner get: expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/campaigns", nil)
	w = httptest.NewRecorder()
	stranger.ServeHTTP(w, req)
	var resp struct {
		Campaigns []models.Campaign `json:"campaigns"`
		Total     int               `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 0 || len(resp.Campaigns) != 0 {
		t.Errorf("stranger list: total = %d, campaigns = %d", resp.Total, len(resp.Campaigns))
	}

	req = httptest.NewRequest(http.MethodDelete, "/campaigns/c1/", nil)
	w = httptest.NewRecorder()
	stranger.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("stranger delete: expected 404 got %d (%s)", w.Code, w.Body.String())
	}
	if len(repo.campaigns) != 1 {
		t.Error("stranger must not delete another owner's campaign")
	}
}

func TestUpdateStartDateBeyondEndDateRejected(t *testing.T) {
	repo := newMockCampaignRepo()
	c := validSearchCampaign()
	end := c.StartDate.Add(7 * 24 * time.Hour)
	c.EndDate = &end
	seedCampaign(repo, c)
	router := campaignRouter(repo, &mockPlatform{})

	body, _ := json.Marshal(map[string]any{
		"start_date": end.Add(24 * time.Hour).Format(time.RFC3339),
	})
	req := httptest.NewRequest(http.MethodPut, "/campaigns/c1/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "invalid_date_range" {
		t.Errorf("error = %v, want invalid_date_range", resp["error"])
	}
}

func TestPublishRetryablePlatformFailureKeepsDraft(t *testing.T) {
	repo := newMockCampaignRepo()
	seedCampaign(repo, validSearchCampaign())
	platform := &mockPlatform{
		configured: true,
		publishErr: &services.PlatformError{Message: "Google Ads rate limit exceeded. Try again later", Retryable: true},
	}
	router := campaignRouter(repo, platform)

	req := httptest.NewRequest(http.MethodPost, "/campaigns/c1/publish", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d (%s)", w.Code, w.Body.String())
	}
	if got := repo.campaigns["c1"].Status; got != models.CampaignStatusDraft {
		t.Errorf("status = %s, want DRAFT after a transient failure", got)
	}
}

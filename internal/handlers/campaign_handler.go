package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"adcampaign/internal/interfaces"
	"adcampaign/internal/middleware"
	"adcampaign/internal/models"
	"adcampaign/internal/rules"
	"adcampaign/internal/services"
)

type CampaignHandler struct {
	repo      interfaces.CampaignRepository
	platform  services.AdPlatform
	inspector *services.ImageInspector
	validator *validator.Validate
}

func NewCampaignHandler(repo interfaces.CampaignRepository, platform services.AdPlatform, inspector *services.ImageInspector) *CampaignHandler {
	return &CampaignHandler{
		repo:      repo,
		platform:  platform,
		inspector: inspector,
		validator: validator.New(),
	}
}

// loadCampaign fetches a campaign by path param and writes the error response
// itself when it cannot.
func (h *CampaignHandler) loadCampaign(w http.ResponseWriter, r *http.Request) *models.Campaign {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Campaign ID is required")
		return nil
	}

	campaign, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return nil
		}
		writeJSONError(w, http.StatusInternalServerError, "get_campaign_failed", "Failed to fetch campaign")
		return nil
	}

	// Campaigns are scoped to their owner. A campaign with no recorded owner
	// (the owning user was deleted) stays reachable by ID.
	if owner := middleware.UserID(r.Context()); owner != "" && campaign.OwnerID != "" && campaign.OwnerID != owner {
		writeJSONError(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
		return nil
	}
	return campaign
}

// @Tags Campaigns
// @Summary Create campaign
// @Description Creates a campaign as a draft. The campaign type's draft rules are applied; publish-only requirements are deferred.
// @Accept json
// @Produce json
// @Param request body models.CreateCampaignRequest true "Campaign"
// @Success 201 {object} models.Campaign
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/campaigns/ [post]
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	variant, err := rules.ParseVariant(req.CampaignType)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_campaign_type", err.Error())
		return
	}

	strategy := rules.DefaultStrategy(variant)
	if req.BiddingStrategy != "" {
		strategy, err = rules.ParseStrategy(req.BiddingStrategy)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_bidding_strategy", err.Error())
			return
		}
	}

	if req.EndDate != nil && !req.EndDate.After(req.StartDate) {
		writeJSONError(w, http.StatusBadRequest, "invalid_date_range", "End date must be after start date")
		return
	}

	campaign := &models.Campaign{
		ID:               uuid.NewString(),
		OwnerID:          middleware.UserID(r.Context()),
		Name:             req.Name,
		Objective:        req.Objective,
		CampaignType:     string(variant),
		Status:           models.CampaignStatusDraft,
		DailyBudget:      req.DailyBudget,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		BiddingStrategy:  string(strategy),
		TargetCPA:        req.TargetCPA,
		TargetROAS:       req.TargetROAS,
		Headlines:        req.Headlines,
		LongHeadline:     req.LongHeadline,
		Descriptions:     req.Descriptions,
		BusinessName:     req.BusinessName,
		Images:           req.Images,
		Keywords:         req.Keywords,
		FinalURL:         req.FinalURL,
		VideoURL:         req.VideoURL,
		MerchantCenterID: req.MerchantCenterID,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}

	outcome := rules.ValidateDraft(campaign.RuleCandidate())
	if !outcome.Valid {
		writeJSON(w, http.StatusBadRequest, models.ValidationResponse{
			Outcome:      outcome,
			CampaignType: campaign.CampaignType,
			Requirements: models.RequirementsFor(variant),
		})
		return
	}

	if err := h.repo.Create(r.Context(), campaign); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusConflict, "duplicate_campaign", "A campaign with this name already exists")
			return
		}
		log.Println("Error creating campaign:", err)
		writeJSONError(w, http.StatusInternalServerError, "create_campaign_failed", "Failed to create campaign")
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

// @Tags Campaigns
// @Summary Get campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.Campaign
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/ [get]
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := h.loadCampaign(w, r)
	if campaign == nil {
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// @Tags Campaigns
// @Summary List campaigns
// @Produce json
// @Param status query string false "Filter by status"
// @Param campaign_type query string false "Filter by campaign type"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Campaign
// @Router /api/v1/campaigns/ [get]
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.CampaignFilter{
		OwnerID: middleware.UserID(r.Context()),
		Limit:   100,
	}

	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		filter.Status = status
	}
	if ct := q.Get("campaign_type"); ct != "" {
		variant, err := rules.ParseVariant(ct)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_campaign_type", err.Error())
			return
		}
		filter.CampaignType = string(variant)
	}
	if limit := q.Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 && n <= 500 {
			filter.Limit = n
		}
	}
	if offset := q.Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	campaigns, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	total, err := h.repo.Count(r.Context(), filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to count campaigns")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"campaigns": campaigns,
		"total":     total,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})
}

// @Tags Campaigns
// @Summary Update campaign
// @Description Applies a partial update. Published campaigns only accept creative and budget changes; the campaign type is immutable.
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} models.Campaign
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/ [put]
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := h.loadCampaign(w, r)
	if campaign == nil {
		return
	}

	var req models.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.CampaignType != nil && *req.CampaignType != campaign.CampaignType {
		writeJSONError(w, http.StatusBadRequest, "campaign_type_immutable", "Campaign type cannot be changed after creation")
		return
	}

	applyCampaignUpdate(campaign, &req)

	// Either date may have moved; check the pair, not just the changed one.
	if campaign.EndDate != nil && !campaign.EndDate.After(campaign.StartDate) {
		writeJSONError(w, http.StatusBadRequest, "invalid_date_range", "End date must be after start date")
		return
	}

	if req.BiddingStrategy != nil {
		if _, err := rules.ParseStrategy(campaign.BiddingStrategy); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_bidding_strategy", err.Error())
			return
		}
	}

	outcome := rules.ValidateDraft(campaign.RuleCandidate())
	if !outcome.Valid {
		writeJSON(w, http.StatusBadRequest, models.ValidationResponse{
			Outcome:      outcome,
			CampaignType: campaign.CampaignType,
			Requirements: models.RequirementsFor(rules.CampaignVariant(campaign.CampaignType)),
		})
		return
	}

	campaign.UpdatedAt = time.Now().UTC()
	if err := h.repo.Update(r.Context(), campaign.ID, campaign); err != nil {
		log.Println("Error updating campaign:", campaign.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "update_campaign_failed", "Failed to update campaign")
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

func applyCampaignUpdate(c *models.Campaign, req *models.UpdateCampaignRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Objective != nil {
		c.Objective = *req.Objective
	}
	if req.DailyBudget != nil {
		c.DailyBudget = *req.DailyBudget
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = req.EndDate
	}
	if req.BiddingStrategy != nil {
		c.BiddingStrategy = *req.BiddingStrategy
	}
	if req.TargetCPA != nil {
		c.TargetCPA = *req.TargetCPA
	}
	if req.TargetROAS != nil {
		c.TargetROAS = *req.TargetROAS
	}
	if req.Headlines != nil {
		c.Headlines = *req.Headlines
	}
	if req.LongHeadline != nil {
		c.LongHeadline = *req.LongHeadline
	}
	if req.Descriptions != nil {
		c.Descriptions = *req.Descriptions
	}
	if req.BusinessName != nil {
		c.BusinessName = *req.BusinessName
	}
	if req.Images != nil {
		c.Images = *req.Images
	}
	if req.Keywords != nil {
		c.Keywords = *req.Keywords
	}
	if req.FinalURL != nil {
		c.FinalURL = *req.FinalURL
	}
	if req.VideoURL != nil {
		c.VideoURL = *req.VideoURL
	}
	if req.MerchantCenterID != nil {
		c.MerchantCenterID = *req.MerchantCenterID
	}
}

// @Tags Campaigns
// @Summary Delete campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/ [delete]
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := h.loadCampaign(w, r)
	if campaign == nil {
		return
	}
	if campaign.Status == models.CampaignStatusPublished {
		writeJSONError(w, http.StatusConflict, "campaign_published",
			"Published campaigns cannot be deleted. Pause the campaign first.")
		return
	}

	if err := h.repo.Delete(r.Context(), campaign.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		log.Println("Error deleting campaign:", campaign.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "delete_campaign_failed", "Failed to delete campaign")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "campaign deleted successfully", "id": campaign.ID})
}

// @Tags Campaigns
// @Summary Validate campaign for publishing
// @Description Runs the full publish-level rule set and inspects any image assets. Never mutates the campaign.
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.ValidationResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/validate [post]
func (h *CampaignHandler) ValidateCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := h.loadCampaign(w, r)
	if campaign == nil {
		return
	}

	variant := rules.CampaignVariant(campaign.CampaignType)
	resp := models.ValidationResponse{
		Outcome:      rules.ValidateForPublish(campaign.RuleCandidate()),
		CampaignType: campaign.CampaignType,
		Requirements: models.RequirementsFor(variant),
	}
	if h.inspector != nil {
		resp.ImageReports = h.inspector.InspectCampaignImages(r.Context(), variant, campaign.Images)
		for _, report := range resp.ImageReports {
			if !report.OK {
				resp.Valid = false
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// @Tags Campaigns
// @Summary Publish campaign
// @Description Validates against the publish-level rules and creates the campaign on Google Ads. The stored record gains the platform resource names.
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.Campaign
// @Failure 400 {object} models.ValidationResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/publish [post]
func (h *CampaignHandler) PublishCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := h.loadCampaign(w, r)
	if campaign == nil {
		return
	}

	if campaign.Status == models.CampaignStatusPublished {
		writeJSONError(w, http.StatusConflict, "already_published", "Campaign is already published")
		return
	}

	variant := rules.CampaignVariant(campaign.CampaignType)
	outcome := rules.ValidateForPublish(campaign.RuleCandidate())
	if !outcome.Valid {
		writeJSON(w, http.StatusBadRequest, models.ValidationResponse{
			Outcome:      outcome,
			CampaignType: campaign.CampaignType,
			Requirements: models.RequirementsFor(variant),
		})
		return
	}

	if ok, caveat := rules.AutomatedPublish(variant); !ok {
		writeJSONError(w, http.StatusUnprocessableEntity, "manual_publish_required", caveat)
		return
	}

	if h.platform == nil || !h.platform.IsConfigured() {
		writeJSONError(w, http.StatusServiceUnavailable, "platform_not_configured", "Google Ads API is not configured")
		return
	}

	ids, err := h.platform.PublishCampaign(r.Context(), campaign)
	if err != nil {
		log.Println("Error publishing campaign:", campaign.ID, err)
		var perr *services.PlatformError
		if errors.As(err, &perr) && perr.Retryable {
			// Transient platform condition; the draft stays publishable.
			writeJSONError(w, http.StatusServiceUnavailable, "platform_unavailable", err.Error())
			return
		}
		_ = h.repo.UpdateStatus(r.Context(), campaign.ID, models.CampaignStatusError, nil)
		writeJSONError(w, http.StatusBadGateway, "publish_failed", err.Error())
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), campaign.ID, models.CampaignStatusPublished, ids); err != nil {
		log.Println("Error recording publish result:", campaign.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "publish_record_failed", "Campaign was published but the result could not be saved")
		return
	}

	campaign.Status = models.CampaignStatusPublished
	campaign.GoogleCampaignID = ids.CampaignID
	campaign.GoogleAdGroupID = ids.AdGroupID
	campaign.GoogleAdID = ids.AdID
	writeJSON(w, http.StatusOK, campaign)
}

// @Tags Campaigns
// @Summary Pause campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.Campaign
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/pause [post]
func (h *CampaignHandler) PauseCampaign(w http.ResponseWriter, r *http.Request) {
	h.setPlatformStatus(w, r, models.CampaignStatusPublished, models.CampaignStatusPaused)
}

// @Tags Campaigns
// @Summary Enable campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.Campaign
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/enable [post]
func (h *CampaignHandler) EnableCampaign(w http.ResponseWriter, r *http.Request) {
	h.setPlatformStatus(w, r, models.CampaignStatusPaused, models.CampaignStatusPublished)
}

func (h *CampaignHandler) setPlatformStatus(w http.ResponseWriter, r *http.Request, from, to models.CampaignStatus) {
	campaign := h.loadCampaign(w, r)
	if campaign == nil {
		return
	}

	if campaign.Status != from {
		writeJSONError(w, http.StatusConflict, "invalid_status_transition",
			"Campaign is "+string(campaign.Status)+", expected "+string(from))
		return
	}
	if campaign.GoogleCampaignID == "" {
		writeJSONError(w, http.StatusConflict, "not_on_platform", "Campaign has no platform resource")
		return
	}
	if h.platform == nil || !h.platform.IsConfigured() {
		writeJSONError(w, http.StatusServiceUnavailable, "platform_not_configured", "Google Ads API is not configured")
		return
	}

	var err error
	if to == models.CampaignStatusPaused {
		err = h.platform.PauseCampaign(r.Context(), campaign.GoogleCampaignID)
	} else {
		err = h.platform.EnableCampaign(r.Context(), campaign.GoogleCampaignID)
	}
	if err != nil {
		log.Println("Error changing platform status:", campaign.ID, err)
		writeJSONError(w, http.StatusBadGateway, "platform_status_failed", err.Error())
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), campaign.ID, to, nil); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "status_record_failed", "Platform status changed but the result could not be saved")
		return
	}

	campaign.Status = to
	writeJSON(w, http.StatusOK, campaign)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"adcampaign/internal/models"
	"adcampaign/internal/rules"
)

// CampaignTypeHandler serves the per-type requirement metadata that form
// layers render field visibility and limits from.
type CampaignTypeHandler struct{}

func NewCampaignTypeHandler() *CampaignTypeHandler {
	return &CampaignTypeHandler{}
}

// @Tags Campaign Types
// @Summary List campaign types
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/campaign-types/ [get]
func (h *CampaignTypeHandler) ListCampaignTypes(w http.ResponseWriter, r *http.Request) {
	types := make(map[string]models.VariantRequirements, len(rules.AllVariants))
	for _, v := range rules.AllVariants {
		types[string(v)] = models.RequirementsFor(v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaign_types": types})
}

// @Tags Campaign Types
// @Summary Get campaign type requirements
// @Produce json
// @Param type path string true "Campaign type"
// @Success 200 {object} models.VariantRequirements
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaign-types/{type}/ [get]
func (h *CampaignTypeHandler) GetCampaignType(w http.ResponseWriter, r *http.Request) {
	variant, err := rules.ParseVariant(chi.URLParam(r, "type"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "unknown_campaign_type", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.RequirementsFor(variant))
}

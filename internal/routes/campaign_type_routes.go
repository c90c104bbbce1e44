package routes

import (
	"github.com/go-chi/chi/v5"

	"adcampaign/internal/handlers"
)

func RegisterCampaignTypeRoutes(router chi.Router) {
	handler := handlers.NewCampaignTypeHandler()

	router.Route("/campaign-types", func(r chi.Router) {
		r.Get("/", handler.ListCampaignTypes)
		r.Get("/{type}", handler.GetCampaignType)
	})
}

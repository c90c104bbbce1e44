package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"adcampaign/internal/handlers"
	"adcampaign/internal/repository"
	"adcampaign/internal/services"
)

func RegisterCampaignRoutes(router chi.Router, db *sql.DB, platform services.AdPlatform, inspector *services.ImageInspector) {
	repo := repository.NewCampaignRepository(db)
	handler := handlers.NewCampaignHandler(repo, platform, inspector)

	router.Route("/campaigns", func(r chi.Router) {
		r.Get("/", handler.ListCampaigns)
		r.Post("/", handler.CreateCampaign)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetCampaign)
			r.Put("/", handler.UpdateCampaign)
			r.Delete("/", handler.DeleteCampaign)
			r.Post("/validate", handler.ValidateCampaign)
			r.Post("/publish", handler.PublishCampaign)
			r.Post("/pause", handler.PauseCampaign)
			r.Post("/enable", handler.EnableCampaign)
		})
	})
}

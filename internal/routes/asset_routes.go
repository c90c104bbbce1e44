package routes

import (
	"github.com/go-chi/chi/v5"

	"adcampaign/internal/config"
	"adcampaign/internal/handlers"
)

func RegisterAssetRoutes(router chi.Router, s3Config *config.S3Config) {
	handler := handlers.NewAssetHandler(s3Config)

	router.Route("/assets", func(r chi.Router) {
		r.Post("/images", handler.UploadImage)
	})
}

package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"adcampaign/internal/config"
	appmiddleware "adcampaign/internal/middleware"
	"adcampaign/internal/services"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "ad campaign api",
			"docs":    "/swagger/index.html",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		overall := "ok"
		status := http.StatusOK
		dbStatus := map[string]any{"status": "ok"}
		if err := db.PingContext(ctx); err != nil {
			overall = "degraded"
			status = http.StatusServiceUnavailable
			dbStatus = map[string]any{"status": "down", "error": err.Error()}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": overall, "db": dbStatus})
	})

	platform := services.NewGoogleAdsClient(cfg.GoogleAds)
	inspector := services.NewImageInspector()

	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, db, cfg)
		RegisterCampaignTypeRoutes(r)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.JWTAuth(cfg.JWTSecret))
			RegisterCampaignRoutes(r, db, platform, inspector)
			if s3Config != nil {
				RegisterAssetRoutes(r, s3Config)
			}
		})
	})

	RegisterSwaggerRoutes(r)

	return r
}

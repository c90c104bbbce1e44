package handlers

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"adcampaign/internal/config"
	"adcampaign/internal/rules"
	"adcampaign/internal/services"
)

// AssetHandler uploads campaign image assets to S3. Uploads are checked
// against the slot's dimension policy before anything is stored, so a
// campaign can only ever reference a conforming asset URL.
type AssetHandler struct {
	s3Client      *s3.Client
	bucket        string
	publicBaseURL string
}

func NewAssetHandler(s3Config *config.S3Config) *AssetHandler {
	return &AssetHandler{
		s3Client:      s3Config.Client,
		bucket:        s3Config.Bucket,
		publicBaseURL: s3Config.PublicBaseURL,
	}
}

var imageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// @Tags Assets
// @Summary Upload image asset
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param slot formData string true "Image slot (landscape, square, logo)"
// @Param file formData file true "Image file"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/assets/images [post]
func (h *AssetHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 8 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	slot := r.FormValue("slot")
	spec, ok := rules.SlotPolicy(rules.ImageSlot(slot))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_slot", "slot must be one of: landscape, square, logo")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageContentTypes[contentType]
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_image_format", "Supported formats: JPEG, PNG, GIF")
		return
	}

	body, err := io.ReadAll(io.LimitReader(file, 5<<20+1))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "upload_failed", "Failed to read file")
		return
	}
	if len(body) > 5<<20 {
		writeJSONError(w, http.StatusBadRequest, "image_too_large", "Image files are limited to 5MB")
		return
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_image_format", "Could not decode image")
		return
	}

	if problems := services.CheckSlot(spec, cfg.Width, cfg.Height); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "image_policy_violation",
			"slot":     slot,
			"width":    cfg.Width,
			"height":   cfg.Height,
			"problems": problems,
		})
		return
	}

	key := filepath.Join("assets", slot, uuid.NewString()+ext)
	uploader := manager.NewUploader(h.s3Client)
	_, err = uploader.Upload(r.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Failed to upload asset %s to S3: %v", header.Filename, err)
		writeJSONError(w, http.StatusInternalServerError, "upload_failed", "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"slot":   slot,
		"url":    strings.TrimRight(h.publicBaseURL, "/") + "/" + key,
		"width":  cfg.Width,
		"height": cfg.Height,
		"size":   len(body),
	})
}

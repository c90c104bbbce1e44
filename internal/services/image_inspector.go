package services

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	// Registered so image.DecodeConfig can read the formats the platform accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"adcampaign/internal/models"
	"adcampaign/internal/rules"
)

const maxImageBytes = 5 << 20 // platform asset limit

// ImageInspector downloads campaign image assets and checks them against the
// slot policies declared by the campaign's rule set.
type ImageInspector struct {
	httpClient *http.Client
}

func NewImageInspector() *ImageInspector {
	return &ImageInspector{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (ii *ImageInspector) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		ii.httpClient = hc
	}
}

// Measure fetches the image at url and reports its pixel dimensions. Only the
// header is decoded, never the full bitmap.
func (ii *ImageInspector) Measure(ctx context.Context, url string) (width, height int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := ii.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	cfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return 0, 0, fmt.Errorf("unsupported or corrupt image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// CheckSlot applies a slot policy to measured dimensions.
func CheckSlot(spec rules.ImageSlotSpec, width, height int) []string {
	var problems []string

	if width <= 0 || height <= 0 {
		return []string{"invalid image dimensions"}
	}

	if width < spec.MinWidth {
		problems = append(problems, fmt.Sprintf(
			"image width %dpx is below the minimum %dpx for %s", width, spec.MinWidth, spec.Description))
	}
	if height < spec.MinHeight {
		problems = append(problems, fmt.Sprintf(
			"image height %dpx is below the minimum %dpx for %s", height, spec.MinHeight, spec.Description))
	}

	ratio := float64(width) / float64(height)
	if math.Abs(ratio-spec.Ratio)/spec.Ratio > spec.RatioTolerance {
		problems = append(problems, fmt.Sprintf(
			"image aspect ratio %.2f does not match the required %.2f (tolerance %.0f%%)",
			ratio, spec.Ratio, spec.RatioTolerance*100))
	}

	return problems
}

// InspectCampaignImages measures every filled image slot for the campaign's
// variant and reports per-slot findings. Slots with no URL are skipped; slot
// presence itself is the rules engine's job.
func (ii *ImageInspector) InspectCampaignImages(ctx context.Context, variant rules.CampaignVariant, assets rules.ImageAssets) []models.ImageReport {
	var reports []models.ImageReport

	for _, spec := range rules.SlotsFor(variant) {
		url := assets.URLFor(spec.Slot)
		if strings.TrimSpace(url) == "" {
			continue
		}

		report := models.ImageReport{Slot: string(spec.Slot), URL: url}
		width, height, err := ii.Measure(ctx, url)
		if err != nil {
			report.Problems = []string{err.Error()}
		} else {
			report.Width = width
			report.Height = height
			report.Problems = CheckSlot(spec, width, height)
		}
		report.OK = len(report.Problems) == 0
		reports = append(reports, report)
	}

	return reports
}

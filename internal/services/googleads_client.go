package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"adcampaign/internal/config"
	"adcampaign/internal/interfaces"
	"adcampaign/internal/models"
	"adcampaign/internal/rules"
)

// AdPlatform is the narrow surface the campaign handlers publish through.
// The rules engine decides whether a campaign may be published; this client
// performs the publish.
type AdPlatform interface {
	IsConfigured() bool
	PublishCampaign(ctx context.Context, campaign *models.Campaign) (*interfaces.PlatformIDs, error)
	PauseCampaign(ctx context.Context, platformCampaignID string) error
	EnableCampaign(ctx context.Context, platformCampaignID string) error
}

const defaultTokenURL = "https://oauth2.googleapis.com/token"

// GoogleAdsClient talks to the Google Ads REST API. Access tokens are
// refreshed lazily from the configured OAuth refresh token and cached under
// a mutex until shortly before expiry.
type GoogleAdsClient struct {
	baseURL        string
	tokenURL       string
	developerToken string
	clientID       string
	clientSecret   string
	refreshToken   string
	customerID     string
	httpClient     *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewGoogleAdsClient(cfg config.GoogleAdsConfig) *GoogleAdsClient {
	return &GoogleAdsClient{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		tokenURL:       defaultTokenURL,
		developerToken: cfg.DeveloperToken,
		clientID:       cfg.ClientID,
		clientSecret:   cfg.ClientSecret,
		refreshToken:   cfg.RefreshToken,
		customerID:     strings.ReplaceAll(cfg.CustomerID, "-", ""),
		httpClient:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *GoogleAdsClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// SetTokenURL overrides the OAuth endpoint (tests point it at a local server).
func (c *GoogleAdsClient) SetTokenURL(u string) {
	if strings.TrimSpace(u) != "" {
		c.tokenURL = u
	}
}

// IsConfigured reports whether every credential needed to reach the API is set.
func (c *GoogleAdsClient) IsConfigured() bool {
	return c.developerToken != "" && c.clientID != "" && c.clientSecret != "" &&
		c.refreshToken != "" && c.customerID != ""
}

func (c *GoogleAdsClient) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.tokenExp) {
		t := c.token
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	tok, ttl, err := c.refreshAccessToken(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = tok
	c.tokenExp = time.Now().Add(ttl - 30*time.Second)
	c.mu.Unlock()

	return tok, nil
}

func (c *GoogleAdsClient) refreshAccessToken(ctx context.Context) (string, time.Duration, error) {
	if !c.IsConfigured() {
		return "", 0, errors.New("google ads credentials are not configured")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", c.refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token refresh failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", 0, fmt.Errorf("token refresh failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, fmt.Errorf("token refresh failed: %w", err)
	}
	if payload.AccessToken == "" {
		return "", 0, errors.New("token refresh returned no access token")
	}
	ttl := time.Duration(payload.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return payload.AccessToken, ttl, nil
}

type mutateResult struct {
	Results []struct {
		ResourceName string `json:"resourceName"`
	} `json:"results"`
}

func (c *GoogleAdsClient) mutate(ctx context.Context, resource string, operations any) (string, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v22/customers/%s/%s:mutate", c.baseURL, c.customerID, resource)
	body, err := json.Marshal(map[string]any{"operations": operations})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("developer-token", c.developerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s mutate failed: %w", resource, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s mutate failed: %w", resource, NewPlatformError(raw))
	}

	var result mutateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%s mutate failed: %w", resource, err)
	}
	if len(result.Results) == 0 {
		return "", fmt.Errorf("%s mutate returned no results", resource)
	}
	return result.Results[0].ResourceName, nil
}

// PublishCampaign creates the campaign and its ad group on the platform and
// returns the resource names. Campaigns are created PAUSED so nothing spends
// before the user enables it. Callers are expected to gate on the rules
// engine first; the Video restriction is re-checked here as a last line.
func (c *GoogleAdsClient) PublishCampaign(ctx context.Context, campaign *models.Campaign) (*interfaces.PlatformIDs, error) {
	if !c.IsConfigured() {
		return nil, errors.New("google ads api is not configured")
	}

	variant, err := rules.ParseVariant(campaign.CampaignType)
	if err != nil {
		return nil, err
	}
	if ok, caveat := rules.AutomatedPublish(variant); !ok {
		return nil, errors.New(caveat)
	}

	budgetResource, err := c.mutate(ctx, "campaignBudgets", []any{map[string]any{
		"create": map[string]any{
			"name":           campaign.Name + " Budget",
			"amountMicros":   campaign.DailyBudget,
			"deliveryMethod": "STANDARD",
		},
	}})
	if err != nil {
		return nil, err
	}

	campaignResource, err := c.mutate(ctx, "campaigns", []any{map[string]any{
		"create": c.campaignPayload(campaign, variant, budgetResource),
	}})
	if err != nil {
		return nil, err
	}

	adGroupResource, err := c.mutate(ctx, "adGroups", []any{map[string]any{
		"create": map[string]any{
			"name":     campaign.Name + " Ad Group",
			"campaign": campaignResource,
			"status":   "ENABLED",
		},
	}})
	if err != nil {
		return nil, err
	}

	ids := &interfaces.PlatformIDs{
		CampaignID: campaignResource,
		AdGroupID:  adGroupResource,
	}

	// Search campaigns also carry their keywords as ad group criteria.
	if variant == rules.VariantSearch && len(campaign.Keywords) > 0 {
		var ops []any
		for _, kw := range campaign.Keywords {
			ops = append(ops, map[string]any{
				"create": map[string]any{
					"adGroup": adGroupResource,
					"keyword": map[string]any{"text": kw, "matchType": "BROAD"},
				},
			})
		}
		if _, err := c.mutate(ctx, "adGroupCriteria", ops); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

func (c *GoogleAdsClient) campaignPayload(campaign *models.Campaign, variant rules.CampaignVariant, budgetResource string) map[string]any {
	payload := map[string]any{
		"name":                   campaign.Name,
		"status":                 "PAUSED",
		"advertisingChannelType": string(variant),
		"campaignBudget":         budgetResource,
		"startDate":              campaign.StartDate.Format("2006-01-02"),
	}
	if campaign.EndDate != nil {
		payload["endDate"] = campaign.EndDate.Format("2006-01-02")
	}

	strategy := rules.BiddingStrategy(campaign.BiddingStrategy)
	if campaign.BiddingStrategy == "" {
		strategy = rules.DefaultStrategy(variant)
	}
	switch strategy {
	case rules.TargetCPA:
		payload["maximizeConversions"] = map[string]any{"targetCpaMicros": campaign.TargetCPA}
	case rules.TargetROAS:
		payload["maximizeConversionValue"] = map[string]any{"targetRoas": campaign.TargetROAS}
	case rules.MaximizeConversions:
		payload["maximizeConversions"] = map[string]any{}
	case rules.MaximizeConversionValue:
		payload["maximizeConversionValue"] = map[string]any{}
	case rules.MaximizeClicks:
		payload["targetSpend"] = map[string]any{}
	case rules.ManualCPC, rules.TargetCPC:
		payload["manualCpc"] = map[string]any{}
	case rules.ManualCPM, rules.TargetCPM:
		payload["manualCpm"] = map[string]any{}
	}

	if variant == rules.VariantShopping && campaign.MerchantCenterID != "" {
		payload["shoppingSetting"] = map[string]any{"merchantId": campaign.MerchantCenterID}
	}
	return payload
}

func (c *GoogleAdsClient) setCampaignStatus(ctx context.Context, platformCampaignID, status string) error {
	if !c.IsConfigured() {
		return errors.New("google ads api is not configured")
	}
	_, err := c.mutate(ctx, "campaigns", []any{map[string]any{
		"update": map[string]any{
			"resourceName": platformCampaignID,
			"status":       status,
		},
		"updateMask": "status",
	}})
	return err
}

func (c *GoogleAdsClient) PauseCampaign(ctx context.Context, platformCampaignID string) error {
	return c.setCampaignStatus(ctx, platformCampaignID, "PAUSED")
}

func (c *GoogleAdsClient) EnableCampaign(ctx context.Context, platformCampaignID string) error {
	return c.setCampaignStatus(ctx, platformCampaignID, "ENABLED")
}

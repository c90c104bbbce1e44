package services

import (
	"encoding/json"
	"strings"
)

// platformErrorMessages maps Google Ads API error codes to messages a
// campaign owner can act on. Codes not listed fall through to the raw
// platform message.
var platformErrorMessages = map[string]string{
	"REQUIRED_FIELD_MISSING":          "A required field is missing",
	"NOT_ENOUGH_HEADLINE_ASSET":       "Not enough headlines for this campaign type",
	"NOT_ENOUGH_DESCRIPTION_ASSET":    "Not enough descriptions for this campaign type",
	"SHORT_DESCRIPTION_REQUIRED":      "At least one description of 60 characters or fewer is required",
	"ASSET_TEXT_TOO_LONG":             "Asset text exceeds the maximum length",
	"HEADLINE_TEXT_TOO_LONG":          "Headline exceeds the maximum length of 30 characters",
	"DESCRIPTION_TEXT_TOO_LONG":       "Description exceeds the maximum length of 90 characters",
	"DUPLICATE_ASSET":                 "This asset already exists in the account",
	"CRITERION_ALREADY_EXISTS":        "This keyword already exists in the ad group",
	"KEYWORD_TEXT_TOO_LONG":           "Keyword exceeds the maximum length of 80 characters",
	"TOO_MANY_KEYWORDS":               "Too many keywords in ad group",
	"ASPECT_RATIO_NOT_ALLOWED":        "Image aspect ratio is not allowed for this placement",
	"IMAGE_TOO_SMALL":                 "Image dimensions are below the minimum required",
	"INVALID_IMAGE_FORMAT":            "Invalid image format. Supported formats: JPEG, PNG, GIF",
	"CAMPAIGN_TYPE_NOT_COMPATIBLE":    "Campaign type is not compatible with the selected settings",
	"BUDGET_AMOUNT_TOO_LOW":           "Daily budget is below the platform minimum",
	"INVALID_DATE_RANGE":              "End date must be after start date",
	"START_DATE_IN_PAST":              "Start date cannot be in the past",
	"INVALID_BIDDING_STRATEGY":        "Invalid bidding strategy for this campaign type",
	"BIDDING_STRATEGY_NOT_SUPPORTED":  "Bidding strategy is not supported for this campaign type",
	"TARGET_CPA_REQUIRED":             "Target CPA value is required for the target_cpa bidding strategy",
	"TARGET_ROAS_REQUIRED":            "Target ROAS value is required for the target_roas bidding strategy",
	"FINAL_URL_REQUIRED":              "Final URL is required for this campaign type",
	"INVALID_URL":                     "Invalid URL format",
	"MERCHANT_CENTER_NOT_LINKED":      "Merchant Center account is not linked",
	"MERCHANT_CENTER_ID_REQUIRED":     "Merchant Center ID is required for Shopping campaigns",
	"AUTHENTICATION_ERROR":            "Authentication with Google Ads failed. Check the configured credentials",
	"AUTHORIZATION_ERROR":             "The configured account does not have permission for this operation",
	"CUSTOMER_NOT_FOUND":              "Google Ads customer account not found",
	"RATE_LIMIT_EXCEEDED":             "Google Ads rate limit exceeded. Try again later",
	"RESOURCE_EXHAUSTED":              "Google Ads API quota exhausted. Try again later",
	"DEADLINE_EXCEEDED":               "Google Ads request timed out. Try again",
	"INTERNAL_ERROR":                  "Google Ads reported an internal error. Try again",
}

var retryablePlatformErrors = map[string]bool{
	"INTERNAL_ERROR":      true,
	"TRANSIENT_ERROR":     true,
	"RESOURCE_EXHAUSTED":  true,
	"DEADLINE_EXCEEDED":   true,
	"RATE_LIMIT_EXCEEDED": true,
}

// IsRetryablePlatformError reports whether a platform error code marks a
// transient condition worth retrying.
func IsRetryablePlatformError(code string) bool {
	return retryablePlatformErrors[code]
}

// PlatformError is a Google Ads failure mapped to user-facing text.
// Retryable marks transient conditions the caller may resubmit unchanged.
type PlatformError struct {
	Message   string
	Retryable bool
}

func (e *PlatformError) Error() string { return e.Message }

type platformErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Errors []struct {
				Message   string            `json:"message"`
				ErrorCode map[string]string `json:"errorCode"`
			} `json:"errors"`
		} `json:"details"`
	} `json:"error"`
}

// MapPlatformError turns a raw Google Ads error response body into the most
// specific user-facing message available.
func MapPlatformError(raw []byte) string {
	message, _ := decodePlatformError(raw)
	return message
}

// NewPlatformError decodes a raw error response into a PlatformError,
// retryable when every reported code is transient.
func NewPlatformError(raw []byte) *PlatformError {
	message, codes := decodePlatformError(raw)
	retryable := len(codes) > 0
	for _, code := range codes {
		if !IsRetryablePlatformError(code) {
			retryable = false
			break
		}
	}
	return &PlatformError{Message: message, Retryable: retryable}
}

func decodePlatformError(raw []byte) (string, []string) {
	var body platformErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw)), nil
	}

	var messages []string
	var codes []string
	for _, detail := range body.Error.Details {
		for _, e := range detail.Errors {
			code := ""
			for _, v := range e.ErrorCode {
				code = v
				break
			}
			code = strings.ToUpper(code)
			if code != "" {
				codes = append(codes, code)
			}
			if msg, ok := platformErrorMessages[code]; ok {
				messages = append(messages, msg)
			} else if e.Message != "" {
				messages = append(messages, e.Message)
			}
		}
	}
	if len(messages) > 0 {
		return strings.Join(messages, "; "), codes
	}
	if body.Error.Message != "" {
		return body.Error.Message, codes
	}
	return strings.TrimSpace(string(raw)), codes
}

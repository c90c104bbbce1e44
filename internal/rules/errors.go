package rules

import "fmt"

// Code is a machine-checkable violation code. Consumers branch on these;
// messages are for humans only.
type Code string

const (
	CodeMinCount                Code = "MIN_COUNT"
	CodeMaxCount                Code = "MAX_COUNT"
	CodeMaxLength               Code = "MAX_LENGTH"
	CodeDuplicateKeyword        Code = "DUPLICATE_KEYWORD"
	CodeShortDescriptionMissing Code = "SHORT_DESCRIPTION_MISSING"
	CodeImageRequired           Code = "IMAGE_REQUIRED"
	CodeStrategyNotAllowed      Code = "STRATEGY_NOT_ALLOWED"
	CodeTargetRequired          Code = "TARGET_REQUIRED"
	CodeURLRequired             Code = "URL_REQUIRED"
	CodeURLInvalid              Code = "URL_INVALID"
)

// FieldError is one validation violation, tied to the field it concerns.
type FieldError struct {
	Field   Field  `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// Outcome is the result of validating one candidate. Warnings never make a
// candidate invalid; they flag conditions (like the Video manual-publish
// caveat) the caller may want to surface.
type Outcome struct {
	Valid    bool         `json:"valid"`
	Errors   []FieldError `json:"errors"`
	Warnings []string     `json:"warnings,omitempty"`
}

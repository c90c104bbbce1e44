package rules

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Mode selects how much required-ness the engine enforces. Draft validation
// is meant for a form mid-edit: limits still apply, minimums do not.
type Mode int

const (
	ModeDraft Mode = iota
	ModePublish
)

// nonBlank returns the entries that count: trimmed-non-empty strings. A user
// cannot satisfy a minimum with blank padding, and blank entries are skipped
// for length checks.
func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// fieldLabel renders a field name for human messages ("headlines" -> "headline").
func fieldLabel(f Field) string {
	label := strings.ReplaceAll(string(f), "_", " ")
	return strings.TrimSuffix(label, "s")
}

// checkTextList validates a bounded list-like text field. The caller must
// skip fields whose spec does not exist for the variant.
func checkTextList(f Field, values []string, spec TextListSpec, mode Mode) []FieldError {
	var errs []FieldError
	entries := nonBlank(values)

	if mode == ModePublish && spec.Required && len(entries) < spec.MinCount {
		errs = append(errs, FieldError{
			Field: f,
			Code:  CodeMinCount,
			Message: fmt.Sprintf("at least %d %s(s) required, got %d",
				spec.MinCount, fieldLabel(f), len(entries)),
		})
	}
	if len(entries) > spec.MaxCount {
		errs = append(errs, FieldError{
			Field:   f,
			Code:    CodeMaxCount,
			Message: fmt.Sprintf("at most %d %s(s) allowed, got %d", spec.MaxCount, fieldLabel(f), len(entries)),
		})
	}
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if utf8.RuneCountInString(v) > spec.MaxLength {
			errs = append(errs, FieldError{
				Field:   f,
				Code:    CodeMaxLength,
				Message: fmt.Sprintf("%s %d exceeds %d characters", fieldLabel(f), i+1, spec.MaxLength),
			})
		}
	}
	return errs
}

// checkSingleText validates a scalar text field with the list semantics
// scalarized: missing-when-required reports MIN_COUNT, overlong reports
// MAX_LENGTH.
func checkSingleText(f Field, value string, spec SingleTextSpec, mode Mode) []FieldError {
	if !spec.Exists {
		return nil
	}
	var errs []FieldError
	trimmed := strings.TrimSpace(value)
	if mode == ModePublish && spec.Required && trimmed == "" {
		errs = append(errs, FieldError{
			Field:   f,
			Code:    CodeMinCount,
			Message: fmt.Sprintf("%s is required", fieldLabel(f)),
		})
	}
	if trimmed != "" && utf8.RuneCountInString(value) > spec.MaxLength {
		errs = append(errs, FieldError{
			Field:   f,
			Code:    CodeMaxLength,
			Message: fmt.Sprintf("%s exceeds %d characters", fieldLabel(f), spec.MaxLength),
		})
	}
	return errs
}

// isAbsoluteURL reports whether s is a well-formed absolute http(s) URL.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// checkURL validates a URL field: required-ness per the variant, format
// whenever a value is present.
func checkURL(f Field, value string, required bool, mode Mode) []FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if mode == ModePublish && required {
			return []FieldError{{
				Field:   f,
				Code:    CodeURLRequired,
				Message: fmt.Sprintf("%s is required", fieldLabel(f)),
			}}
		}
		return nil
	}
	if !isAbsoluteURL(trimmed) {
		return []FieldError{{
			Field:   f,
			Code:    CodeURLInvalid,
			Message: fmt.Sprintf("%s is not a valid absolute URL", fieldLabel(f)),
		}}
	}
	return nil
}

// checkMerchantID validates the merchant center identifier required by
// Shopping campaigns.
func checkMerchantID(value string, required bool, mode Mode) []FieldError {
	if mode == ModePublish && required && strings.TrimSpace(value) == "" {
		return []FieldError{{
			Field:   FieldMerchantCenterID,
			Code:    CodeMinCount,
			Message: "merchant center id is required",
		}}
	}
	return nil
}

// checkTargetValues rejects targets that are present but not positive finite
// numbers. Whether a target must be present at all depends on the selected
// strategy and is a cross-field concern.
func checkTargetValues(c Candidate) []FieldError {
	var errs []FieldError
	if c.TargetCPA < 0 {
		errs = append(errs, FieldError{
			Field:   FieldTargetCPA,
			Code:    CodeTargetRequired,
			Message: "target CPA must be a positive amount",
		})
	}
	if c.TargetROAS != 0 && (c.TargetROAS < 0 || math.IsNaN(c.TargetROAS) || math.IsInf(c.TargetROAS, 0)) {
		errs = append(errs, FieldError{
			Field:   FieldTargetROAS,
			Code:    CodeTargetRequired,
			Message: "target ROAS must be a positive finite multiplier",
		})
	}
	return errs
}

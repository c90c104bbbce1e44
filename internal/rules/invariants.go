package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Cross-field invariants. Each is a pure function over the full candidate and
// its resolved rules. They run in the order listed in engine.go and never
// short-circuit one another.

// checkShortDescription enforces the Performance Max short-description rule:
// among the non-blank descriptions, at least one must fit ShortMaxLength.
// Gated on ShortRequired so it never runs for other variants, and skipped
// while the description list is still empty.
func checkShortDescription(c Candidate, r VariantRules) []FieldError {
	if !r.Descriptions.ShortRequired {
		return nil
	}
	entries := nonBlank(c.Descriptions)
	if len(entries) == 0 {
		return nil
	}
	for _, d := range entries {
		if utf8.RuneCountInString(d) <= r.Descriptions.ShortMaxLength {
			return nil
		}
	}
	return []FieldError{{
		Field: FieldDescriptions,
		Code:  CodeShortDescriptionMissing,
		Message: fmt.Sprintf("at least one description of %d characters or fewer is required",
			r.Descriptions.ShortMaxLength),
	}}
}

// checkKeywordUniqueness flags duplicate keywords after trimming and ordinal
// case-folding. Later occurrences are flagged, not the first, so N copies of
// one keyword yield N-1 errors.
func checkKeywordUniqueness(c Candidate, r VariantRules) []FieldError {
	if !r.Keywords.Unique {
		return nil
	}
	var errs []FieldError
	seen := make(map[string]bool, len(c.Keywords))
	for _, kw := range c.Keywords {
		normalized := strings.ToLower(strings.TrimSpace(kw))
		if normalized == "" {
			continue
		}
		if seen[normalized] {
			errs = append(errs, FieldError{
				Field:   FieldKeywords,
				Code:    CodeDuplicateKeyword,
				Message: fmt.Sprintf("duplicate keyword detected: %q", kw),
			})
			continue
		}
		seen[normalized] = true
	}
	return errs
}

// checkImagePresence requires at least one declared slot to be filled, for
// variants that declare image slots at all.
func checkImagePresence(c Candidate, r VariantRules, mode Mode) []FieldError {
	if mode != ModePublish || len(r.ImageSlots) == 0 {
		return nil
	}
	for _, slot := range r.ImageSlots {
		if strings.TrimSpace(c.Images.URLFor(slot.Slot)) != "" {
			return nil
		}
	}
	return []FieldError{{
		Field:   FieldImages,
		Code:    CodeImageRequired,
		Message: fmt.Sprintf("%s campaigns require at least one image", r.Variant),
	}}
}

// checkStrategyAllowed verifies a selected strategy against the variant's
// permitted list. No selection is fine; the validator never invents one.
func checkStrategyAllowed(c Candidate, r VariantRules) []FieldError {
	if c.Strategy == "" {
		return nil
	}
	for _, s := range r.Strategies {
		if s == c.Strategy {
			return nil
		}
	}
	return []FieldError{{
		Field: FieldBiddingStrategy,
		Code:  CodeStrategyNotAllowed,
		Message: fmt.Sprintf("bidding strategy %s is not valid for %s campaigns",
			c.Strategy, r.Variant),
	}}
}

// checkStrategyTarget couples the selected strategy to its numeric target:
// target_cpa needs a positive CPA, target_roas a positive ROAS. Over-
// specifying a target for a strategy that ignores it is not an error.
// Enforced at publish time only; mid-edit a strategy may be selected before
// its target is typed in.
func checkStrategyTarget(c Candidate, mode Mode) []FieldError {
	if mode != ModePublish || c.Strategy == "" {
		return nil
	}
	switch c.Strategy.RequiredTarget() {
	case TargetKindCPA:
		if c.TargetCPA <= 0 {
			return []FieldError{{
				Field:   FieldTargetCPA,
				Code:    CodeTargetRequired,
				Message: "target CPA value is required for target_cpa bidding strategy",
			}}
		}
	case TargetKindROAS:
		if c.TargetROAS <= 0 {
			return []FieldError{{
				Field:   FieldTargetROAS,
				Code:    CodeTargetRequired,
				Message: "target ROAS value is required for target_roas bidding strategy",
			}}
		}
	}
	return nil
}

package rules

// ValidateDraft validates a candidate with required-ness relaxed: count
// minimums, required scalars, required URLs and the image-presence rule are
// skipped, so a half-filled form only reports what is actually wrong with
// the data entered so far.
func ValidateDraft(c Candidate) Outcome {
	return validate(c, ModeDraft)
}

// ValidateForPublish validates a candidate with the full rule set for its
// variant. A Valid outcome means the campaign may proceed to the automated
// publish path, except where a warning says the variant has none.
func ValidateForPublish(c Candidate) Outcome {
	return validate(c, ModePublish)
}

// validate runs field checks in field-declaration order, then cross-field
// checks in a fixed order. All checks run; errors are concatenated so the
// caller sees every violation at once.
func validate(c Candidate, mode Mode) Outcome {
	r := RulesFor(c.Variant)

	var errs []FieldError

	// Field checks. A field whose spec does not exist for the variant is
	// skipped outright, never invoked with a vacuous spec.
	if r.Headlines.Exists() {
		errs = append(errs, checkTextList(FieldHeadlines, c.Headlines, r.Headlines, mode)...)
	}
	errs = append(errs, checkSingleText(FieldLongHeadline, c.LongHeadline, r.LongHeadline, mode)...)
	if r.Descriptions.Exists() {
		errs = append(errs, checkTextList(FieldDescriptions, c.Descriptions, r.Descriptions, mode)...)
	}
	errs = append(errs, checkSingleText(FieldBusinessName, c.BusinessName, r.BusinessName, mode)...)
	if r.Keywords.Exists() {
		errs = append(errs, checkTextList(FieldKeywords, c.Keywords, r.Keywords, mode)...)
	}
	errs = append(errs, checkURL(FieldFinalURL, c.FinalURL, r.FinalURLRequired, mode)...)
	errs = append(errs, checkURL(FieldVideoURL, c.VideoURL, r.VideoURLRequired, mode)...)
	errs = append(errs, checkMerchantID(c.MerchantCenterID, r.MerchantCenterIDRequired, mode)...)
	errs = append(errs, checkTargetValues(c)...)

	// Cross-field invariants.
	errs = append(errs, checkShortDescription(c, r)...)
	errs = append(errs, checkKeywordUniqueness(c, r)...)
	errs = append(errs, checkImagePresence(c, r, mode)...)
	errs = append(errs, checkStrategyAllowed(c, r)...)
	errs = append(errs, checkStrategyTarget(c, mode)...)

	out := Outcome{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
	if out.Errors == nil {
		out.Errors = []FieldError{}
	}
	if !r.AutomatedPublishSupported && r.Caveat != "" {
		out.Warnings = append(out.Warnings, r.Caveat)
	}
	return out
}

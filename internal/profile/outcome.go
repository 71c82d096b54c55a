package profile

// EnrichmentStatus reports how an enrichment attempt concluded. The
// distinction lets callers surface degradation to end users instead of
// silently serving fallback data.
type EnrichmentStatus string

const (
	// StatusSucceeded means live enrichment data was normalized.
	StatusSucceeded EnrichmentStatus = "succeeded"

	// StatusDegraded means the upstream call failed, timed out, or came
	// back empty, and a fallback profile was served instead.
	StatusDegraded EnrichmentStatus = "degraded"
)

// EnrichmentOutcome is the result of a full enrichment run: the
// profile (always structurally valid), how it was obtained, and a
// short human-readable reason when degraded.
type EnrichmentOutcome struct {
	Status  EnrichmentStatus
	Profile *CanonicalProfile

	// Reason is set when Status is StatusDegraded.
	Reason string

	// InsightsApplied reports whether LLM insight fusion ran. False
	// means the LLM call was skipped, failed, or did not parse, and the
	// rule-derived tag set stands alone.
	InsightsApplied bool
}

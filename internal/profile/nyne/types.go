package nyne

// Request and response types for the Nyne enrichment API. Responses
// wrap their payload as {"success": bool, "data": {...}}; the payload
// itself is schemaless and handed to the normalizer as-is.

// apiEnvelope is the wrapper around every Nyne response.
type apiEnvelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

// enrichmentRequest is the /person/enrichment request body.
type enrichmentRequest struct {
	Email          string `json:"email,omitempty"`
	SocialMediaURL string `json:"social_media_url,omitempty"`

	// Enhanced features: the extra data feeds interest inference.
	AIEnhancedSearch bool     `json:"ai_enhanced_search"`
	ProbabilityScore bool     `json:"probability_score"`
	Newsfeed         []string `json:"newsfeed,omitempty"`
}

// interactionsRequest is the /person/interactions request body. It
// requires a Twitter URL, not an email.
type interactionsRequest struct {
	Type           string `json:"type"`
	SocialMediaURL string `json:"social_media_url"`
	MaxResults     int    `json:"max_results"`
}

// articleSearchRequest is the /person/articlesearch request body.
type articleSearchRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Sort    string `json:"sort"`
	Limit   int    `json:"limit"`
}

// newsfeedNetworks lists every social network we request recent posts
// from.
var newsfeedNetworks = []string{"LinkedIn", "Twitter", "Instagram", "GitHub", "Facebook"}

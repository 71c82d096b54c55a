package profile

// Enrichment providers are inconsistent about key names, both across
// providers and across response versions of the same provider. Each
// canonical field therefore declares the upstream keys that may carry
// it, in priority order: the resolver takes the first present,
// non-empty value. Keeping the tables declarative keeps them testable
// independently of the resolution algorithm.

var scalarAliases = map[string][]string{
	"first_name":       {"firstname", "first_name", "firstName"},
	"last_name":        {"lastname", "last_name", "lastName"},
	"full_name":        {"name"},
	"email_verified":   {"email", "email_verified"},
	"phone":            {"phone", "phone_number", "mobile"},
	"profile_photo":    {"photo", "profile_photo", "photo_url", "avatar", "image_url", "picture"},
	"headline":         {"headline", "tagline"},
	"bio":              {"bio", "summary", "about"},
	"profession":       {"job_title", "title", "position", "headline"},
	"company":          {"company", "company_name", "organization"},
	"company_domain":   {"company_domain", "company_website"},
	"company_size":     {"company_size", "company_employees"},
	"company_industry": {"company_industry"},
	"industry":         {"industry", "sector"},
	"seniority":        {"seniority", "level", "job_level"},
	"timezone":         {"timezone", "time_zone"},
	"city":             {"city"},
	"state":            {"state", "region"},
	"country":          {"country", "country_code"},
	"location":         {"location"},
	"birthday":         {"birthday", "birth_date", "dob"},
	"street_address":   {"address", "street_address"},
	"vehicle":          {"vehicle", "car", "vehicle_ownership"},
}

var listAliases = map[string][]string{
	"work_history":    {"positions_info", "positions", "work_history", "experience"},
	"education":       {"schools_info", "education", "schools"},
	"skills":          {"skills", "expertise", "technologies"},
	"languages":       {"languages"},
	"certifications":  {"certifications", "certificates"},
	"recommendations": {"recommendations", "linkedin_recommendations"},
	"volunteering":    {"volunteering", "volunteer_experience"},
	"causes":          {"causes", "supported_causes"},
	"newsfeed":        {"newsfeed", "posts", "recent_activity"},
}

var confidenceAliases = []string{"probability_score", "confidence", "match_score"}

// Named social platforms resolved from both the social_profiles object
// and top-level keys (e.g. "twitter" or "twitter_url").
var namedPlatforms = []string{"linkedin", "twitter", "github", "facebook", "instagram", "strava", "pinterest", "flickr"}

// Platforms collected into the open-ended "other" list.
var otherPlatforms = []string{"medium", "youtube", "website", "blog", "personal_website", "stackoverflow", "dribbble", "behance"}

// resolveString returns the first present, non-empty string value among
// the aliases declared for field. Mistyped values are skipped, never an
// error.
func resolveString(data map[string]any, field string) string {
	return firstString(data, scalarAliases[field]...)
}

// resolveList returns the first present list value among the aliases
// declared for field.
func resolveList(data map[string]any, field string) []any {
	for _, key := range listAliases[field] {
		if v, ok := data[key].([]any); ok {
			return v
		}
	}
	return nil
}

// firstString walks keys in order and returns the first non-empty
// string-typed value.
func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstNumber walks keys in order and returns the first numeric value.
// JSON numbers decode as float64; integer-typed values are accepted too.
func firstNumber(data map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := data[key].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
	}
	return 0, false
}

// asMap returns v as an object, or nil when it is anything else.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// intValue reads a numeric field from an object, tolerating the float64
// that encoding/json produces.
func intValue(data map[string]any, keys ...string) int {
	if n, ok := firstNumber(data, keys...); ok {
		return int(n)
	}
	return 0
}

package profile

import "strings"

// Email domains used by the mock fallback to guess at a likely
// profession when live enrichment is unavailable or returned nothing.
var (
	techDomains = []string{
		"google.com", "meta.com", "apple.com", "microsoft.com",
		"stripe.com", "airbnb.com", "uber.com", "lyft.com",
		"anthropic.com", "openai.com", "salesforce.com",
	}
	financeDomains  = []string{"jpmorgan.com", "goldmansachs.com", "wellsfargo.com"}
	personalDomains = []string{"gmail.com", "yahoo.com"}
)

// MockProfile builds a degraded fallback profile from nothing but the
// email domain. It is used when enrichment credentials are missing, the
// upstream call failed, or it returned empty data; the result is still
// a structurally complete CanonicalProfile.
func MockProfile(email, fallbackCity string) *CanonicalProfile {
	domain := ""
	if at := strings.LastIndex(email, "@"); at >= 0 {
		domain = strings.ToLower(email[at+1:])
	}

	p := NewCanonicalProfile()
	p.DataSource = "mock"
	p.LikelyLocation = fallbackCity

	switch {
	case containsAny(domain, techDomains):
		p.Profession = "Software Engineer"
		p.Interests = []string{"technology", "ai_policy", "transportation"}
	case containsAny(domain, financeDomains):
		p.Profession = "Finance Professional"
		p.Interests = []string{"budget", "taxes", "housing"}
	case strings.HasSuffix(domain, ".edu"):
		p.Profession = "Educator"
		p.Interests = []string{"education", "families", "budget"}
	case containsAny(domain, personalDomains):
		p.Interests = []string{"neighborhoods", "housing"}
	default:
		p.Profession = "Professional"
		p.Interests = []string{"legislation", "neighborhoods"}
	}

	return p
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

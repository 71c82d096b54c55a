package profile

import (
	"strings"

	"github.com/het-sheth/fulcrumai/internal/tags"
)

// MaxInterests caps the interest tag list on a profile.
const MaxInterests = 20

// DefaultInterests is applied when no rule matches anything, so every
// resident gets some baseline of locally relevant events.
var DefaultInterests = []string{"neighborhoods", "housing", "legislation"}

// keywordRule maps trigger substrings to interest tags. Rules are
// independent and non-exclusive: a profile can match any number of
// them, and all matched tags union into the result.
type keywordRule struct {
	triggers []string
	tags     []string
}

// professionRules run against the combined profession + industry +
// bio + headline text.
var professionRules = []keywordRule{
	{[]string{"engineer", "developer", "software", "data", "ai", "ml", "tech", "programming"}, []string{"technology", "ai_policy"}},
	{[]string{"finance", "analyst", "investment", "banking", "accountant", "financial"}, []string{"budget", "taxes", "housing"}},
	{[]string{"lawyer", "attorney", "policy", "government", "legal", "law", "civic"}, []string{"legislation", "civic"}},
	{[]string{"teacher", "professor", "education", "instructor", "school", "university"}, []string{"education", "families"}},
	{[]string{"doctor", "nurse", "health", "medical", "physician", "hospital", "healthcare"}, []string{"healthcare", "families"}},
	{[]string{"real estate", "realtor", "property", "broker", "housing", "rent"}, []string{"housing", "neighborhoods", "zoning"}},
	{[]string{"architect", "construction", "urban", "planner", "city planning"}, []string{"housing", "zoning", "neighborhoods"}},
	{[]string{"transportation", "transit", "bike", "traffic", "commute"}, []string{"transportation", "traffic", "bike_lanes"}},
	{[]string{"environment", "climate", "sustainability", "green", "renewable"}, []string{"environment", "climate"}},
	{[]string{"nonprofit", "social", "community", "advocacy", "volunteer"}, []string{"civic", "neighborhoods", "families"}},
}

// postRules run against each recent post's content.
var postRules = []keywordRule{
	{[]string{"housing", "rent", "apartment"}, []string{"housing"}},
	{[]string{"bike", "transit", "muni", "bart"}, []string{"transportation"}},
	{[]string{"ai", "tech", "startup"}, []string{"technology"}},
	{[]string{"climate", "environment", "green"}, []string{"environment"}},
	{[]string{"school", "education", "kids"}, []string{"education"}},
}

// followingRules run against each followed account's bio + name. Who
// someone chooses to follow is a strong interest signal.
var followingRules = []keywordRule{
	{[]string{"politics", "senator", "mayor", "council", "civic", "voter", "democrat", "republican"}, []string{"civic"}},
	{[]string{"journalist", "reporter", "news", "sfchronicle", "sfexaminer"}, []string{"civic"}},
	{[]string{"tech", "startup", "founder", "vc", "engineer", "ai", "crypto"}, []string{"technology"}},
	{[]string{"climate", "environment", "green", "sustainability"}, []string{"environment"}},
	{[]string{"fitness", "running", "cycling", "warriors", "49ers", "giants"}, []string{"recreation"}},
	{[]string{"housing", "yimby", "nimby", "urban", "zoning", "transit"}, []string{"housing", "transportation"}},
	{[]string{"teacher", "education", "school", "university"}, []string{"education"}},
}

// causeRules run against each declared cause.
var causeRules = []keywordRule{
	{[]string{"environment", "climate", "nature"}, []string{"environment"}},
	{[]string{"education", "children", "youth"}, []string{"education", "families"}},
	{[]string{"poverty", "hunger", "homeless"}, []string{"housing", "civic"}},
	{[]string{"health", "medical"}, []string{"healthcare"}},
	{[]string{"civil rights", "human rights", "equality"}, []string{"civic"}},
}

// volunteeringRules run against each record's organization + cause + role.
var volunteeringRules = []keywordRule{
	{[]string{"housing", "shelter", "homeless"}, []string{"housing"}},
	{[]string{"education", "tutor", "mentor", "school"}, []string{"education"}},
	{[]string{"environment", "clean", "green"}, []string{"environment"}},
}

// pressRules run against each press mention's title + snippet.
var pressRules = []keywordRule{
	{[]string{"housing", "real estate", "rent"}, []string{"housing"}},
	{[]string{"tech", "startup", "ai", "innovation"}, []string{"technology"}},
	{[]string{"policy", "legislation", "government"}, []string{"legislation"}},
}

// skillTagMap maps skill keywords to a single tag each, unlike the
// broader rule groups above.
var skillTagMap = []struct {
	keyword string
	tag     string
}{
	{"public policy", "legislation"},
	{"government", "civic"},
	{"urban planning", "zoning"},
	{"sustainability", "environment"},
	{"renewable", "environment"},
	{"education", "education"},
	{"real estate", "housing"},
	{"machine learning", "ai_policy"},
	{"artificial intelligence", "ai_policy"},
}

// maxSkillsScanned bounds the skill pass; skills beyond this add noise
// more often than signal.
const maxSkillsScanned = 15

// InferInterests derives a deduplicated civic interest tag list from a
// canonical profile using layered keyword rules. Pure function: absent
// or empty fields simply contribute no matches. The result is sorted
// for reproducibility and capped at MaxInterests; when nothing matches
// it returns DefaultInterests.
func InferInterests(p *CanonicalProfile) []string {
	found := tags.Set{}

	blob := strings.ToLower(strings.Join([]string{p.Profession, p.Industry, p.Bio, p.Headline}, " "))
	applyRules(found, blob, professionRules)

	for _, post := range p.RecentPosts {
		applyRules(found, strings.ToLower(post.Content), postRules)
	}
	for _, account := range p.TwitterFollowing {
		applyRules(found, strings.ToLower(account.Bio+" "+account.Name), followingRules)
	}
	for _, cause := range p.Causes {
		applyRules(found, strings.ToLower(cause), causeRules)
	}
	for _, vol := range p.Volunteering {
		applyRules(found, strings.ToLower(vol.Organization+" "+vol.Cause+" "+vol.Role), volunteeringRules)
	}
	for _, article := range p.PressMentions {
		applyRules(found, strings.ToLower(article.Title+" "+article.Snippet), pressRules)
	}

	skills := p.Skills
	if len(skills) > maxSkillsScanned {
		skills = skills[:maxSkillsScanned]
	}
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		for _, entry := range skillTagMap {
			if strings.Contains(lower, entry.keyword) {
				found.Add(entry.tag)
			}
		}
	}

	if found.Len() == 0 {
		return append([]string{}, DefaultInterests...)
	}
	return found.SortedCapped(MaxInterests)
}

// applyRules matches each rule's triggers against text and unions the
// tags of every rule that hits.
func applyRules(found tags.Set, text string, rules []keywordRule) {
	if text == "" {
		return
	}
	for _, rule := range rules {
		for _, trigger := range rule.triggers {
			if strings.Contains(text, trigger) {
				found.AddAll(rule.tags...)
				break
			}
		}
	}
}

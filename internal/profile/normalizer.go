package profile

import (
	"strconv"
	"strings"
	"time"
)

// Caps applied while normalizing list fields. Upstream responses can be
// very large; these bound both storage size and LLM payload size.
const (
	maxFollowing       = 100
	maxPressMentions   = 20
	maxRecentPosts     = 20
	maxRecommendations = 10
)

// Normalize maps a raw enrichment payload, whose keys vary by provider
// and response version, onto a CanonicalProfile. It is a pure
// transform: malformed or mistyped fields are skipped per-field and the
// result is always structurally complete. The clock is injected so
// years-of-experience derivation is reproducible in tests.
func Normalize(raw map[string]any, now time.Time) *CanonicalProfile {
	data := unwrapEnvelope(raw)
	p := NewCanonicalProfile()
	p.DataSource = "nyne_api"
	p.RawData = raw

	// Identity
	p.FirstName = resolveString(data, "first_name")
	p.LastName = resolveString(data, "last_name")
	p.FullName = resolveString(data, "full_name")
	if p.FullName == "" {
		p.FullName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	p.EmailVerified = resolveString(data, "email_verified")
	p.Phone = resolveString(data, "phone")
	p.ProfilePhoto = resolveString(data, "profile_photo")
	p.Headline = resolveString(data, "headline")
	p.Bio = resolveString(data, "bio")
	p.Birthday = resolveString(data, "birthday")

	// Professional
	p.Profession = resolveString(data, "profession")
	p.Company = resolveString(data, "company")
	p.CompanyDomain = resolveString(data, "company_domain")
	p.CompanySize = resolveString(data, "company_size")
	p.CompanyIndustry = resolveString(data, "company_industry")
	p.Industry = resolveString(data, "industry")
	p.Seniority = resolveString(data, "seniority")

	p.WorkHistory = normalizeWorkHistory(resolveList(data, "work_history"))
	p.YearsExperience = deriveYearsExperience(p.WorkHistory, now)

	// Location: a nested address object wins over top-level duplicates.
	if addr := asMap(data["address"]); addr != nil {
		p.City = firstString(addr, "city")
		p.State = firstString(addr, "state")
		p.Country = firstString(addr, "country")
	}
	if p.City == "" {
		p.City = resolveString(data, "city")
	}
	if p.State == "" {
		p.State = resolveString(data, "state")
	}
	if p.Country == "" {
		p.Country = resolveString(data, "country")
	}
	p.Timezone = resolveString(data, "timezone")
	p.Address = resolveString(data, "street_address")

	if loc := resolveString(data, "location"); loc != "" {
		p.LikelyLocation = loc
	} else {
		p.LikelyLocation = joinLocation(p.City, p.State, p.Country)
	}

	p.SocialProfiles = normalizeSocialProfiles(data)

	p.Education = normalizeEducation(resolveList(data, "education"))
	p.Skills = normalizeFlatStrings(resolveSkills(data), "name", "skill")
	p.Languages = normalizeFlatStrings(resolveList(data, "languages"), "name", "language")
	p.Certifications = normalizeCertifications(resolveList(data, "certifications"))
	p.Recommendations = normalizeRecommendations(resolveList(data, "recommendations"))
	p.Volunteering = normalizeVolunteering(resolveList(data, "volunteering"))
	p.Causes = normalizeFlatStrings(resolveList(data, "causes"), "name")
	p.VehicleOwnership = resolveString(data, "vehicle")

	p.TwitterFollowing = normalizeFollowing(data)
	p.PressMentions = normalizePressMentions(data)
	p.RecentPosts = normalizeRecentPosts(data)

	if score, ok := firstNumber(data, confidenceAliases...); ok {
		p.ConfidenceScore = &score
	}

	return p
}

// unwrapEnvelope merges a provider "result" envelope's keys back onto
// the top level so alias resolution sees one flat object. The envelope
// keys win over top-level duplicates.
func unwrapEnvelope(raw map[string]any) map[string]any {
	result := asMap(raw["result"])
	if result == nil {
		return raw
	}
	merged := make(map[string]any, len(raw)+len(result))
	for k, v := range raw {
		merged[k] = v
	}
	for k, v := range result {
		merged[k] = v
	}
	return merged
}

// joinLocation builds "City, State, Country" skipping empty parts.
func joinLocation(parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, ", ")
}

// deriveYearsExperience scans work-history start dates for the earliest
// leading 4-digit year and subtracts it from the current year. Returns
// nil when no start date parses; it never fails.
func deriveYearsExperience(history []WorkEntry, now time.Time) *int {
	earliest := 0
	for _, job := range history {
		start := job.StartDate
		if len(start) < 4 {
			continue
		}
		year, err := strconv.Atoi(start[:4])
		if err != nil {
			continue
		}
		if earliest == 0 || year < earliest {
			earliest = year
		}
	}
	if earliest == 0 {
		return nil
	}
	years := now.Year() - earliest
	return &years
}

func normalizeWorkHistory(entries []any) []WorkEntry {
	out := []WorkEntry{}
	for _, e := range entries {
		job := asMap(e)
		if job == nil {
			continue
		}
		endDate := firstString(job, "end_date", "end", "endDate")
		isCurrent := false
		switch v := job["is_current"].(type) {
		case bool:
			isCurrent = v
		default:
			if c, ok := job["current"].(bool); ok {
				isCurrent = c
			} else {
				isCurrent = endDate == ""
			}
		}
		out = append(out, WorkEntry{
			Company:     firstString(job, "company", "company_name", "organization"),
			Title:       firstString(job, "title", "job_title", "position"),
			Description: firstString(job, "description", "summary"),
			StartDate:   firstString(job, "start_date", "start", "startDate"),
			EndDate:     endDate,
			IsCurrent:   isCurrent,
			Location:    firstString(job, "location"),
		})
	}
	return out
}

func normalizeEducation(entries []any) []EducationEntry {
	out := []EducationEntry{}
	for _, e := range entries {
		edu := asMap(e)
		if edu == nil {
			continue
		}
		// Nyne's schools_info uses "title" for the degree and "degree"
		// for the field of study.
		out = append(out, EducationEntry{
			School:         firstString(edu, "name", "school", "institution"),
			Degree:         firstString(edu, "title", "degree", "degree_name"),
			FieldOfStudy:   firstString(edu, "degree", "field_of_study", "major", "field"),
			GraduationYear: firstString(edu, "graduation_year", "end_date", "year"),
			Description:    firstString(edu, "description"),
		})
	}
	return out
}

// resolveSkills handles the provider quirk of nesting skills under an
// "interests" object before falling back to the flat aliases.
func resolveSkills(data map[string]any) []any {
	if interests := asMap(data["interests"]); interests != nil {
		if skills, ok := interests["skills"].([]any); ok {
			return skills
		}
		return nil
	}
	return resolveList(data, "skills")
}

// normalizeFlatStrings accepts a list whose entries are either bare
// strings or objects, pulling the value from the first matching object
// key. Entries that are neither are discarded.
func normalizeFlatStrings(entries []any, objectKeys ...string) []string {
	out := []string{}
	for _, e := range entries {
		switch v := e.(type) {
		case string:
			if v != "" {
				out = append(out, v)
			}
		case map[string]any:
			if s := firstString(v, objectKeys...); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func normalizeCertifications(entries []any) []Certification {
	out := []Certification{}
	for _, e := range entries {
		switch v := e.(type) {
		case string:
			if v != "" {
				out = append(out, Certification{Name: v})
			}
		case map[string]any:
			out = append(out, Certification{
				Name:   firstString(v, "name", "title"),
				Issuer: firstString(v, "issuer", "authority"),
				Date:   firstString(v, "date", "issued_date"),
			})
		}
	}
	return out
}

func normalizeRecommendations(entries []any) []Recommendation {
	out := []Recommendation{}
	for _, e := range entries {
		if len(out) >= maxRecommendations {
			break
		}
		switch v := e.(type) {
		case string:
			out = append(out, Recommendation{Text: v})
		case map[string]any:
			out = append(out, Recommendation{
				Recommender:  firstString(v, "recommender", "name", "from"),
				Relationship: firstString(v, "relationship", "title"),
				Text:         firstString(v, "text", "recommendation", "content"),
			})
		}
	}
	return out
}

func normalizeVolunteering(entries []any) []Volunteering {
	out := []Volunteering{}
	for _, e := range entries {
		vol := asMap(e)
		if vol == nil {
			continue
		}
		out = append(out, Volunteering{
			Organization: firstString(vol, "organization", "org", "company"),
			Role:         firstString(vol, "role", "title"),
			Cause:        firstString(vol, "cause", "category"),
			Description:  firstString(vol, "description"),
		})
	}
	return out
}

func normalizeSocialProfiles(data map[string]any) SocialProfiles {
	sp := SocialProfiles{Other: []SocialLink{}}

	social := asMap(data["social_profiles"])
	if social == nil {
		social = asMap(data["socials"])
	}

	resolve := func(platform string) string {
		if social != nil {
			if url := firstString(social, platform, platform+"_url"); url != "" {
				return url
			}
		}
		// Some responses flatten social URLs onto the top level.
		return firstString(data, platform+"_url", platform)
	}

	sp.LinkedIn = resolve("linkedin")
	sp.Twitter = resolve("twitter")
	sp.GitHub = resolve("github")
	sp.Facebook = resolve("facebook")
	sp.Instagram = resolve("instagram")
	sp.Strava = resolve("strava")
	sp.Pinterest = resolve("pinterest")
	sp.Flickr = resolve("flickr")

	for _, platform := range otherPlatforms {
		if url, ok := data[platform].(string); ok && url != "" {
			sp.Other = append(sp.Other, SocialLink{Platform: platform, URL: url})
		}
	}

	return sp
}

func normalizeFollowing(data map[string]any) []FollowedAccount {
	interactions := asMap(data["social_interactions"])
	if interactions == nil {
		return []FollowedAccount{}
	}
	var entries []any
	if list, ok := interactions["following"].([]any); ok {
		entries = list
	} else if list, ok := interactions["twitter_following"].([]any); ok {
		entries = list
	}

	out := []FollowedAccount{}
	for _, e := range entries {
		if len(out) >= maxFollowing {
			break
		}
		account := asMap(e)
		if account == nil {
			continue
		}
		out = append(out, FollowedAccount{
			Name:      firstString(account, "name", "screen_name"),
			Handle:    firstString(account, "handle", "screen_name", "username"),
			Bio:       firstString(account, "bio", "description"),
			Followers: intValue(account, "followers", "follower_count"),
			Category:  firstString(account, "category"),
		})
	}
	return out
}

func normalizePressMentions(data map[string]any) []PressMention {
	press := asMap(data["press_mentions"])
	if press == nil {
		return []PressMention{}
	}
	var entries []any
	if list, ok := press["articles"].([]any); ok {
		entries = list
	} else if list, ok := press["results"].([]any); ok {
		entries = list
	}

	out := []PressMention{}
	for _, e := range entries {
		if len(out) >= maxPressMentions {
			break
		}
		article := asMap(e)
		if article == nil {
			continue
		}
		out = append(out, PressMention{
			Title:   firstString(article, "title", "headline"),
			Source:  firstString(article, "source", "publisher", "domain"),
			URL:     firstString(article, "url", "link"),
			Date:    firstString(article, "date", "published_date", "timestamp"),
			Snippet: firstString(article, "snippet", "excerpt", "description"),
		})
	}
	return out
}

func normalizeRecentPosts(data map[string]any) []SocialPost {
	entries := resolveList(data, "newsfeed")

	out := []SocialPost{}
	for _, e := range entries {
		if len(out) >= maxRecentPosts {
			break
		}
		switch v := e.(type) {
		case string:
			if v != "" {
				out = append(out, SocialPost{Content: v, Platform: "unknown"})
			}
		case map[string]any:
			platform := firstString(v, "platform", "source")
			if platform == "" {
				platform = "linkedin"
			}
			out = append(out, SocialPost{
				Platform:   platform,
				Content:    firstString(v, "content", "text", "body"),
				URL:        firstString(v, "url", "link"),
				Date:       firstString(v, "date_posted", "date", "timestamp", "created_at"),
				Engagement: intValue(v, "likes", "engagement"),
			})
		}
	}
	return out
}

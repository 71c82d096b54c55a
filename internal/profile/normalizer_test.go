package profile

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestNormalizeEmptyPayloadIsComplete(t *testing.T) {
	p := Normalize(map[string]any{}, testNow)

	if p == nil {
		t.Fatal("nil profile")
	}
	if p.DataSource != "nyne_api" {
		t.Errorf("data source = %q", p.DataSource)
	}
	if p.WorkHistory == nil || p.Skills == nil || p.RecentPosts == nil || p.Causes == nil {
		t.Error("list fields must be empty slices, not nil")
	}
	if p.YearsExperience != nil {
		t.Errorf("years experience = %v, want nil", *p.YearsExperience)
	}
	if p.FullName != "" {
		t.Errorf("full name = %q, want empty", p.FullName)
	}
}

func TestNormalizeAliasChains(t *testing.T) {
	raw := map[string]any{
		"firstname": "Ada",
		"lastName":  "Lovelace",
		"summary":   "Mathematician and programmer",
		"job_title": "Staff Engineer",
		"sector":    "Technology",
	}

	p := Normalize(raw, testNow)

	if p.FirstName != "Ada" || p.LastName != "Lovelace" {
		t.Errorf("name = %q %q", p.FirstName, p.LastName)
	}
	if p.FullName != "Ada Lovelace" {
		t.Errorf("full name = %q", p.FullName)
	}
	if p.Bio != "Mathematician and programmer" {
		t.Errorf("bio = %q", p.Bio)
	}
	if p.Profession != "Staff Engineer" {
		t.Errorf("profession = %q", p.Profession)
	}
	if p.Industry != "Technology" {
		t.Errorf("industry = %q", p.Industry)
	}
}

func TestNormalizeEnvelopeWinsOverTopLevel(t *testing.T) {
	raw := map[string]any{
		"city": "Oakland",
		"result": map[string]any{
			"city":      "San Francisco",
			"firstname": "Ada",
		},
	}

	p := Normalize(raw, testNow)

	if p.City != "San Francisco" {
		t.Errorf("city = %q, want envelope value", p.City)
	}
	if p.FirstName != "Ada" {
		t.Errorf("first name = %q", p.FirstName)
	}
}

func TestNormalizeAddressObjectPreferred(t *testing.T) {
	raw := map[string]any{
		"city": "Oakland",
		"address": map[string]any{
			"city":    "San Francisco",
			"state":   "CA",
			"country": "US",
		},
	}

	p := Normalize(raw, testNow)

	if p.City != "San Francisco" || p.State != "CA" || p.Country != "US" {
		t.Errorf("location = %q/%q/%q", p.City, p.State, p.Country)
	}
	if p.LikelyLocation != "San Francisco, CA, US" {
		t.Errorf("likely location = %q", p.LikelyLocation)
	}
}

func TestNormalizeWorkHistoryAndExperience(t *testing.T) {
	raw := map[string]any{
		"positions_info": []any{
			map[string]any{
				"company_name": "Analytical Engines",
				"position":     "Engineer",
				"start_date":   "2016-03",
				"end_date":     "",
			},
			map[string]any{
				"company":    "Babbage & Co",
				"title":      "Junior Engineer",
				"start_date": "2012-01",
				"end_date":   "2016-02",
				"is_current": false,
			},
		},
	}

	p := Normalize(raw, testNow)

	if len(p.WorkHistory) != 2 {
		t.Fatalf("work history len = %d", len(p.WorkHistory))
	}
	if !p.WorkHistory[0].IsCurrent {
		t.Error("open-ended job should be current")
	}
	if p.WorkHistory[1].IsCurrent {
		t.Error("explicit is_current=false ignored")
	}
	if p.YearsExperience == nil || *p.YearsExperience != 14 {
		t.Errorf("years experience = %v, want 14 against pinned clock", p.YearsExperience)
	}
}

func TestNormalizeEducationFieldSwap(t *testing.T) {
	raw := map[string]any{
		"schools_info": []any{
			map[string]any{
				"name":   "UC Berkeley",
				"title":  "BS",
				"degree": "Computer Science",
			},
		},
	}

	p := Normalize(raw, testNow)

	if len(p.Education) != 1 {
		t.Fatalf("education len = %d", len(p.Education))
	}
	edu := p.Education[0]
	if edu.School != "UC Berkeley" || edu.Degree != "BS" || edu.FieldOfStudy != "Computer Science" {
		t.Errorf("education = %+v", edu)
	}
}

func TestNormalizeSkillsNestedUnderInterests(t *testing.T) {
	raw := map[string]any{
		"interests": map[string]any{
			"skills": []any{"Go", map[string]any{"name": "Distributed Systems"}},
		},
	}

	p := Normalize(raw, testNow)

	if len(p.Skills) != 2 || p.Skills[0] != "Go" || p.Skills[1] != "Distributed Systems" {
		t.Errorf("skills = %v", p.Skills)
	}
}

func TestNormalizeRecentPostsMixedShapes(t *testing.T) {
	raw := map[string]any{
		"newsfeed": []any{
			"just a bare string post",
			map[string]any{"content": "structured post", "platform": "twitter"},
			map[string]any{"text": "platform defaults"},
		},
	}

	p := Normalize(raw, testNow)

	if len(p.RecentPosts) != 3 {
		t.Fatalf("posts len = %d", len(p.RecentPosts))
	}
	if p.RecentPosts[0].Platform != "unknown" {
		t.Errorf("bare string platform = %q", p.RecentPosts[0].Platform)
	}
	if p.RecentPosts[1].Platform != "twitter" {
		t.Errorf("platform = %q", p.RecentPosts[1].Platform)
	}
	if p.RecentPosts[2].Platform != "linkedin" {
		t.Errorf("default platform = %q", p.RecentPosts[2].Platform)
	}
}

func TestNormalizeFollowingCapped(t *testing.T) {
	following := make([]any, 0, maxFollowing+20)
	for i := 0; i < maxFollowing+20; i++ {
		following = append(following, map[string]any{"name": "acct"})
	}
	raw := map[string]any{
		"social_interactions": map[string]any{"following": following},
	}

	p := Normalize(raw, testNow)

	if len(p.TwitterFollowing) != maxFollowing {
		t.Errorf("following len = %d, want %d", len(p.TwitterFollowing), maxFollowing)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := map[string]any{
		"firstname": "Ada",
		"job_title": "Engineer",
		"positions_info": []any{
			map[string]any{"company": "X", "start_date": "2020-01", "end_date": ""},
		},
	}

	a := Normalize(raw, testNow)
	b := Normalize(raw, testNow)

	if a.FullName != b.FullName || *a.YearsExperience != *b.YearsExperience {
		t.Error("normalization is not reproducible for the same input and clock")
	}
}

package profile

import (
	"reflect"
	"testing"
)

func TestInferInterestsFromProfession(t *testing.T) {
	p := NewCanonicalProfile()
	p.Profession = "Software Engineer"

	got := InferInterests(p)

	want := []string{"ai_policy", "technology"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("interests = %v, want %v", got, want)
	}
}

func TestInferInterestsEmptyProfileGetsDefaults(t *testing.T) {
	got := InferInterests(NewCanonicalProfile())

	if !reflect.DeepEqual(got, DefaultInterests) {
		t.Errorf("interests = %v, want defaults %v", got, DefaultInterests)
	}
}

func TestInferInterestsUnionsAcrossScopes(t *testing.T) {
	p := NewCanonicalProfile()
	p.Profession = "Teacher"
	p.RecentPosts = []SocialPost{{Content: "New bike lanes on Valencia are great"}}
	p.Causes = []string{"Climate Action"}
	p.Skills = []string{"Urban Planning"}

	got := InferInterests(p)

	for _, want := range []string{"education", "families", "transportation", "environment", "zoning"} {
		found := false
		for _, tag := range got {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing tag %q in %v", want, got)
		}
	}
}

func TestInferInterestsSortedAndDeduplicated(t *testing.T) {
	p := NewCanonicalProfile()
	// Both trigger the housing-related rules.
	p.Profession = "Real Estate Broker"
	p.Bio = "I work in property and rent markets"

	got := InferInterests(p)

	seen := map[string]bool{}
	for i, tag := range got {
		if seen[tag] {
			t.Errorf("duplicate tag %q", tag)
		}
		seen[tag] = true
		if i > 0 && got[i-1] > tag {
			t.Errorf("tags not sorted at %d: %v", i, got)
		}
	}
}

func TestFuseInsightsMergesTags(t *testing.T) {
	p := NewCanonicalProfile()
	p.Interests = []string{"housing"}

	FuseInsights(p, &Insights{
		PrimaryInterests:   []string{"Transit", "housing"},
		SecondaryInterests: []string{"parks"},
		EngagementLevel:    "high",
	})

	want := []string{"housing", "parks", "transit"}
	if !reflect.DeepEqual(p.Interests, want) {
		t.Errorf("interests = %v, want %v", p.Interests, want)
	}
	if p.Insights == nil || p.Insights.EngagementLevel != "high" {
		t.Error("insights not attached")
	}
}

func TestFuseInsightsNilLeavesProfileAlone(t *testing.T) {
	p := NewCanonicalProfile()
	p.Interests = []string{"housing"}

	FuseInsights(p, nil)

	if len(p.Interests) != 1 || p.Interests[0] != "housing" {
		t.Errorf("interests = %v", p.Interests)
	}
	if p.Insights != nil {
		t.Error("insights attached from nil")
	}
}

func TestFollowupQuestionsCapAndPersonalization(t *testing.T) {
	p := NewCanonicalProfile()
	questions := FollowupQuestions(p)

	if len(questions) > maxFollowupQuestions {
		t.Errorf("questions = %d, cap is %d", len(questions), maxFollowupQuestions)
	}
	if questions[0] != "What is your profession or industry?" {
		t.Errorf("missing profession question, got %q first", questions[0])
	}

	p.Profession = "Engineer"
	questions = FollowupQuestions(p)
	if questions[0] == "What is your profession or industry?" {
		t.Error("profession question asked despite known profession")
	}
}

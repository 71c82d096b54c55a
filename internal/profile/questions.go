package profile

// maxFollowupQuestions bounds the onboarding question list for UX.
const maxFollowupQuestions = 4

// FollowupQuestions generates personalized questions for the data the
// enrichment could not infer, plus the household attributes that drive
// derived-interest matching.
func FollowupQuestions(p *CanonicalProfile) []string {
	questions := []string{}

	if p.Profession == "" {
		questions = append(questions, "What is your profession or industry?")
	}

	// Always asked: these feed the derived-interest expansion.
	questions = append(questions,
		"Do you own a car? (Affects parking/transit policy relevance)",
		"Do you rent or own your home? (Affects housing policy relevance)",
		"Do you have children under 18? (Affects education/family policy relevance)",
	)

	for _, tag := range p.Interests {
		if tag == "technology" {
			questions = append(questions, "Are you interested in AI regulation and oversight?")
			break
		}
	}

	questions = append(questions, "What's your zip code? (To show hyper-local issues)")

	if len(questions) > maxFollowupQuestions {
		questions = questions[:maxFollowupQuestions]
	}
	return questions
}

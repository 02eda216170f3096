package fallback

// Policy holds the scoring constants of the deterministic generator.
// These were tuned by inspection; they are configurable policy, not fixed
// behavior.
type Policy struct {
	BaseScores     map[string]float64
	LengthBonusMax float64
	ConfidenceMin  float64
	ConfidenceMax  float64
	WordsPerPage   int
	FallbackModel  string
}

// DefaultPolicy returns the shipped tuning.
func DefaultPolicy() Policy {
	return Policy{
		BaseScores: map[string]float64{
			ReviewCompliance:  78,
			ReviewRisk:        72,
			ReviewPerspective: 75,
			ReviewSummary:     74,
		},
		LengthBonusMax: 4,
		ConfidenceMin:  0.75,
		ConfidenceMax:  0.82,
		WordsPerPage:   360,
		FallbackModel:  "deterministic-fallback-v1",
	}
}

// score computes base-per-review-type plus a small bonus for longer
// documents, capped at 100.
func (p Policy) score(reviewType string, wordCount int) float64 {
	base, ok := p.BaseScores[reviewType]
	if !ok {
		base = p.BaseScores[ReviewSummary]
	}
	score := base + p.lengthBonus(wordCount)
	if score > 100 {
		score = 100
	}
	return score
}

func (p Policy) lengthBonus(wordCount int) float64 {
	bonus := float64(wordCount) / 1500.0
	if bonus > p.LengthBonusMax {
		bonus = p.LengthBonusMax
	}
	return bonus
}

// confidence is bounded to [ConfidenceMin, ConfidenceMax], scaling with
// document length the same way the score bonus does.
func (p Policy) confidence(wordCount int) float64 {
	span := p.ConfidenceMax - p.ConfidenceMin
	conf := p.ConfidenceMin + span*(p.lengthBonus(wordCount)/p.LengthBonusMax)
	if conf > p.ConfidenceMax {
		conf = p.ConfidenceMax
	}
	if conf < p.ConfidenceMin {
		conf = p.ConfidenceMin
	}
	return conf
}

// Package dharma scores an emotional self-assessment and picks the guiding
// principle for a decision.
package dharma

import (
	"math"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

type Principle string

const (
	Dharma   Principle = "Dharma"
	Vairagya Principle = "Vairagya"
	Abhyasa  Principle = "Abhyasa"
)

type ClarityBand string

const (
	BandClear   ClarityBand = "clear"
	BandMixed   ClarityBand = "mixed"
	BandClouded ClarityBand = "clouded"
)

// Scores are on a 1-5 scale.
const (
	minScore     = 1
	maxScore     = 5
	triggerScore = 4
)

type Assessment struct {
	Stress       int `json:"stress"`
	Reactivity   int `json:"reactivity"`
	Overthinking int `json:"overthinking"`
}

// Card is the outcome shown to the user.
type Card struct {
	Principle    Principle   `json:"principle"`
	Teaching     string      `json:"teaching"`
	Practice     string      `json:"practice"`
	Reflection   string      `json:"reflection_prompt"`
	Breathing    string      `json:"breathing_prompt"`
	ClarityScore int         `json:"clarity_score"`
	ClarityBand  ClarityBand `json:"clarity_band"`
}

var teachings = map[Principle]struct{ teaching, practice, reflection, breathing string }{
	Dharma: {
		teaching:   "Act from your duty and values rather than from the noise of the mind.",
		practice:   "Write the decision in one line and ask which option fits the person you want to be.",
		reflection: "If nobody ever knew what you chose, which option would still feel right?",
		breathing:  "Breathe in for four counts, out for six, five times, with a hand on your chest.",
	},
	Vairagya: {
		teaching:   "Step back from the pull of the moment; decide once the wave has passed.",
		practice:   "Pause for ten slow breaths and postpone the decision until after your next rest.",
		reflection: "What are you holding on to here, and what would change if you let it go?",
		breathing:  "Box breathing: in for four, hold for four, out for four, hold for four. Repeat four rounds.",
	},
	Abhyasa: {
		teaching:   "Steady practice builds clarity; keep showing up with small consistent steps.",
		practice:   "Pick the smallest next action and schedule it in your strongest phase today.",
		reflection: "Which small habit, repeated this week, would make this decision easier next time?",
		breathing:  "Alternate nostril breathing for two minutes, slow and even.",
	},
}

// Assess validates the scores and builds the card.
func Assess(a Assessment) (Card, error) {
	for _, f := range []struct {
		name  string
		value int
	}{{"stress", a.Stress}, {"reactivity", a.Reactivity}, {"overthinking", a.Overthinking}} {
		if f.value < minScore || f.value > maxScore {
			return Card{}, domain.InvalidInputf("%s must be between %d and %d, got %d", f.name, minScore, maxScore, f.value)
		}
	}

	p := Abhyasa
	switch {
	case a.Stress >= triggerScore || a.Reactivity >= triggerScore:
		p = Vairagya
	case a.Overthinking >= triggerScore:
		p = Dharma
	}

	score := ClarityScore(a)
	t := teachings[p]
	return Card{
		Principle:    p,
		Teaching:     t.teaching,
		Practice:     t.practice,
		Reflection:   t.reflection,
		Breathing:    t.breathing,
		ClarityScore: score,
		ClarityBand:  band(score),
	}, nil
}

// ClarityScore maps the summed scores onto 0-100, higher is clearer.
func ClarityScore(a Assessment) int {
	sum := a.Stress + a.Reactivity + a.Overthinking
	return int(math.Round(100 - float64(sum)/15*100))
}

func band(score int) ClarityBand {
	switch {
	case score >= 70:
		return BandClear
	case score >= 40:
		return BandMixed
	default:
		return BandClouded
	}
}

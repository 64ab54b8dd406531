// Package quality scores generated outreach messages without extra
// model calls. The heuristic scorer is cheap enough to run on every
// message and feeds the quality gate in the personalization pipeline.
package quality

import (
	"regexp"
	"strings"

	"github.com/Egham-7/llm-router/internal/models"
)

// MinimumScore is the quality gate threshold. Messages scoring below
// it trigger a higher-quality retry before falling back to templates.
const MinimumScore = 0.75

// Scorer assesses a message for a given prospect. Scores are in [0, 1].
type Scorer interface {
	Score(message string, prospect models.ProspectData) float64
}

var spamWords = []string{"guaranteed", "free money", "100%", "!!!", "urgent"}

var terminalPunctuation = regexp.MustCompile(`[.!?]$`)

// HeuristicScorer rates messages from a 0.7 baseline, rewarding
// personalization signals and penalizing length and spam markers.
type HeuristicScorer struct{}

func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

func (h *HeuristicScorer) Score(message string, prospect models.ProspectData) float64 {
	score := 0.7

	if prospect.FirstName != "" && strings.Contains(message, prospect.FirstName) {
		score += 0.1
	}
	if prospect.Company != "" && strings.Contains(message, prospect.Company) {
		score += 0.1
	}
	if prospect.Industry != "" && strings.Contains(message, prospect.Industry) {
		score += 0.05
	}

	if len(message) < 50 {
		score -= 0.2
	}
	if len(message) > 300 {
		score -= 0.1
	}

	lower := strings.ToLower(message)
	for _, word := range spamWords {
		if strings.Contains(lower, word) {
			score -= 0.3
			break
		}
	}

	if strings.Contains(message, "Hi ") || strings.Contains(message, "Hello ") {
		score += 0.05
	}
	if terminalPunctuation.MatchString(strings.TrimSpace(message)) {
		score += 0.05
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

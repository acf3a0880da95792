package release

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ConfidenceFor maps a similarity score to a confidence level.
func ConfidenceFor(score float64) MatchConfidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Similarity compares two titles after CleanTitle normalization.
// Jaro-Winkler favors shared prefixes, which suits "Title.Year.Tags" names;
// sequence numbers then nudge the score so "Movie 2" and "Movie 3" drift apart.
func Similarity(a, b string) float64 {
	na, nb := CleanTitle(a), CleanTitle(b)
	if na == "" || nb == "" {
		return 0
	}
	score := float64(edlib.JaroWinklerSimilarity(na, nb))
	return adjustScoreForNumbers(score, extractNumbers(na), extractNumbers(nb))
}

// extractNumbers returns all numeric sequences from a normalized title.
func extractNumbers(title string) []string {
	return numberRegex.FindAllString(title, -1)
}

// adjustScoreForNumbers rewards shared sequence numbers and penalizes
// mismatched or missing ones. Titles without numbers are left alone.
func adjustScoreForNumbers(score float64, aNums, bNums []string) float64 {
	if len(aNums) == 0 && len(bNums) == 0 {
		return score
	}
	if len(aNums) == 0 || len(bNums) == 0 {
		return score * 0.85
	}

	set := make(map[string]bool, len(aNums))
	for _, n := range aNums {
		set[n] = true
	}
	for _, n := range bNums {
		if set[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

package dedupe

import (
	"sort"

	"github.com/vmunix/mkvcat/pkg/release"
)

// Pair is two distinct catalog entries whose titles look alike.
type Pair struct {
	A, B       release.Record
	Score      float64
	Confidence release.MatchConfidence
}

// Similar reports pairs of records whose titles score at or above threshold
// but did not share a dedup key. It is advisory: nothing is moved between
// partitions. Pairs are ordered by descending score.
func Similar(records []release.Record, threshold float64) []Pair {
	if threshold <= 0 {
		return nil
	}

	var pairs []Pair
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			a, b := records[i], records[j]
			// Episodes of one show share a title by construction.
			if a.HasEpisode() || b.HasEpisode() {
				continue
			}
			score := release.Similarity(a.Title, b.Title)
			if score < threshold {
				continue
			}
			pairs = append(pairs, Pair{
				A:          a,
				B:          b,
				Score:      score,
				Confidence: release.ConfidenceFor(score),
			})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Score > pairs[j].Score })
	return pairs
}

package analyzer

import (
	"sort"
	"strings"

	"github.com/safetruck/fleetsight/internal/models"
)

// Filter returns the valid trips for one period, optionally narrowed by
// case-insensitive substring match on the start/end location keys. Empty
// or whitespace-only search text matches everything.
func Filter(trips []models.Trip, period models.Period, startText, endText string) []models.Trip {
	startText = strings.ToLower(strings.TrimSpace(startText))
	endText = strings.ToLower(strings.TrimSpace(endText))

	var filtered []models.Trip
	for _, t := range trips {
		if !IsValid(t) {
			continue
		}
		if t.Period != period {
			continue
		}
		if startText != "" && !strings.Contains(strings.ToLower(t.StartKey), startText) {
			continue
		}
		if endText != "" && !strings.Contains(strings.ToLower(t.EndKey), endText) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// Query is the entry surface for the presentation layer: validity and
// period filtering, optional location search, reliability scores
// attached, ordered by score descending with most-recent start time
// breaking ties. The input slice is left untouched.
func Query(trips []models.Trip, period models.Period, startText, endText string) []models.Trip {
	rows := Filter(ScoreAll(trips), period, startText, endText)

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ReliabilityScore != rows[j].ReliabilityScore {
			return rows[i].ReliabilityScore > rows[j].ReliabilityScore
		}
		ti, iok := rows[i].StartedAt()
		tj, jok := rows[j].StartedAt()
		if iok != jok {
			return iok // unparseable timestamps sort last
		}
		if !iok {
			return false
		}
		return ti.After(tj)
	})
	return rows
}

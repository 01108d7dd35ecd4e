// Package analyzer is the data-quality and scoring core: it classifies
// trips into Day/Night periods, rejects physically implausible records,
// computes per-vehicle reliability scores and ranks vehicles for a given
// period. Every function in the package is pure and total: bad input is
// rejected or defaulted, never raised as an error.
package analyzer

import (
	"github.com/safetruck/fleetsight/internal/models"
)

// ClassifyPeriod maps a trip start timestamp to its Day/Night bucket.
// Day is the half-open interval [06:00, 18:00) in local wall-clock time.
// Unparseable timestamps classify as Day; the anomaly is the caller's to
// log, not an error.
func ClassifyPeriod(timestamp string) models.Period {
	ts, ok := models.ParseTimestamp(timestamp)
	if !ok {
		return models.PeriodDay
	}

	hour := ts.Hour()
	if hour >= models.DayStartHour && hour < models.DayEndHour {
		return models.PeriodDay
	}
	return models.PeriodNight
}

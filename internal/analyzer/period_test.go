package analyzer

import (
	"testing"

	"github.com/safetruck/fleetsight/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPeriod(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		want      models.Period
	}{
		{"morning", "2024-03-15 09:30:00", models.PeriodDay},
		{"day start boundary", "2024-03-15 06:00:00", models.PeriodDay},
		{"just before day start", "2024-03-15 05:59:59", models.PeriodNight},
		{"just before day end", "2024-03-15 17:59:59", models.PeriodDay},
		{"day end boundary", "2024-03-15 18:00:00", models.PeriodNight},
		{"midnight", "2024-03-15 00:00:00", models.PeriodNight},
		{"late evening", "2024-03-15 22:45:10", models.PeriodNight},
		{"rfc3339 input", "2024-03-15T07:00:00Z", models.PeriodDay},
		{"date only", "2024-03-15", models.PeriodNight},
		{"garbage defaults to day", "not a timestamp", models.PeriodDay},
		{"empty defaults to day", "", models.PeriodDay},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyPeriod(tc.timestamp))
		})
	}
}

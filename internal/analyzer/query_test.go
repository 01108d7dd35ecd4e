package analyzer

import (
	"testing"

	"github.com/safetruck/fleetsight/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFilter_PeriodAndValidity(t *testing.T) {
	day := validTrip()

	night := validTrip()
	night.StartTime = "2024-03-15 22:00:00"
	night.EndTime = "2024-03-16 00:00:00"
	night.Period = models.PeriodNight

	junk := validTrip()
	junk.DistanceKm = 0

	trips := []models.Trip{day, night, junk}

	assert.Len(t, Filter(trips, models.PeriodDay, "", ""), 1)
	assert.Len(t, Filter(trips, models.PeriodNight, "", ""), 1)
}

func TestFilter_LocationSearch(t *testing.T) {
	klang := validTrip() // Port Klang -> Kuantan

	penang := validTrip()
	penang.StartKey = "Penang Port"
	penang.EndKey = "Ipoh"

	trips := []models.Trip{klang, penang}

	tests := []struct {
		name      string
		startText string
		endText   string
		want      int
	}{
		{"empty matches all", "", "", 2},
		{"whitespace only matches all", "   ", "\t", 2},
		{"case-insensitive start substring", "port", "", 2},
		{"start narrows to one", "klang", "", 1},
		{"end narrows to one", "", "KUANTAN", 1},
		{"start and end combined", "penang", "ipoh", 1},
		{"no match", "johor", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Filter(trips, models.PeriodDay, tt.startText, tt.endText), tt.want)
		})
	}
}

func TestQuery_SortsByScoreThenRecency(t *testing.T) {
	// strong has five consistent trips, weak has one mediocre trip, so
	// strong's reliability score is higher
	var trips []models.Trip
	for i := 0; i < 5; i++ {
		trips = append(trips, tripFor("TRK-STRONG", 5, 2))
	}

	weak := tripFor("TRK-WEAK", 2.5, 2)
	trips = append(trips, weak)

	// same vehicle, two trips: the later start comes first on the tie
	early := tripFor("TRK-STRONG", 5, 2)
	early.StartTime = "2024-03-10 08:00:00"
	later := tripFor("TRK-STRONG", 5, 2)
	later.StartTime = "2024-03-20 08:00:00"
	trips = append(trips, early, later)

	rows := Query(trips, models.PeriodDay, "", "")

	assert.Len(t, rows, 8)
	assert.Equal(t, "TRK-WEAK", rows[len(rows)-1].VehicleID)

	assert.Equal(t, "2024-03-20 08:00:00", rows[0].StartTime)
	assert.Greater(t, rows[0].ReliabilityScore, rows[len(rows)-1].ReliabilityScore)
}

func TestQuery_AttachesScoresWithoutMutatingInput(t *testing.T) {
	input := []models.Trip{validTrip()}

	rows := Query(input, models.PeriodDay, "", "")

	assert.Len(t, rows, 1)
	assert.Equal(t, 8.0, rows[0].ReliabilityScore)
	assert.Equal(t, 0.0, input[0].ReliabilityScore)
}

func TestQuery_UnparseableTimestampsSortLast(t *testing.T) {
	good := validTrip()
	bad := validTrip()
	bad.StartTime = "not a timestamp"
	bad.Period = models.PeriodDay // unparseable start defaults to day

	rows := Query([]models.Trip{bad, good}, models.PeriodDay, "", "")

	assert.Len(t, rows, 2)
	assert.Equal(t, "2024-03-15 09:30:00", rows[0].StartTime)
	assert.Equal(t, "not a timestamp", rows[1].StartTime)
}

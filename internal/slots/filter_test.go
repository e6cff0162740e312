package slots

import (
	"facilitybooking/internal/entities"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func slot(id string, start time.Time, minutes float64, spots int) entities.TimeSlot {
	return entities.TimeSlot{
		ID:             id,
		FacilityID:     "f1",
		StartTime:      start,
		EndTime:        start.Add(time.Duration(minutes * float64(time.Minute))),
		Capacity:       10,
		AvailableSpots: spots,
		Price:          20,
		IsAvailable:    true,
	}
}

func TestFilter_RetainsSlotMeetingAllConstraints(t *testing.T) {
	in := []entities.TimeSlot{slot("a", base, 90, 3)}

	out, err := Filter(in, 60, 2)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestFilter_DropsUnusableSlots(t *testing.T) {
	unavailable := slot("unavailable", base, 120, 5)
	unavailable.IsAvailable = false
	blocked := slot("blocked", base, 120, 5)
	blocked.IsBlocked = true
	blocked.BlockReason = "maintenance"
	tooShort := slot("short", base, 59.99, 5)
	tooFew := slot("few", base, 120, 1)
	exact := slot("exact", base, 60, 2)

	out, err := Filter([]entities.TimeSlot{unavailable, blocked, tooShort, tooFew, exact}, 60, 2)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "exact", out[0].ID)
}

func TestFilter_FractionalDurationIsNotRounded(t *testing.T) {
	// 60.5 minutes satisfies a 60 minute request, 59.5 does not.
	out, err := Filter([]entities.TimeSlot{
		slot("over", base, 60.5, 4),
		slot("under", base.Add(time.Hour), 59.5, 4),
	}, 60, 1)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "over", out[0].ID)
}

func TestFilter_FractionalMinimum(t *testing.T) {
	in := []entities.TimeSlot{
		slot("ninety", base, 90, 4),
		slot("ninety-and-a-half", base.Add(2*time.Hour), 90.5, 4),
		slot("ninety-one", base.Add(4*time.Hour), 91, 4),
	}

	out, err := Filter(in, 90.5, 1)

	require.NoError(t, err)
	ids := make([]string, 0, len(out))
	for _, s := range out {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"ninety-and-a-half", "ninety-one"}, ids)
}

func TestFilter_EmptyInput(t *testing.T) {
	out, err := Filter(nil, 30, 1)

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFilter_RejectsInvalidRequirements(t *testing.T) {
	tests := []struct {
		name         string
		duration     float64
		participants int
		wantErr      error
	}{
		{"zero duration", 0, 1, entities.ErrInvalidDuration},
		{"negative duration", -30, 1, entities.ErrInvalidDuration},
		{"zero participants", 30, 0, entities.ErrInvalidParticipants},
		{"negative participants", 30, -2, entities.ErrInvalidParticipants},
		{"not a number", math.NaN(), 1, entities.ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Filter([]entities.TimeSlot{slot("a", base, 60, 5)}, tt.duration, tt.participants)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, out)
		})
	}
}

func TestFilter_SubsetAndIdempotent(t *testing.T) {
	var in []entities.TimeSlot
	for i := 0; i < 24; i++ {
		s := slot(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour), float64(15*(i%8+1)), i%6)
		s.IsAvailable = i%5 != 0
		s.IsBlocked = i%7 == 0
		in = append(in, s)
	}

	for _, req := range [][2]int{{15, 1}, {30, 2}, {60, 3}, {120, 5}} {
		once, err := Filter(in, float64(req[0]), req[1])
		require.NoError(t, err)

		for _, s := range once {
			assert.Contains(t, in, s)
			assert.True(t, s.IsAvailable)
			assert.False(t, s.IsBlocked)
			assert.GreaterOrEqual(t, s.AvailableSpots, req[1])
			assert.GreaterOrEqual(t, s.DurationMinutes(), float64(req[0]))
		}

		twice, err := Filter(once, float64(req[0]), req[1])
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestSortByStart(t *testing.T) {
	in := []entities.TimeSlot{
		slot("late", base.Add(2*time.Hour), 60, 5),
		slot("early", base, 60, 5),
		slot("mid", base.Add(time.Hour), 60, 5),
	}

	out := SortByStart(in)

	assert.Equal(t, []string{"early", "mid", "late"}, ids(out))
	assert.Equal(t, "late", in[0].ID, "input must not be reordered")
}

func TestCandidateEnd_IgnoresSlotEnd(t *testing.T) {
	start := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	s := slot("evening", start, 180, 5)

	assert.Equal(t, time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC), CandidateEnd(s, 60))
}

func TestFlatten(t *testing.T) {
	days := []entities.DayAvailability{
		{Date: "2024-01-01", Slots: []entities.TimeSlot{slot("a", base, 60, 1)}},
		{Date: "2024-01-02"},
		{Date: "2024-01-03", Slots: []entities.TimeSlot{slot("b", base, 60, 1), slot("c", base, 60, 1)}},
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(Flatten(days)))
}

func ids(in []entities.TimeSlot) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.ID)
	}
	return out
}

package slots

import (
	"facilitybooking/internal/entities"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		slot        entities.TimeSlot
		want        Status
		utilization float64
	}{
		{
			name:        "fully free",
			slot:        entities.TimeSlot{Capacity: 10, AvailableSpots: 10, IsAvailable: true},
			want:        StatusAvailable,
			utilization: 0,
		},
		{
			name:        "limited below thirty percent",
			slot:        entities.TimeSlot{Capacity: 10, AvailableSpots: 2, IsAvailable: true},
			want:        StatusLimited,
			utilization: 80,
		},
		{
			name:        "exactly thirty percent is available",
			slot:        entities.TimeSlot{Capacity: 10, AvailableSpots: 3, IsAvailable: true},
			want:        StatusAvailable,
			utilization: 70,
		},
		{
			name:        "full",
			slot:        entities.TimeSlot{Capacity: 10, AvailableSpots: 0, IsAvailable: true},
			want:        StatusFull,
			utilization: 100,
		},
		{
			name:        "unavailable wins over full",
			slot:        entities.TimeSlot{Capacity: 10, AvailableSpots: 0},
			want:        StatusUnavailable,
			utilization: 100,
		},
		{
			name:        "blocked wins over full",
			slot:        entities.TimeSlot{Capacity: 10, AvailableSpots: 0, IsAvailable: true, IsBlocked: true},
			want:        StatusBlocked,
			utilization: 100,
		},
		{
			name:        "blocked wins over unavailable",
			slot:        entities.TimeSlot{Capacity: 10, AvailableSpots: 5, IsBlocked: true},
			want:        StatusBlocked,
			utilization: 50,
		},
		{
			name:        "zero capacity",
			slot:        entities.TimeSlot{Capacity: 0, AvailableSpots: 0, IsAvailable: true},
			want:        StatusFull,
			utilization: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.slot))
			assert.InDelta(t, tt.utilization, Utilization(tt.slot), 1e-9)
		})
	}
}

func TestUtilization_AlwaysInRange(t *testing.T) {
	for capacity := 0; capacity <= 12; capacity++ {
		for spots := -2; spots <= capacity+2; spots++ {
			u := Utilization(entities.TimeSlot{Capacity: capacity, AvailableSpots: spots})
			assert.False(t, math.IsNaN(u))
			assert.GreaterOrEqual(t, u, 0.0)
			assert.LessOrEqual(t, u, 100.0)
		}
	}
}

func TestDescribe(t *testing.T) {
	views := Describe([]entities.TimeSlot{
		{ID: "a", Capacity: 4, AvailableSpots: 1, IsAvailable: true},
		{ID: "b", Capacity: 4, AvailableSpots: 4, IsAvailable: true, IsBlocked: true},
	})

	assert.Len(t, views, 2)
	assert.Equal(t, StatusLimited, views[0].Status)
	assert.InDelta(t, 75.0, views[0].Utilization, 1e-9)
	assert.Equal(t, StatusBlocked, views[1].Status)
	assert.Equal(t, "b", views[1].ID)
}

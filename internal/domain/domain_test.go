package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestWeekdayOf(t *testing.T) {
	// 2025-12-01 is a Monday
	monday := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.Equal(t, Sunday, WeekdayOf(monday.AddDate(0, 0, 6)))
	assert.Equal(t, Wednesday, WeekdayOf(monday.AddDate(0, 0, 2)))
}

func TestInterval_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 12, 1, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"touching end", Interval{at(9, 0), at(9, 45)}, Interval{at(9, 45), at(10, 0)}, false},
		{"touching start", Interval{at(10, 0), at(10, 45)}, Interval{at(9, 0), at(10, 0)}, false},
		{"inside", Interval{at(9, 0), at(12, 0)}, Interval{at(10, 0), at(10, 30)}, true},
		{"partial", Interval{at(9, 0), at(10, 1)}, Interval{at(10, 0), at(11, 0)}, true},
		{"disjoint", Interval{at(8, 0), at(9, 0)}, Interval{at(11, 0), at(12, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestWorkWindow_Validate(t *testing.T) {
	ok := WorkWindow{Weekday: Friday, StartTime: "09:00", EndTime: "12:00"}
	assert.NoError(t, ok.Validate())

	reversed := WorkWindow{Weekday: Friday, StartTime: "12:00", EndTime: "09:00"}
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidWindow)

	badDay := WorkWindow{Weekday: 7, StartTime: "09:00", EndTime: "12:00"}
	assert.ErrorIs(t, badDay.Validate(), ErrInvalidWeekday)

	badTime := WorkWindow{Weekday: Monday, StartTime: "9am", EndTime: "12:00"}
	assert.ErrorIs(t, badTime.Validate(), types.ErrInvalidTimeString)
}

func TestWorkWindow_Bounds(t *testing.T) {
	w := DefaultWorkWindow(Monday)
	date := time.Date(2025, 12, 1, 15, 30, 0, 0, time.UTC)

	b := w.Bounds(date)
	assert.Equal(t, time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC), b.Start)
	assert.Equal(t, time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC), b.End)
}

func TestTotalDuration(t *testing.T) {
	durations := map[int64]int{1: 45, 2: 20, 3: 0}

	assert.Equal(t, 65, TotalDuration([]int64{1, 2}, durations))
	assert.Equal(t, FallbackServiceDurationMinutes, TotalDuration([]int64{3}, durations))
	assert.Equal(t, FallbackServiceDurationMinutes, TotalDuration([]int64{99}, durations))
	assert.Equal(t, FallbackServiceDurationMinutes, TotalDuration(nil, durations))
}

func TestNaive(t *testing.T) {
	zone := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2025, 12, 1, 9, 30, 0, 0, zone)

	out := Naive(in)
	assert.Equal(t, time.UTC, out.Location())
	assert.Equal(t, 9, out.Hour())
	assert.Equal(t, 30, out.Minute())
}

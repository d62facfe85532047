package get_available_slots

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// 2025-12-01 - понедельник
var testDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2025, 12, 1, h, m, 0, 0, time.UTC)
}

func window(start, end string) domain.WorkWindow {
	return domain.WorkWindow{Weekday: domain.Monday, StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func pending(start time.Time, serviceIDs ...int64) *domain.Appointment {
	return &domain.Appointment{StartsAt: start, ServiceIDs: serviceIDs}
}

func TestScanSlots_AppointmentInsideWindow(t *testing.T) {
	durations := map[int64]int{1: 30}
	occupied := occupiedIntervals([]*domain.Appointment{pending(at(10, 0), 1)}, durations, 15)
	require.Equal(t, []domain.Interval{{Start: at(10, 0), End: at(10, 45)}}, occupied)

	got := formatSlots(scanSlots(testDate, []domain.WorkWindow{window("09:00", "12:00")}, occupied, 30, 15, 15))

	want := []string{
		"2025-12-01T09:00:00",
		"2025-12-01T09:15:00",
		"2025-12-01T10:45:00",
		"2025-12-01T11:00:00",
		"2025-12-01T11:15:00",
		"2025-12-01T11:30:00",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestScanSlots_EmptyDayDefaultWindow(t *testing.T) {
	got := formatSlots(scanSlots(testDate, []domain.WorkWindow{window("08:00", "18:00")}, nil, 60, 0, 30))

	want := []string{
		"2025-12-01T08:00:00", "2025-12-01T08:30:00",
		"2025-12-01T09:00:00", "2025-12-01T09:30:00",
		"2025-12-01T10:00:00", "2025-12-01T10:30:00",
		"2025-12-01T11:00:00", "2025-12-01T11:30:00",
		"2025-12-01T12:00:00", "2025-12-01T12:30:00",
		"2025-12-01T13:00:00", "2025-12-01T13:30:00",
		"2025-12-01T14:00:00", "2025-12-01T14:30:00",
		"2025-12-01T15:00:00", "2025-12-01T15:30:00",
		"2025-12-01T16:00:00", "2025-12-01T16:30:00",
		"2025-12-01T17:00:00",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, got, 19)
}

func TestOccupiedIntervals_CompletedDoesNotBlock(t *testing.T) {
	completed := pending(at(14, 0), 1)
	completed.Completed = true

	occupied := occupiedIntervals([]*domain.Appointment{completed}, map[int64]int{1: 60}, 15)
	assert.Empty(t, occupied)

	slots := scanSlots(testDate, []domain.WorkWindow{window("14:00", "15:00")}, occupied, 30, 15, 15)
	require.NotEmpty(t, slots)
	assert.Equal(t, at(14, 0), slots[0])
}

func TestOccupiedIntervals_DeletedServiceFallsBack(t *testing.T) {
	occupied := occupiedIntervals([]*domain.Appointment{pending(at(9, 0), 99)}, map[int64]int{}, 0)
	require.Len(t, occupied, 1)
	assert.Equal(t, at(9, 30), occupied[0].End)
}

func TestOccupiedIntervals_SumsServices(t *testing.T) {
	occupied := occupiedIntervals([]*domain.Appointment{pending(at(9, 0), 1, 2)}, map[int64]int{1: 30, 2: 20}, 10)
	require.Len(t, occupied, 1)
	assert.Equal(t, at(9, 0), occupied[0].Start)
	assert.Equal(t, at(10, 0), occupied[0].End)
}

func TestScanSlots_TouchingIsNotOverlap(t *testing.T) {
	// слот [09:00, 09:45) заканчивается ровно в начале занятого [09:45, 10:30)
	occupied := []domain.Interval{{Start: at(9, 45), End: at(10, 30)}}

	slots := scanSlots(testDate, []domain.WorkWindow{window("09:00", "09:30")}, occupied, 30, 15, 15)
	assert.Equal(t, []time.Time{at(9, 0)}, slots)

	// слот, начинающийся ровно в конце занятого интервала
	slots = scanSlots(testDate, []domain.WorkWindow{window("10:30", "11:00")}, occupied, 30, 15, 15)
	assert.Equal(t, []time.Time{at(10, 30)}, slots)
}

func TestScanSlots_DurationLongerThanWindow(t *testing.T) {
	slots := scanSlots(testDate, []domain.WorkWindow{window("09:00", "10:00")}, nil, 61, 0, 15)
	assert.Empty(t, slots)
}

func TestScanSlots_ZeroDurationAndBuffer(t *testing.T) {
	occupied := []domain.Interval{{Start: at(9, 0), End: at(9, 30)}}

	slots := scanSlots(testDate, []domain.WorkWindow{window("09:00", "09:45")}, occupied, 0, 0, 15)
	assert.Equal(t, []time.Time{at(9, 0), at(9, 30), at(9, 45)}, slots)
}

func TestScanSlots_WindowsConcatenatedInOrder(t *testing.T) {
	windows, fallback := resolveWindows([]*domain.WorkWindow{
		{Weekday: domain.Monday, StartTime: "14:00", EndTime: "15:00"},
		{Weekday: domain.Monday, StartTime: "09:00", EndTime: "10:00"},
	}, window("08:00", "18:00"))
	require.False(t, fallback)

	got := formatSlots(scanSlots(testDate, windows, nil, 30, 15, 30))
	want := []string{
		"2025-12-01T09:00:00", "2025-12-01T09:30:00",
		"2025-12-01T14:00:00", "2025-12-01T14:30:00",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWindows_FallbackEqualsExplicitDefault(t *testing.T) {
	occupied := []domain.Interval{{Start: at(12, 0), End: at(13, 15)}}

	fallbackWindows, usedFallback := resolveWindows(nil, domain.DefaultWorkWindow(domain.Monday))
	require.True(t, usedFallback)

	explicitWindows, usedFallback := resolveWindows([]*domain.WorkWindow{
		{Weekday: domain.Monday, StartTime: "08:00", EndTime: "18:00"},
	}, domain.DefaultWorkWindow(domain.Monday))
	require.False(t, usedFallback)

	assert.Equal(t,
		scanSlots(testDate, explicitWindows, occupied, 30, 15, 15),
		scanSlots(testDate, fallbackWindows, occupied, 30, 15, 15),
	)
}

func TestScanSlots_NoAcceptedSlotOverlapsOccupancy(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		duration := rng.Intn(120)
		buffer := rng.Intn(30)
		granularity := 1 + rng.Intn(60)

		appointments := make([]*domain.Appointment, 0)
		durations := map[int64]int{1: rng.Intn(90), 2: rng.Intn(90)}
		for i := 0; i < rng.Intn(6); i++ {
			start := testDate.Add(time.Duration(rng.Intn(24*60)) * time.Minute)
			appointments = append(appointments, pending(start, int64(1+rng.Intn(2))))
		}

		occupied := occupiedIntervals(appointments, durations, buffer)
		windows := []domain.WorkWindow{window("07:00", "12:00"), window("13:00", "20:00")}

		first := scanSlots(testDate, windows, occupied, duration, buffer, granularity)
		second := scanSlots(testDate, windows, occupied, duration, buffer, granularity)
		require.Equal(t, first, second, "scan must be idempotent")

		for _, slot := range first {
			candidate := domain.Interval{Start: slot, End: slot.Add(minutes(duration + buffer))}
			for _, occ := range occupied {
				require.Falsef(t, candidate.Overlaps(occ),
					"slot %s overlaps %s-%s (duration=%d buffer=%d)", slot, occ.Start, occ.End, duration, buffer)
			}
		}
	}
}

func TestValidateRequest(t *testing.T) {
	defaults := DefaultSettings()
	neg, zero, big := -1, 0, domain.MaxMinutesValue+1

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"zero date", &Request{}},
		{"negative duration", &Request{Date: testDate, DurationMinutes: &neg}},
		{"negative buffer", &Request{Date: testDate, BufferMinutes: &neg}},
		{"zero granularity", &Request{Date: testDate, GranularityMinutes: &zero}},
		{"too large duration", &Request{Date: testDate, DurationMinutes: &big}},
		{"bad service id", &Request{Date: testDate, ServiceIDs: []int64{0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateRequest(tt.req, defaults)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestValidateRequest_Defaults(t *testing.T) {
	p, err := validateRequest(&Request{Date: at(15, 20)}, DefaultSettings())
	require.NoError(t, err)
	require.NotNil(t, p.duration)
	assert.Equal(t, 30, *p.duration)
	assert.Equal(t, 15, p.buffer)
	assert.Equal(t, 15, p.granularity)
	assert.Equal(t, testDate, p.date)

	p, err = validateRequest(&Request{Date: testDate, ServiceIDs: []int64{1}}, DefaultSettings())
	require.NoError(t, err)
	assert.Nil(t, p.duration)

	zero := 0
	p, err = validateRequest(&Request{Date: testDate, DurationMinutes: &zero, BufferMinutes: &zero}, DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 0, *p.duration)
	assert.Equal(t, 0, p.buffer)
}

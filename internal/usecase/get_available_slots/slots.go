package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// resolveWindows возвращает окна дня, упорядоченные по времени начала
// Если окон нет, возвращается единственное окно по умолчанию
func resolveWindows(configured []*domain.WorkWindow, fallback domain.WorkWindow) ([]domain.WorkWindow, bool) {
	if len(configured) == 0 {
		return []domain.WorkWindow{fallback}, true
	}

	windows := make([]domain.WorkWindow, 0, len(configured))
	for _, w := range configured {
		if w != nil {
			windows = append(windows, *w)
		}
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].StartTime.Minutes() < windows[j].StartTime.Minutes()
	})

	return windows, false
}

// occupiedIntervals строит занятые интервалы по невыполненным записям
// Конец интервала = начало + сумма длительностей услуг (0 -> 30 минут) + буфер; начало не сдвигается
func occupiedIntervals(appointments []*domain.Appointment, durations map[int64]int, buffer int) []domain.Interval {
	occupied := make([]domain.Interval, 0, len(appointments))

	for _, a := range appointments {
		if a == nil || !a.IsBlocking() {
			continue
		}

		total := domain.TotalDuration(a.ServiceIDs, durations)
		occupied = append(occupied, domain.Interval{
			Start: a.StartsAt,
			End:   a.StartsAt.Add(minutes(total + buffer)),
		})
	}

	return occupied
}

// scanSlots перебирает время начала в каждом окне с шагом granularity
// Кандидат [cursor, cursor+duration+buffer) принимается, если не пересекается ни с одним занятым интервалом
// Окна обрабатываются по порядку, результаты не объединяются и не дедуплицируются
func scanSlots(date time.Time, windows []domain.WorkWindow, occupied []domain.Interval, duration, buffer, granularity int) []time.Time {
	slots := make([]time.Time, 0)
	if granularity <= 0 {
		return slots
	}

	step := minutes(granularity)
	length := minutes(duration)
	need := minutes(duration + buffer)

	for i := range windows {
		bounds := windows[i].Bounds(date)

		for cursor := bounds.Start; !cursor.Add(length).After(bounds.End); cursor = cursor.Add(step) {
			candidate := domain.Interval{Start: cursor, End: cursor.Add(need)}
			if !conflicts(candidate, occupied) {
				slots = append(slots, cursor)
			}
		}
	}

	return slots
}

func conflicts(candidate domain.Interval, occupied []domain.Interval) bool {
	for _, occ := range occupied {
		if candidate.Overlaps(occ) {
			return true
		}
	}
	return false
}

// collectServiceIDs возвращает уникальные ID услуг записей и запроса
func collectServiceIDs(appointments []*domain.Appointment, requested []int64) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)

	add := func(id int64) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	for _, a := range appointments {
		if a == nil {
			continue
		}
		for _, id := range a.ServiceIDs {
			add(id)
		}
	}
	for _, id := range requested {
		add(id)
	}

	return ids
}

func formatSlots(slots []time.Time) []string {
	formatted := make([]string, len(slots))
	for i, s := range slots {
		formatted[i] = s.Format(domain.SlotFormat)
	}
	return formatted
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

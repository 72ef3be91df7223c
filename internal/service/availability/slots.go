package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// GenerateParams входные данные для вычисления слотов одного дня
type GenerateParams struct {
	Date     time.Time // любой момент нужного локального дня
	Location *time.Location
	Windows  []domain.OpeningWindow
	Bookings []domain.Booking
	Duration time.Duration
	Limit    int       // лимит параллельных бронирований
	Now      time.Time // слоты, начинающиеся не позже Now, отбрасываются
	Service  *domain.Service
}

// Generate вычисляет доступные слоты дня.
// Внутри каждого окна слоты идут встык с шагом Duration; слот отбрасывается, если
// он не помещается в окно, пересекается с Limit и более бронированиями, уже начался
// или выходит за ограничения услуги по времени суток.
// Результат без дублей и отсортирован по времени начала.
func Generate(p GenerateParams) []domain.Slot {
	if len(p.Windows) == 0 || p.Duration <= 0 {
		return []domain.Slot{}
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	limit := p.Limit
	if limit <= 0 {
		limit = domain.DefaultConcurrentBookingLimit
	}

	var limitStart, limitEnd *time.Time
	if p.Service != nil {
		if p.Service.StartTimeLimit != nil {
			t := p.Service.StartTimeLimit.OnDate(p.Date, loc)
			limitStart = &t
		}
		if p.Service.EndTimeLimit != nil {
			t := p.Service.EndTimeLimit.OnDate(p.Date, loc)
			limitEnd = &t
		}
	}

	seen := make(map[string]struct{})
	slots := make([]domain.Slot, 0)

	for _, w := range p.Windows {
		windowStart := w.Start.OnDate(p.Date, loc)
		windowEnd := w.End.OnDate(p.Date, loc)

		for t := windowStart; !t.Add(p.Duration).After(windowEnd); t = t.Add(p.Duration) {
			end := t.Add(p.Duration)

			if !t.After(p.Now) {
				continue
			}
			if limitStart != nil && t.Before(*limitStart) {
				continue
			}
			if limitEnd != nil && end.After(*limitEnd) {
				continue
			}
			if CountOverlapping(p.Bookings, t, end) >= limit {
				continue
			}

			slot := domain.Slot{Start: t, End: end}
			if _, ok := seen[slot.Label()]; ok {
				continue
			}
			seen[slot.Label()] = struct{}{}
			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}

// CountOverlapping считает активные бронирования, пересекающие [start, end).
// Бронирование, которое заканчивается ровно в start или начинается ровно в end, не считается.
func CountOverlapping(bookings []domain.Booking, start, end time.Time) int {
	count := 0
	for i := range bookings {
		if !bookings[i].IsActive() {
			continue
		}
		if bookings[i].Overlaps(start, end) {
			count++
		}
	}
	return count
}

// Labels переводит слоты в строки HH:MM
func Labels(slots []domain.Slot) []string {
	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Label()
	}
	return labels
}

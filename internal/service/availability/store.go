package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Store читает окна работы и бронирования компании на локальный день
type Store struct {
	windows  WindowRepository
	bookings BookingRepository
	logger   Logger
}

// NewStore создает новый Store
func NewStore(windows WindowRepository, bookings BookingRepository, logger Logger) *Store {
	return &Store{
		windows:  windows,
		bookings: bookings,
		logger:   logger,
	}
}

// DayBounds возвращает [локальная полночь, следующая локальная полночь).
// При переходе на летнее/зимнее время длина дня отличается от 24 часов.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// GetDaySchedule возвращает окна работы для дня недели localDate и бронирования,
// пересекающие этот день. Бронирования переводятся в локальное время компании.
// Отсутствие окон означает выходной день, а не ошибку.
func (s *Store) GetDaySchedule(ctx context.Context, companyID int64, localDate time.Time, loc *time.Location) (*domain.DaySchedule, error) {
	dayStart, dayEnd := DayBounds(localDate, loc)

	windows, err := s.windows.GetByWeekday(ctx, companyID, dayStart.Weekday())
	if err != nil {
		return nil, fmt.Errorf("%w: windows for company=%d weekday=%s: %v",
			ErrScheduleUnavailable, companyID, dayStart.Weekday(), err)
	}

	valid := make([]domain.OpeningWindow, 0, len(windows))
	for _, w := range windows {
		if !w.IsValid() {
			s.logger.Warn("GetDaySchedule: skipping invalid window id=%d company=%d (%s-%s)",
				w.ID, companyID, w.Start, w.End)
			continue
		}
		valid = append(valid, w)
	}

	schedule := &domain.DaySchedule{
		Date:     dayStart,
		Windows:  valid,
		Bookings: []domain.Booking{},
	}
	if schedule.IsClosed() {
		return schedule, nil
	}

	bookings, err := s.bookings.ListActiveInRange(ctx, companyID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: bookings for company=%d date=%s: %v",
			ErrScheduleUnavailable, companyID, dayStart.Format(domain.DateFormat), err)
	}

	for _, b := range bookings {
		b.StartTime = b.StartTime.In(loc)
		if b.EndTime != nil {
			end := b.EndTime.In(loc)
			b.EndTime = &end
		}
		schedule.Bookings = append(schedule.Bookings, b)
	}

	return schedule, nil
}

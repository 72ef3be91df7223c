package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// OpeningWindow еженедельное окно работы компании, локальное время [Start, End)
// На один день недели может приходиться несколько окон.
type OpeningWindow struct {
	ID        int64
	CompanyID int64
	Weekday   time.Weekday
	Start     types.TimeString
	End       types.TimeString
}

// IsValid проверяет инвариант Start < End
func (w *OpeningWindow) IsValid() bool {
	return w.Start.Validate() == nil && w.End.Validate() == nil && w.Start.IsBefore(w.End)
}

// DaySchedule окна и бронирования на один локальный день
type DaySchedule struct {
	Date     time.Time // локальная полночь
	Windows  []OpeningWindow
	Bookings []Booking
}

// IsClosed возвращает true, если в этот день компания не работает
func (d *DaySchedule) IsClosed() bool {
	return len(d.Windows) == 0
}

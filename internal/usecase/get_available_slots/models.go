package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Config параметры по умолчанию
type Config struct {
	DefaultDurationMinutes int
}

// Request модель запроса на получение доступных слотов
type Request struct {
	CompanyID       int64
	Date            *string // YYYY-MM-DD в поясе компании, nil - сегодня
	DurationMinutes *int    // nil - длительность услуги или значение по умолчанию
	ServiceID       *int64
}

// Response модель ответа со списком доступных слотов.
// Status различает выходной день и день без свободных слотов.
type Response struct {
	CompanyID        int64
	Date             string
	Timezone         string
	TimezoneFallback bool
	DurationMinutes  int
	ServiceID        *int64
	Status           domain.AvailabilityStatus
	Slots            []string // HH:MM, по возрастанию
}

// DayParams параметры вычисления слотов одного дня
type DayParams struct {
	Company         *domain.Company
	TimeContext     domain.CompanyTimeContext
	Date            time.Time // любой момент дня в поясе компании
	DurationMinutes int
	Service         *domain.Service
}

// DayResult результат вычисления слотов одного дня
type DayResult struct {
	Status domain.AvailabilityStatus
	Slots  []domain.Slot
}

// Labels слоты в формате HH:MM
func (r *DayResult) Labels() []string {
	labels := make([]string, len(r.Slots))
	for i, s := range r.Slots {
		labels[i] = s.Label()
	}
	return labels
}

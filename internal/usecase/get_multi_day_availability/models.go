package get_multi_day_availability

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Config параметры агрегации
type Config struct {
	DefaultDays            int
	MaxDays                int
	AllServicesDays        int
	DefaultDurationMinutes int
}

// Request запрос слотов на несколько дней начиная с сегодняшнего
type Request struct {
	CompanyID       int64
	Days            *int // nil - значение по умолчанию; ограничивается [1, MaxDays]
	DurationMinutes *int
	ServiceID       *int64
}

// Response дни со свободными слотами по возрастанию даты
type Response struct {
	CompanyID        int64
	Timezone         string
	TimezoneFallback bool
	Days             int
	DurationMinutes  int
	ServiceID        *int64
	Availability     []domain.DayAvailability
}

// AllServicesRequest запрос слотов по всем услугам компании
type AllServicesRequest struct {
	CompanyID       int64
	DurationMinutes *int // переопределяет длительность всех услуг
}

// AllServicesResponse слоты по всем услугам на короткое окно дней
type AllServicesResponse struct {
	CompanyID        int64
	Timezone         string
	TimezoneFallback bool
	Days             int
	Services         []domain.ServiceAvailability
}

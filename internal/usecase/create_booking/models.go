package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CompanyID     int64
	ServiceName   *string // nil - бронирование без услуги
	StartTime     string  // RFC3339 или локальное время компании "YYYY-MM-DD HH:MM:SS" / "YYYY-MM-DDTHH:MM:SS"
	ClientContact string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking          domain.Booking // время в UTC
	Timezone         string
	TimezoneFallback bool
	LocalStart       time.Time
	LocalEnd         time.Time
}

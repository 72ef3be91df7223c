package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if err := ValidateDuration(*req.DurationMinutes); err != nil {
			return err
		}
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	return nil
}

// ValidateDuration проверяет длительность слота
func ValidateDuration(minutes int) error {
	if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}

// parseDate разбирает дату YYYY-MM-DD в поясе компании; пустое значение означает сегодня
func parseDate(raw *string, tc domain.CompanyTimeContext) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return tc.NowLocal, nil
	}

	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(*raw), tc.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, *raw)
	}
	return date, nil
}

// resolveDuration выбирает длительность: запрос > услуга > значение по умолчанию
func resolveDuration(requested *int, service *domain.Service, fallback int) int {
	if requested != nil {
		return *requested
	}
	if service != nil && service.DurationMinutes > 0 {
		return service.DurationMinutes
	}
	if fallback > 0 {
		return fallback
	}
	return domain.DefaultDurationMinutes
}

package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// форматы локального времени без пояса
var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	contact := strings.TrimSpace(req.ClientContact)
	if contact == "" {
		return fmt.Errorf("%w: clientContact is required", ErrInvalidInput)
	}
	if len(contact) > domain.MaxClientContactLength {
		return fmt.Errorf("%w: clientContact is longer than %d characters", ErrInvalidInput, domain.MaxClientContactLength)
	}

	if req.ServiceName != nil && strings.TrimSpace(*req.ServiceName) == "" {
		return fmt.Errorf("%w: serviceName must not be empty", ErrInvalidInput)
	}

	return nil
}

// parseStartTime разбирает время начала. Время с поясом переводится в UTC,
// время без пояса считается локальным временем компании.
func parseStartTime(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: startTime is required", ErrInvalidTimeFormat)
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
}

// validateNotPast требует, чтобы начало было строго в будущем
func validateNotPast(start, now time.Time) error {
	if !start.After(now.UTC()) {
		return fmt.Errorf("%w: %s", ErrPastBooking, start.Format(time.RFC3339))
	}
	return nil
}

package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// Service услуга компании
type Service struct {
	ID              int64
	CompanyID       int64
	Name            string
	DurationMinutes int
	StartTimeLimit  *types.TimeString // nil - без ограничения
	EndTimeLimit    *types.TimeString
	Price           float64
}

// EffectiveDuration длительность услуги в минутах (по умолчанию 60)
func (s *Service) EffectiveDuration() int {
	if s.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return s.DurationMinutes
}

// HasTimeLimits возвращает true, если у услуги есть ограничение по времени суток
func (s *Service) HasTimeLimits() bool {
	return s.StartTimeLimit != nil || s.EndTimeLimit != nil
}

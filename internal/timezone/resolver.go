package timezone

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrConfigurationMissing часовой пояс компании не задан
	ErrConfigurationMissing = errors.New("timezone: configuration missing")

	// ErrInvalidOffset числовое смещение вне диапазона [-12, +14] часов
	ErrInvalidOffset = errors.New("timezone: invalid offset")

	// ErrUnknownZone имя пояса не найдено в базе IANA
	ErrUnknownZone = errors.New("timezone: unknown zone")
)

const (
	minOffsetMinutes = -12 * 60
	maxOffsetMinutes = 14 * 60
)

var (
	// "+6", "-3.5", "6", "UTC+5", "GMT-3.5"
	hoursOffsetRe = regexp.MustCompile(`^(?i:utc|gmt)?\s*([+-]?\d+(?:\.\d+)?)$`)
	// "+05:30", "UTC-03:00"
	clockOffsetRe = regexp.MustCompile(`^(?i:utc|gmt)?\s*([+-])(\d{1,2}):(\d{2})$`)
)

// Resolve превращает строку настройки в *time.Location.
// Числовые значения трактуются как смещение в часах и дают фиксированный пояс,
// остальные строки ищутся в базе IANA. Значение по умолчанию не подставляется:
// решение о fallback на UTC принимает вызывающий код.
func Resolve(raw string) (*time.Location, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, ErrConfigurationMissing
	}

	if m := hoursOffsetRe.FindStringSubmatch(value); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidOffset, raw, err)
		}
		return fixedZone(int(math.Round(hours*60)), raw)
	}

	if m := clockOffsetRe.FindStringSubmatch(value); m != nil {
		h, _ := strconv.Atoi(m[2])
		mm, _ := strconv.Atoi(m[3])
		if mm >= 60 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, raw)
		}
		minutes := h*60 + mm
		if m[1] == "-" {
			minutes = -minutes
		}
		return fixedZone(minutes, raw)
	}

	// "Local" зависит от окружения процесса, для компании он бессмыслен
	if strings.EqualFold(value, "local") {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, raw)
	}

	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, raw, err)
	}
	return loc, nil
}

// ForCompany вычисляет временной контекст компании.
// При ошибке разрешения пояса возвращает контекст в UTC с Fallback=true и саму ошибку,
// чтобы вызывающий код мог ее залогировать.
func ForCompany(raw string, now time.Time) (domain.CompanyTimeContext, error) {
	loc, err := Resolve(raw)
	if err != nil {
		return domain.CompanyTimeContext{
			Timezone: domain.DefaultTimezone,
			Location: time.UTC,
			NowLocal: now.In(time.UTC),
			Fallback: true,
		}, err
	}

	return domain.CompanyTimeContext{
		Timezone: Identifier(loc),
		Location: loc,
		NowLocal: now.In(loc),
	}, nil
}

// Identifier имя пояса для ответа клиенту
func Identifier(loc *time.Location) string {
	if loc == nil {
		return domain.DefaultTimezone
	}
	return loc.String()
}

func fixedZone(minutes int, raw string) (*time.Location, error) {
	if minutes < minOffsetMinutes || minutes > maxOffsetMinutes {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, raw)
	}
	if minutes == 0 {
		return time.UTC, nil
	}

	sign := '+'
	abs := minutes
	if minutes < 0 {
		sign = '-'
		abs = -minutes
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/60, abs%60)
	return time.FixedZone(name, minutes*60), nil
}

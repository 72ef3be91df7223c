package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// понедельник
var testDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func window(start, end string) domain.OpeningWindow {
	return domain.OpeningWindow{
		CompanyID: 1,
		Weekday:   time.Monday,
		Start:     types.MustTimeString(start),
		End:       types.MustTimeString(end),
	}
}

func booking(loc *time.Location, start, end string) domain.Booking {
	b := domain.Booking{
		CompanyID: 1,
		StartTime: types.MustTimeString(start).OnDate(testDate, loc),
		Status:    domain.StatusConfirmed,
	}
	if end != "" {
		b.EndTime = ptr.Ptr(types.MustTimeString(end).OnDate(testDate, loc))
	}
	return b
}

func baseParams() GenerateParams {
	return GenerateParams{
		Date:     testDate,
		Location: time.UTC,
		Windows:  []domain.OpeningWindow{window("09:00", "12:00")},
		Duration: 60 * time.Minute,
		Limit:    1,
		Now:      testDate.AddDate(0, 0, -1),
	}
}

func TestGenerate_DurationPacking(t *testing.T) {
	p := baseParams()
	p.Duration = 45 * time.Minute

	assert.Equal(t, []string{"09:00", "09:45", "10:30", "11:15"}, Labels(Generate(p)))
}

func TestGenerate_DefaultHourSlots(t *testing.T) {
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, Labels(Generate(baseParams())))
}

func TestGenerate_ClosedDay(t *testing.T) {
	for _, d := range []time.Duration{15 * time.Minute, time.Hour, 3 * time.Hour} {
		p := baseParams()
		p.Windows = nil
		p.Duration = d
		p.Service = &domain.Service{Name: "Massage", DurationMinutes: 90}

		slots := Generate(p)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	}
}

func TestGenerate_PastSlotsExcluded(t *testing.T) {
	p := baseParams()
	p.Windows = []domain.OpeningWindow{window("08:00", "18:00")}

	// ровно 10:00 - слот 10:00 уже начался
	p.Now = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	labels := Labels(Generate(p))
	assert.NotContains(t, labels, "10:00")
	assert.Equal(t, "11:00", labels[0])

	for _, s := range Generate(p) {
		assert.True(t, s.Start.After(p.Now))
	}

	p.Now = time.Date(2026, 6, 15, 10, 0, 1, 0, time.UTC)
	assert.Equal(t, "11:00", Labels(Generate(p))[0])
}

func TestGenerate_ServiceTimeLimits(t *testing.T) {
	p := baseParams()
	p.Windows = []domain.OpeningWindow{window("09:00", "17:00")}
	p.Service = &domain.Service{
		Name:            "Morning check-up",
		DurationMinutes: 60,
		StartTimeLimit:  ptr.Ptr(types.MustTimeString("10:00")),
		EndTimeLimit:    ptr.Ptr(types.MustTimeString("12:00")),
	}

	assert.Equal(t, []string{"10:00", "11:00"}, Labels(Generate(p)))
}

func TestGenerate_ServiceOpenEndedLimit(t *testing.T) {
	p := baseParams()
	p.Windows = []domain.OpeningWindow{window("09:00", "13:00")}
	p.Service = &domain.Service{StartTimeLimit: ptr.Ptr(types.MustTimeString("11:00"))}

	assert.Equal(t, []string{"11:00", "12:00"}, Labels(Generate(p)))
}

func TestGenerate_WindowUntilMidnight(t *testing.T) {
	p := baseParams()
	p.Windows = []domain.OpeningWindow{window("21:00", "24:00")}
	p.Service = &domain.Service{EndTimeLimit: ptr.Ptr(types.MustTimeString("24:00"))}

	assert.Equal(t, []string{"21:00", "22:00", "23:00"}, Labels(Generate(p)))
}

func TestGenerate_ExcludesBookedSlots(t *testing.T) {
	p := baseParams()
	p.Bookings = []domain.Booking{
		booking(time.UTC, "10:00", "10:30"),
	}

	assert.Equal(t, []string{"09:00", "11:00"}, Labels(Generate(p)))
}

func TestGenerate_BookingWithoutEndBlocksOneHour(t *testing.T) {
	p := baseParams()
	p.Duration = 30 * time.Minute
	p.Bookings = []domain.Booking{booking(time.UTC, "09:30", "")}

	assert.Equal(t, []string{"09:00", "10:30", "11:00", "11:30"}, Labels(Generate(p)))
}

func TestGenerate_AdjacentBookingDoesNotBlock(t *testing.T) {
	p := baseParams()
	p.Bookings = []domain.Booking{booking(time.UTC, "08:00", "09:00")}

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, Labels(Generate(p)))
}

func TestGenerate_ConcurrencyLimit(t *testing.T) {
	p := baseParams()
	p.Limit = 2
	p.Bookings = []domain.Booking{
		booking(time.UTC, "09:00", "10:00"),
		booking(time.UTC, "10:00", "11:00"),
		booking(time.UTC, "10:00", "11:00"),
	}

	assert.Equal(t, []string{"09:00", "11:00"}, Labels(Generate(p)))
}

func TestGenerate_InactiveBookingsIgnored(t *testing.T) {
	p := baseParams()
	cancelled := booking(time.UTC, "09:00", "10:00")
	cancelled.Status = domain.StatusCancelled
	p.Bookings = []domain.Booking{cancelled}

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, Labels(Generate(p)))
}

func TestGenerate_SplitShiftsDedupAndOrder(t *testing.T) {
	p := baseParams()
	p.Windows = []domain.OpeningWindow{
		window("14:00", "16:00"),
		window("09:00", "11:00"),
		window("10:00", "12:00"),
	}

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "14:00", "15:00"}, Labels(Generate(p)))
}

func TestGenerate_LocalTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+06:00", 6*3600)
	p := baseParams()
	p.Location = loc
	p.Date = time.Date(2026, 6, 15, 0, 0, 0, 0, loc)
	// 04:00 UTC = 10:00 локального времени
	p.Bookings = []domain.Booking{{
		StartTime: time.Date(2026, 6, 15, 4, 0, 0, 0, time.UTC).In(loc),
		Status:    domain.StatusConfirmed,
	}}
	// 03:30 UTC = 09:30 локального
	p.Now = time.Date(2026, 6, 15, 3, 30, 0, 0, time.UTC)

	assert.Equal(t, []string{"11:00"}, Labels(Generate(p)))
}

func TestCountOverlapping(t *testing.T) {
	bookings := []domain.Booking{
		booking(time.UTC, "11:20", "11:40"),
		booking(time.UTC, "11:00", "11:30"),
		booking(time.UTC, "12:00", "12:30"),
	}
	start := time.Date(2026, 6, 15, 11, 30, 0, 0, time.UTC)

	assert.Equal(t, 1, CountOverlapping(bookings, start, start.Add(30*time.Minute)))
	assert.Equal(t, 3, CountOverlapping(bookings, start.Add(-30*time.Minute), start.Add(time.Hour)))
}

package timezone

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offsetOf(t *testing.T, loc *time.Location) int {
	t.Helper()
	_, offset := time.Date(2026, 1, 15, 12, 0, 0, 0, loc).Zone()
	return offset
}

func TestResolve_NumericOffsets(t *testing.T) {
	tests := []struct {
		raw        string
		wantOffset int
		wantName   string
	}{
		{raw: "+6", wantOffset: 6 * 3600, wantName: "UTC+06:00"},
		{raw: "6", wantOffset: 6 * 3600, wantName: "UTC+06:00"},
		{raw: "-3.5", wantOffset: -(3*3600 + 1800), wantName: "UTC-03:30"},
		{raw: "+5.75", wantOffset: 5*3600 + 45*60, wantName: "UTC+05:45"},
		{raw: "UTC+3", wantOffset: 3 * 3600, wantName: "UTC+03:00"},
		{raw: "gmt-10", wantOffset: -10 * 3600, wantName: "UTC-10:00"},
		{raw: "+05:30", wantOffset: 5*3600 + 1800, wantName: "UTC+05:30"},
		{raw: "0", wantOffset: 0, wantName: "UTC"},
		{raw: " +14 ", wantOffset: 14 * 3600, wantName: "UTC+14:00"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc, err := Resolve(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOffset, offsetOf(t, loc))
			assert.Equal(t, tt.wantName, loc.String())
		})
	}
}

func TestResolve_NamedZones(t *testing.T) {
	for _, name := range []string{"Europe/Moscow", "America/Port-au-Prince", "Asia/Kolkata", "UTC"} {
		t.Run(name, func(t *testing.T) {
			loc, err := Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, name, loc.String())
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr error
	}{
		{raw: "", wantErr: ErrConfigurationMissing},
		{raw: "   ", wantErr: ErrConfigurationMissing},
		{raw: "+15", wantErr: ErrInvalidOffset},
		{raw: "-12.5", wantErr: ErrInvalidOffset},
		{raw: "+05:75", wantErr: ErrInvalidOffset},
		{raw: "Mars/Olympus", wantErr: ErrUnknownZone},
		{raw: "Local", wantErr: ErrUnknownZone},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc, err := Resolve(tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, loc)
		})
	}
}

func TestForCompany_FallbackIsExplicit(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tc, err := ForCompany("not/a-zone", now)
	assert.ErrorIs(t, err, ErrUnknownZone)
	assert.True(t, tc.Fallback)
	assert.Equal(t, "UTC", tc.Timezone)
	assert.Equal(t, time.UTC, tc.Location)
	assert.True(t, tc.NowLocal.Equal(now))

	// явно заданный UTC не считается fallback
	tc, err = ForCompany("UTC", now)
	require.NoError(t, err)
	assert.False(t, tc.Fallback)
	assert.Equal(t, "UTC", tc.Timezone)
}

func TestForCompany_NowLocal(t *testing.T) {
	now := time.Date(2026, 3, 1, 22, 30, 0, 0, time.UTC)

	tc, err := ForCompany("+6", now)
	require.NoError(t, err)
	assert.Equal(t, "UTC+06:00", tc.Timezone)
	assert.Equal(t, 2, tc.NowLocal.Day())
	assert.Equal(t, 4, tc.NowLocal.Hour())
	assert.Equal(t, 30, tc.NowLocal.Minute())
}

// Локальное время -> UTC -> локальное время не меняет значение для всех смещений [-12, +14]
func TestResolve_LocalUTCRoundTrip(t *testing.T) {
	const layout = "2006-01-02 15:04:05"
	naive := "2026-07-14 09:30:00"

	for minutes := -12 * 60; minutes <= 14*60; minutes += 30 {
		raw := fmt.Sprintf("%+g", float64(minutes)/60)
		t.Run(raw, func(t *testing.T) {
			loc, err := Resolve(raw)
			require.NoError(t, err)
			assert.Equal(t, minutes*60, offsetOf(t, loc))

			local, err := time.ParseInLocation(layout, naive, loc)
			require.NoError(t, err)

			stored := local.UTC()
			assert.Equal(t, naive, stored.In(loc).Format(layout))
			assert.True(t, stored.In(loc).Equal(local))
		})
	}
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightjar-labs/marquee/internal/model"
)

// 2024-01-01 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func sunday(hour, minute int) time.Time {
	return time.Date(2024, 1, 7, hour, minute, 0, 0, time.UTC)
}

func window(id int, start, end, days string) model.Schedule {
	return model.Schedule{
		ID:         id,
		Name:       "w",
		StartTime:  start,
		EndTime:    end,
		DaysOfWeek: days,
		IsActive:   true,
	}
}

func TestWindowActiveBoundaries(t *testing.T) {
	s := window(1, "09:00", "17:00", "0123456")

	assert.True(t, WindowActive(s, monday(9, 0)), "start minute is inclusive")
	assert.True(t, WindowActive(s, monday(16, 59)))
	assert.False(t, WindowActive(s, monday(17, 0)), "end minute is exclusive")
	assert.False(t, WindowActive(s, monday(8, 59)))
}

func TestBackToBackWindowsShareNoMinute(t *testing.T) {
	first := window(1, "09:00", "12:00", "0123456")
	second := window(2, "12:00", "17:00", "0123456")

	at := monday(12, 0)
	assert.False(t, WindowActive(first, at))
	assert.True(t, WindowActive(second, at))
}

func TestWindowActiveDayMatch(t *testing.T) {
	weekdays := window(1, "00:00", "23:59", "01234")

	assert.True(t, WindowActive(weekdays, monday(12, 0)))
	assert.False(t, WindowActive(weekdays, sunday(12, 0)))

	sundayOnly := window(2, "00:00", "23:59", "6")
	assert.True(t, WindowActive(sundayOnly, sunday(12, 0)))
	assert.False(t, WindowActive(sundayOnly, monday(12, 0)))
}

func TestWindowActiveInactiveFlag(t *testing.T) {
	s := window(1, "00:00", "23:59", "0123456")
	s.IsActive = false
	assert.False(t, WindowActive(s, monday(12, 0)))
}

func TestWindowActiveMalformed(t *testing.T) {
	cases := []struct {
		name  string
		sched model.Schedule
	}{
		{"unparseable start", window(10, "9am", "17:00", "0123456")},
		{"unparseable end", window(11, "09:00", "late", "0123456")},
		{"end equals start", window(12, "09:00", "09:00", "0123456")},
		{"end before start", window(13, "17:00", "09:00", "0123456")},
		{"empty days", window(14, "09:00", "17:00", "")},
		{"day out of range", window(15, "09:00", "17:00", "017")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, WindowActive(tc.sched, monday(12, 0)))
		})
	}
}

func TestWindowActiveOutOfRangeClock(t *testing.T) {
	// time.Parse rejects hour 24, so "24:00" windows are malformed, not
	// silently treated as midnight.
	assert.False(t, WindowActive(window(20, "09:00", "24:00", "0123456"), monday(12, 0)))
}

func TestValidateWindow(t *testing.T) {
	require.NoError(t, ValidateWindow("09:00", "17:00", "0123456"))
	require.NoError(t, ValidateWindow("00:00", "23:59", "6"))

	assert.Error(t, ValidateWindow("9:0", "17:00", "0123456"))
	assert.Error(t, ValidateWindow("09:00", "17:00", "7"))
	assert.Error(t, ValidateWindow("09:00", "17:00", ""))
	assert.Error(t, ValidateWindow("09:00", "09:00", "0"), "zero-length window")
	assert.Error(t, ValidateWindow("22:00", "02:00", "0"), "midnight wrap is rejected")
}

func TestDayDigitAlphabet(t *testing.T) {
	// Monday maps to '0', Sunday to '6'.
	assert.Equal(t, byte('0'), dayDigit(monday(0, 0)))
	assert.Equal(t, byte('6'), dayDigit(sunday(0, 0)))
}

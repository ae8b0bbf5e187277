package schedule

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/model"
)

// Schedules store wall-clock windows as zero-padded "HH:MM" strings and a
// digit string of weekdays where 0=Monday .. 6=Sunday, matching the wire
// format the dashboard submits.

// malformedLogged remembers schedule IDs already reported so a bad row does
// not spam the log on every resolver pass.
var malformedLogged sync.Map

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// dayDigit maps a time.Weekday onto the stored digit alphabet (0=Monday).
func dayDigit(t time.Time) byte {
	return byte('0' + (int(t.Weekday())+6)%7)
}

// WindowActive reports whether the schedule's window covers the instant in
// the server's local timezone. Start is inclusive, end exclusive, so
// back-to-back windows never both claim the boundary minute. A malformed
// window (unparseable times, end not after start, empty or invalid day set)
// is never active.
func WindowActive(s model.Schedule, at time.Time) bool {
	if !s.IsActive {
		return false
	}
	start, okStart := parseClock(s.StartTime)
	end, okEnd := parseClock(s.EndTime)
	if !okStart || !okEnd || end <= start || !validDays(s.DaysOfWeek) {
		if _, seen := malformedLogged.LoadOrStore(s.ID, struct{}{}); !seen {
			log.Warn().
				Int("schedule_id", s.ID).
				Str("start", s.StartTime).
				Str("end", s.EndTime).
				Str("days", s.DaysOfWeek).
				Msg("malformed schedule window, treating as inactive")
		}
		return false
	}
	if !strings.ContainsRune(s.DaysOfWeek, rune(dayDigit(at))) {
		return false
	}
	minute := at.Hour()*60 + at.Minute()
	return start <= minute && minute < end
}

func validDays(days string) bool {
	if days == "" {
		return false
	}
	for _, r := range days {
		if r < '0' || r > '6' {
			return false
		}
	}
	return true
}

// ValidateWindow is the creation-time check behind schedule create/update.
// Windows that would wrap past midnight are rejected rather than given
// wrap-around semantics: the schedule form only offers same-day HH:MM pairs.
func ValidateWindow(start, end, days string) error {
	s, ok := parseClock(start)
	if !ok {
		return fmt.Errorf("invalid start time %q, want HH:MM", start)
	}
	e, ok := parseClock(end)
	if !ok {
		return fmt.Errorf("invalid end time %q, want HH:MM", end)
	}
	if e <= s {
		return fmt.Errorf("end time %s must be after start time %s on the same day", end, start)
	}
	if !validDays(days) {
		return fmt.Errorf("days_of_week %q must be a non-empty string of digits 0-6", days)
	}
	return nil
}

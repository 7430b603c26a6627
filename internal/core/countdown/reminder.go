package countdown

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Reminder is a checkpoint that fires once per run-cycle when the remaining
// time crosses Offset seconds.
type Reminder struct {
	ID        int
	Offset    int
	Triggered bool
}

// Label returns the human-readable offset, e.g. "2 min 30 sec".
func (reminder Reminder) Label() string {
	return FormatReminderLabel(reminder.Offset)
}

// Threshold returns the offset as a duration.
func (reminder Reminder) Threshold() time.Duration {
	return time.Duration(reminder.Offset) * time.Second
}

// ParseMinutes reads a minutes value typed by the user.
func ParseMinutes(text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "parse %q", text)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Wrapf(ErrInvalidInput, "parse %q", text)
	}
	return value, nil
}

// MinutesToSeconds converts minutes to whole seconds, rounding half up.
func MinutesToSeconds(minutes float64) int {
	return int(math.Round(minutes * 60))
}

// FormatClock renders whole seconds as mm:ss. Minutes do not wrap at 60.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatReminderLabel renders an offset as "M min S sec", "M min" or "S sec".
func FormatReminderLabel(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	secs := seconds % 60
	switch {
	case minutes > 0 && secs > 0:
		return fmt.Sprintf("%d min %d sec", minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%d min", minutes)
	default:
		return fmt.Sprintf("%d sec", secs)
	}
}

// sortReminders orders reminders by offset, largest first.
func sortReminders(reminders []Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].Offset > reminders[j].Offset
	})
}

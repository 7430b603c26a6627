package timerwindow

import (
	"fmt"
	"image/color"

	"eventtimer/internal/core/countdown"
)

const (
	defaultWindowLabel = "Event Countdown"
	endedHint          = "Time's up"
	defaultReminderTip = "Add reminders to help keep the pace."
)

type highlight int

const (
	highlightNone highlight = iota
	highlightReminder
	highlightEnded
)

var (
	clockColorNormal   = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	clockColorReminder = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	clockColorEnded    = color.NRGBA{R: 224, G: 82, B: 82, A: 255}
)

// view is the presentation state of the window, kept free of fyne types
// so it can be reasoned about on its own.
type view struct {
	title     string
	remaining int
	total     int
	state     countdown.State
	muted     bool
	hint      string
	highlight highlight
}

func (state view) clockText() string {
	return countdown.FormatClock(state.remaining)
}

func (state view) windowTitle() string {
	label := state.title
	if label == "" {
		label = defaultWindowLabel
	}
	return fmt.Sprintf("%s | %s", state.clockText(), label)
}

func (state view) startLabel() string {
	if state.state == countdown.StateRunning {
		return "Pause"
	}
	return "Start"
}

func (state view) muteLabel() string {
	if state.muted {
		return "Sound: off"
	}
	return "Sound: on"
}

func (state view) controlsEnabled() bool {
	return state.total > 0
}

func (state view) clockColor() color.Color {
	switch state.highlight {
	case highlightReminder:
		return clockColorReminder
	case highlightEnded:
		return clockColorEnded
	default:
		return clockColorNormal
	}
}

func reminderHint(reminder countdown.Reminder) string {
	return fmt.Sprintf("Reminder: %s left", reminder.Label())
}

func reminderItemText(reminder countdown.Reminder) string {
	if reminder.Triggered {
		return fmt.Sprintf("%s left (done)", reminder.Label())
	}
	return fmt.Sprintf("%s left", reminder.Label())
}

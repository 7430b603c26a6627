package headless

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"eventtimer/internal/core/countdown"
	"eventtimer/internal/logging"
)

const endedText = "Time's up"

// Terminal renders the countdown on a text stream. On a terminal the clock
// line is rewritten in place; elsewhere every change is a new line.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	title    string
	rewrite  bool
	pending  bool
	lastSize int
	state    countdown.State
	shown    int
	listed   string
	done     chan struct{}
	doneOnce sync.Once
}

var _ countdown.Sink = (*Terminal)(nil)

// NewTerminal creates a terminal sink writing to out.
func NewTerminal(out io.Writer, title string) *Terminal {
	return &Terminal{
		out:     out,
		title:   title,
		rewrite: logging.IsTerminal(out),
		state:   countdown.StateIdle,
		done:    make(chan struct{}),
	}
}

// Done is closed once the countdown has ended.
func (terminal *Terminal) Done() <-chan struct{} {
	return terminal.done
}

func (terminal *Terminal) DisplayUpdate(remaining int) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	terminal.shown = remaining
	line := fmt.Sprintf("%s  %s", countdown.FormatClock(remaining), terminal.title)
	if !terminal.rewrite {
		fmt.Fprintln(terminal.out, line)
		return
	}

	padding := ""
	if terminal.lastSize > len(line) {
		padding = strings.Repeat(" ", terminal.lastSize-len(line))
	}
	fmt.Fprintf(terminal.out, "\r%s%s", line, padding)
	terminal.lastSize = len(line)
	terminal.pending = true
}

func (terminal *Terminal) LabelRefresh(int) {}

// StateChanged reports a run stopping before its end. Pause, reset and
// reconfigure all stop a run, so the line names the clock, not the cause.
func (terminal *Terminal) StateChanged(state countdown.State) {
	terminal.mu.Lock()
	previous := terminal.state
	terminal.state = state
	shown := terminal.shown
	terminal.mu.Unlock()

	if previous == countdown.StateRunning && state == countdown.StateIdle {
		terminal.println("stopped at " + countdown.FormatClock(shown))
	}
}

func (terminal *Terminal) ReminderFired(reminder countdown.Reminder) {
	terminal.println(fmt.Sprintf("Reminder: %s left", reminder.Label()))
}

func (terminal *Terminal) ReminderAlert() {}

func (terminal *Terminal) Ended() {
	terminal.println(endedText)
	terminal.doneOnce.Do(func() {
		close(terminal.done)
	})
}

func (terminal *Terminal) EndAlert() {}

func (terminal *Terminal) RemindersChanged(reminders []countdown.Reminder) {
	if len(reminders) == 0 {
		return
	}
	labels := make([]string, 0, len(reminders))
	for _, reminder := range reminders {
		labels = append(labels, reminder.Label())
	}
	listed := strings.Join(labels, ", ")

	// Triggered flag updates resend an unchanged set.
	terminal.mu.Lock()
	unchanged := listed == terminal.listed
	terminal.listed = listed
	terminal.mu.Unlock()
	if unchanged {
		return
	}
	terminal.println("Reminders: " + listed)
}

func (terminal *Terminal) Message(message countdown.Message) {
	if message.Kind == countdown.MessageError {
		terminal.println("error: " + message.Text)
		return
	}
	terminal.println(message.Text)
}

// println ends a pending rewritten line before printing text.
func (terminal *Terminal) println(text string) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	if terminal.pending {
		fmt.Fprintln(terminal.out)
		terminal.pending = false
		terminal.lastSize = 0
	}
	fmt.Fprintln(terminal.out, text)
}

// Run starts engine and blocks until the countdown ends or ctx is done.
// The engine is closed before Run returns.
func Run(ctx context.Context, engine *countdown.Engine, terminal *Terminal) error {
	defer engine.Close()

	if engine.Total() <= 0 {
		return countdown.ErrNotConfigured
	}

	terminal.RemindersChanged(engine.Reminders())
	terminal.DisplayUpdate(engine.Remaining())
	engine.Start()

	select {
	case <-terminal.Done():
		return nil
	case <-ctx.Done():
		terminal.println("interrupted")
		return ctx.Err()
	}
}

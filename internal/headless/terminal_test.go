package headless

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"eventtimer/internal/core/countdown"
	"eventtimer/internal/core/model"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (buffer *syncBuffer) Write(p []byte) (int, error) {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return buffer.buf.Write(p)
}

func (buffer *syncBuffer) String() string {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return buffer.buf.String()
}

type testTerminal struct {
	suite.Suite
}

func (t *testTerminal) TestPlainOutputPrintsLines() {
	out := &syncBuffer{}
	terminal := NewTerminal(out, "Standup")
	t.False(terminal.rewrite)

	terminal.DisplayUpdate(150)
	terminal.ReminderFired(countdown.Reminder{ID: 1, Offset: 60})
	terminal.DisplayUpdate(59)

	t.Equal("02:30  Standup\nReminder: 1 min left\n00:59  Standup\n", out.String())
}

func (t *testTerminal) TestRewriteEndsPendingLine() {
	out := &syncBuffer{}
	terminal := NewTerminal(out, "Standup")
	terminal.rewrite = true

	terminal.DisplayUpdate(150)
	terminal.DisplayUpdate(149)
	terminal.Message(countdown.Message{Kind: countdown.MessageError, Text: "Invalid reminder."})

	t.Equal("\r02:30  Standup\r02:29  Standup\nerror: Invalid reminder.\n", out.String())
}

func (t *testTerminal) TestStopLabelOnlyWhenRunStops() {
	out := &syncBuffer{}
	terminal := NewTerminal(out, "")

	terminal.StateChanged(countdown.StateIdle)
	terminal.StateChanged(countdown.StateRunning)
	terminal.DisplayUpdate(41)
	terminal.StateChanged(countdown.StateIdle)
	terminal.StateChanged(countdown.StateRunning)
	terminal.StateChanged(countdown.StateEnded)
	terminal.DisplayUpdate(180)
	terminal.StateChanged(countdown.StateIdle)

	t.Equal("00:41  \nstopped at 00:41\n03:00  \n", out.String())
}

func (t *testTerminal) TestEndedClosesDone() {
	terminal := NewTerminal(&syncBuffer{}, "")
	terminal.Ended()
	terminal.Ended()

	select {
	case <-terminal.Done():
	default:
		t.Fail("done not closed")
	}
}

func (t *testTerminal) TestRemindersChanged() {
	out := &syncBuffer{}
	terminal := NewTerminal(out, "")

	terminal.RemindersChanged(nil)
	terminal.RemindersChanged([]countdown.Reminder{{ID: 1, Offset: 90}, {ID: 2, Offset: 30}})

	terminal.RemindersChanged([]countdown.Reminder{{ID: 1, Offset: 90, Triggered: true}, {ID: 2, Offset: 30}})

	t.Equal("Reminders: 1 min 30 sec, 30 sec\n", out.String())
}

func (t *testTerminal) TestRunUntilEnd() {
	out := &syncBuffer{}
	terminal := NewTerminal(out, "Quick")
	engine := countdown.New(model.CountdownConfig{
		Duration:     time.Second,
		TickInterval: 10 * time.Millisecond,
	}, countdown.Options{Sink: terminal})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.NoError(Run(ctx, engine, terminal))
	t.True(strings.HasSuffix(out.String(), endedText+"\n"))
	t.Equal(countdown.StateEnded, engine.State())
}

func (t *testTerminal) TestRunInterrupted() {
	out := &syncBuffer{}
	terminal := NewTerminal(out, "")
	engine := countdown.New(model.CountdownConfig{
		Duration:     time.Minute,
		TickInterval: 10 * time.Millisecond,
	}, countdown.Options{Sink: terminal})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := Run(ctx, engine, terminal)
	t.True(errors.Is(err, context.DeadlineExceeded))
	t.Contains(out.String(), "interrupted\n")
}

func (t *testTerminal) TestRunUnconfigured() {
	terminal := NewTerminal(&syncBuffer{}, "")
	engine := countdown.New(model.CountdownConfig{}, countdown.Options{Sink: terminal})

	err := Run(context.Background(), engine, terminal)
	t.True(errors.Is(err, countdown.ErrNotConfigured))
}

func TestTerminal(t *testing.T) {
	defer goleak.VerifyNone(t)

	suite.Run(t, new(testTerminal))
}

func TestRunPrintsInitialState(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := &syncBuffer{}
	terminal := NewTerminal(out, "Talk")
	engine := countdown.New(model.CountdownConfig{
		Duration:     time.Minute,
		TickInterval: 10 * time.Millisecond,
		Reminders:    []time.Duration{30 * time.Second},
	}, countdown.Options{Sink: terminal})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, engine, terminal)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Reminders: 30 sec\n01:00  Talk\n") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

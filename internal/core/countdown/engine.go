package countdown

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"eventtimer/internal/core/model"
)

// maxDurationSeconds is the longest total whose end instant still fits in a
// time.Duration.
const maxDurationSeconds int64 = math.MaxInt64 / int64(time.Second)

// Options contains runtime collaborators for the Engine.
type Options struct {
	Clock        Clock
	Scheduler    Scheduler
	TickInterval time.Duration
	Sink         Sink
	Logger       *logrus.Entry
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	State     State
	Total     int
	Remaining int
	Reminders []Reminder
}

// Engine is the countdown state machine. Remaining time is always derived
// from the scheduled end instant, never accumulated from ticks.
type Engine struct {
	mu           sync.Mutex
	clock        Clock
	scheduler    Scheduler
	interval     time.Duration
	sink         Sink
	log          *logrus.Entry
	state        State
	total        int
	remaining    int
	scheduledEnd time.Time
	reminders    []Reminder
	nextID       int
	cancelPoll   func()
	generation   uint64
	closed       bool
}

// New creates an idle Engine at full duration. A zero duration leaves the
// engine unconfigured. Invalid preset reminders are skipped.
func New(config model.CountdownConfig, options Options) *Engine {
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.TickInterval <= 0 {
		options.TickInterval = config.TickInterval
	}
	if options.TickInterval <= 0 {
		options.TickInterval = model.DefaultTickInterval
	}
	if options.Sink == nil {
		options.Sink = Hooks{}
	}
	if options.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		options.Logger = logrus.NewEntry(discard)
	}

	total := config.DurationSeconds()
	if total < 0 {
		total = 0
	}

	engine := &Engine{
		clock:     options.Clock,
		scheduler: options.Scheduler,
		interval:  options.TickInterval,
		sink:      options.Sink,
		log:       options.Logger,
		state:     StateIdle,
		total:     total,
		remaining: total,
	}

	for _, offset := range config.Reminders {
		seconds := int(offset / time.Second)
		if err := engine.validateOffsetLocked(seconds); err != nil {
			engine.log.WithError(err).WithField("offset", seconds).Warn("skip preset reminder")
			continue
		}
		engine.appendReminderLocked(seconds)
	}

	return engine
}

// Publish pushes the full current state to the sink, for freshly attached hosts.
func (engine *Engine) Publish() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.sink.StateChanged(engine.state)
	engine.sink.DisplayUpdate(engine.remaining)
	engine.sink.LabelRefresh(engine.remaining)
	engine.sink.RemindersChanged(engine.remindersLocked())
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	return Snapshot{
		State:     engine.state,
		Total:     engine.total,
		Remaining: engine.remaining,
		Reminders: engine.remindersLocked(),
	}
}

// State returns the current mode.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Total returns the configured duration in seconds.
func (engine *Engine) Total() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.total
}

// Remaining returns the last whole-second remaining value.
func (engine *Engine) Remaining() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remaining
}

// Reminders returns the reminder set sorted by offset, largest first.
func (engine *Engine) Reminders() []Reminder {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remindersLocked()
}

// Start begins or resumes the countdown. A finished or stale run restarts
// from full duration with all reminders re-armed.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.closed || engine.total <= 0 {
		return
	}

	if engine.remaining <= 0 || engine.remaining > engine.total {
		engine.remaining = engine.total
		engine.clearTriggeredLocked()
		engine.sink.DisplayUpdate(engine.remaining)
		engine.sink.LabelRefresh(engine.remaining)
	}

	engine.stopPollingLocked()
	// A second Start while running only replaces the polling cycle.
	if engine.state != StateRunning || engine.scheduledEnd.IsZero() {
		engine.scheduledEnd = engine.clock.Now().Add(time.Duration(engine.remaining) * time.Second)
		engine.state = StateRunning
		engine.sink.StateChanged(StateRunning)
	}

	engine.generation++
	generation := engine.generation
	engine.cancelPoll = engine.scheduler.Every(engine.interval, func() {
		engine.pollTick(generation)
	})

	engine.log.WithFields(logrus.Fields{
		"remaining": engine.remaining,
		"total":     engine.total,
	}).Debug("countdown started")

	engine.tickLocked()
}

// Pause freezes the countdown, rounding the remaining time up to whole seconds.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.state != StateRunning {
		return
	}

	engine.remaining = ceilSeconds(engine.preciseRemainingLocked())
	engine.stopPollingLocked()
	engine.scheduledEnd = time.Time{}
	engine.state = StateIdle

	engine.sink.DisplayUpdate(engine.remaining)
	engine.sink.LabelRefresh(engine.remaining)
	engine.sink.StateChanged(StateIdle)

	engine.log.WithField("remaining", engine.remaining).Debug("countdown paused")
}

// Reset stops any run and returns to idle at full duration.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.resetLocked()
}

// Tick evaluates the countdown against the clock. It is a no-op unless running.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.tickLocked()
}

// Close stops polling; the engine ignores every later operation that would start it.
func (engine *Engine) Close() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.stopPollingLocked()
	engine.closed = true
}

// ConfigureDuration sets the total duration in seconds, prunes reminders that
// no longer fit and resets the timer. It returns the number of pruned reminders.
func (engine *Engine) ConfigureDuration(seconds int) (int, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	return engine.configureDurationLocked(seconds)
}

// ConfigureDurationInput parses a minutes value and applies it as the duration.
func (engine *Engine) ConfigureDurationInput(text string) (int, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	minutes, err := ParseMinutes(text)
	if err != nil || minutes <= 0 || minutes*60 > float64(maxDurationSeconds) {
		return 0, engine.rejectLocked(TopicSettings, errors.Wrapf(ErrInvalidDuration, "minutes %q", text))
	}
	return engine.configureDurationLocked(MinutesToSeconds(minutes))
}

// AddReminder adds a reminder that fires the given number of minutes before
// the end.
func (engine *Engine) AddReminder(minutes float64) (Reminder, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if err := engine.requireConfiguredLocked(); err != nil {
		return Reminder{}, err
	}
	return engine.addMinutesLocked(minutes)
}

// AddReminderInput parses a minutes value typed by the user and adds it.
func (engine *Engine) AddReminderInput(text string) (Reminder, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if err := engine.requireConfiguredLocked(); err != nil {
		return Reminder{}, err
	}
	minutes, err := ParseMinutes(text)
	if err != nil {
		return Reminder{}, engine.rejectLocked(TopicReminders, err)
	}
	return engine.addMinutesLocked(minutes)
}

// AddReminderOffset adds a reminder by exact seconds before the end.
func (engine *Engine) AddReminderOffset(seconds int) (Reminder, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if err := engine.requireConfiguredLocked(); err != nil {
		return Reminder{}, err
	}
	return engine.addOffsetLocked(seconds)
}

// RemoveReminder deletes the reminder with the given id and returns its
// offset. Unknown ids report false.
func (engine *Engine) RemoveReminder(id int) (int, bool) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	for index, reminder := range engine.reminders {
		if reminder.ID != id {
			continue
		}
		engine.reminders = append(engine.reminders[:index], engine.reminders[index+1:]...)
		engine.sink.RemindersChanged(engine.remindersLocked())
		engine.sink.Message(Message{
			Topic: TopicReminders,
			Kind:  MessageSuccess,
			Text:  fmt.Sprintf("Removed reminder: %s left.", reminder.Label()),
		})
		return reminder.Offset, true
	}
	return 0, false
}

func (engine *Engine) pollTick(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	// Late ticks from a cancelled cycle.
	if generation != engine.generation {
		return
	}
	engine.tickLocked()
}

func (engine *Engine) tickLocked() {
	if engine.state != StateRunning || engine.scheduledEnd.IsZero() {
		return
	}

	precise := engine.preciseRemainingLocked()
	display := ceilSeconds(precise)
	if display != engine.remaining {
		engine.remaining = display
		engine.sink.DisplayUpdate(display)
	}
	engine.sink.LabelRefresh(display)

	if precise > 0 {
		engine.checkRemindersLocked(precise)
		return
	}
	engine.finishLocked()
}

func (engine *Engine) checkRemindersLocked(precise time.Duration) {
	fired := false
	for index := range engine.reminders {
		reminder := &engine.reminders[index]
		if reminder.Triggered || precise > reminder.Threshold() {
			continue
		}
		reminder.Triggered = true
		engine.log.WithField("offset", reminder.Offset).Debug("reminder fired")
		engine.sink.ReminderFired(*reminder)
		engine.sink.ReminderAlert()
		fired = true
	}
	if fired {
		engine.sink.RemindersChanged(engine.remindersLocked())
	}
}

func (engine *Engine) finishLocked() {
	engine.stopPollingLocked()
	engine.scheduledEnd = time.Time{}
	engine.remaining = 0
	engine.state = StateEnded

	engine.sink.StateChanged(StateEnded)
	engine.sink.Ended()
	engine.sink.EndAlert()

	engine.log.Debug("countdown ended")
}

func (engine *Engine) resetLocked() {
	engine.stopPollingLocked()
	engine.scheduledEnd = time.Time{}
	engine.remaining = engine.total
	engine.clearTriggeredLocked()
	engine.state = StateIdle

	engine.sink.DisplayUpdate(engine.remaining)
	engine.sink.LabelRefresh(engine.remaining)
	engine.sink.StateChanged(StateIdle)
}

func (engine *Engine) configureDurationLocked(seconds int) (int, error) {
	if seconds <= 0 || int64(seconds) > maxDurationSeconds {
		return 0, engine.rejectLocked(TopicSettings, errors.Wrapf(ErrInvalidDuration, "seconds %d", seconds))
	}

	engine.total = seconds
	kept := engine.reminders[:0]
	for _, reminder := range engine.reminders {
		if reminder.Offset < seconds {
			kept = append(kept, reminder)
		}
	}
	pruned := len(engine.reminders) - len(kept)
	engine.reminders = kept

	engine.resetLocked()
	engine.sink.RemindersChanged(engine.remindersLocked())

	if pruned > 0 {
		engine.sink.Message(Message{
			Topic: TopicReminders,
			Kind:  MessageSuccess,
			Text:  fmt.Sprintf("%d reminder(s) exceeded the new duration and were removed.", pruned),
		})
	}
	engine.sink.Message(Message{
		Topic: TopicSettings,
		Kind:  MessageSuccess,
		Text:  "Applied the new total duration.",
	})

	engine.log.WithFields(logrus.Fields{
		"total":  seconds,
		"pruned": pruned,
	}).Debug("duration configured")

	return pruned, nil
}

func (engine *Engine) requireConfiguredLocked() error {
	if engine.total > 0 {
		return nil
	}
	return engine.rejectLocked(TopicSettings, ErrNotConfigured)
}

func (engine *Engine) addMinutesLocked(minutes float64) (Reminder, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return Reminder{}, engine.rejectLocked(TopicReminders, errors.Wrapf(ErrInvalidInput, "minutes %v", minutes))
	}
	return engine.addOffsetLocked(MinutesToSeconds(minutes))
}

func (engine *Engine) addOffsetLocked(seconds int) (Reminder, error) {
	if err := engine.validateOffsetLocked(seconds); err != nil {
		return Reminder{}, engine.rejectLocked(TopicReminders, err)
	}

	reminder := engine.appendReminderLocked(seconds)
	engine.sink.RemindersChanged(engine.remindersLocked())
	engine.sink.Message(Message{
		Topic: TopicReminders,
		Kind:  MessageSuccess,
		Text:  fmt.Sprintf("Added reminder: %s left.", reminder.Label()),
	})
	return reminder, nil
}

func (engine *Engine) validateOffsetLocked(seconds int) error {
	if seconds <= 0 || seconds >= engine.total {
		return errors.Wrapf(ErrOutOfRange, "offset %d, total %d", seconds, engine.total)
	}
	for _, reminder := range engine.reminders {
		if reminder.Offset == seconds {
			return errors.Wrapf(ErrDuplicateReminder, "offset %d", seconds)
		}
	}
	return nil
}

func (engine *Engine) appendReminderLocked(seconds int) Reminder {
	engine.nextID++
	reminder := Reminder{ID: engine.nextID, Offset: seconds}
	engine.reminders = append(engine.reminders, reminder)
	sortReminders(engine.reminders)
	return reminder
}

func (engine *Engine) rejectLocked(topic Topic, err error) error {
	engine.sink.Message(Message{
		Topic: topic,
		Kind:  MessageError,
		Text:  describeError(err),
		Err:   err,
	})
	return err
}

func (engine *Engine) clearTriggeredLocked() {
	cleared := false
	for index := range engine.reminders {
		if engine.reminders[index].Triggered {
			engine.reminders[index].Triggered = false
			cleared = true
		}
	}
	if cleared {
		engine.sink.RemindersChanged(engine.remindersLocked())
	}
}

func (engine *Engine) stopPollingLocked() {
	if engine.cancelPoll != nil {
		engine.cancelPoll()
		engine.cancelPoll = nil
	}
	engine.generation++
}

func (engine *Engine) preciseRemainingLocked() time.Duration {
	if engine.scheduledEnd.IsZero() {
		return 0
	}
	precise := engine.scheduledEnd.Sub(engine.clock.Now())
	if precise < 0 {
		return 0
	}
	return precise
}

func (engine *Engine) remindersLocked() []Reminder {
	return append([]Reminder(nil), engine.reminders...)
}

func ceilSeconds(value time.Duration) int {
	if value <= 0 {
		return 0
	}
	seconds := value / time.Second
	if value%time.Second != 0 {
		seconds++
	}
	return int(seconds)
}

func describeError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDuration):
		return "Enter a total duration greater than 0."
	case errors.Is(err, ErrNotConfigured):
		return "Set a total duration greater than 0 first."
	case errors.Is(err, ErrInvalidInput):
		return "Enter a valid number of minutes for the reminder."
	case errors.Is(err, ErrOutOfRange):
		return "Reminder must be more than 0 and less than the total duration."
	case errors.Is(err, ErrDuplicateReminder):
		return "This reminder already exists."
	default:
		return err.Error()
	}
}

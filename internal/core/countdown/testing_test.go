package countdown

import (
	"fmt"
	"sync"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}

type manualStream struct {
	fn        func()
	cancelled bool
}

// manualScheduler records polling cycles; tests fire them explicitly.
type manualScheduler struct {
	mu      sync.Mutex
	streams []*manualStream
}

func (scheduler *manualScheduler) Every(_ time.Duration, fn func()) func() {
	stream := &manualStream{fn: fn}
	scheduler.mu.Lock()
	scheduler.streams = append(scheduler.streams, stream)
	scheduler.mu.Unlock()

	return func() {
		scheduler.mu.Lock()
		stream.cancelled = true
		scheduler.mu.Unlock()
	}
}

func (scheduler *manualScheduler) active() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	count := 0
	for _, stream := range scheduler.streams {
		if !stream.cancelled {
			count++
		}
	}
	return count
}

// fire runs every live stream once.
func (scheduler *manualScheduler) fire() {
	scheduler.run(false)
}

// fireAll also runs cancelled streams, as a late ticker would.
func (scheduler *manualScheduler) fireAll() {
	scheduler.run(true)
}

func (scheduler *manualScheduler) run(includeCancelled bool) {
	scheduler.mu.Lock()
	var fns []func()
	for _, stream := range scheduler.streams {
		if includeCancelled || !stream.cancelled {
			fns = append(fns, stream.fn)
		}
	}
	scheduler.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// recorder is a Sink that keeps every notification in order.
type recorder struct {
	mu        sync.Mutex
	events    []string
	displays  []int
	labels    int
	fired     []Reminder
	alerts    int
	ended     int
	endAlerts int
	lists     [][]Reminder
	messages  []Message
	states    []State
}

func (rec *recorder) DisplayUpdate(remaining int) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.displays = append(rec.displays, remaining)
	rec.events = append(rec.events, fmt.Sprintf("display:%d", remaining))
}

func (rec *recorder) LabelRefresh(int) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.labels++
}

func (rec *recorder) StateChanged(state State) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.states = append(rec.states, state)
	rec.events = append(rec.events, "state:"+string(state))
}

func (rec *recorder) ReminderFired(reminder Reminder) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.fired = append(rec.fired, reminder)
	rec.events = append(rec.events, fmt.Sprintf("reminder:%d", reminder.Offset))
}

func (rec *recorder) ReminderAlert() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.alerts++
}

func (rec *recorder) Ended() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.ended++
	rec.events = append(rec.events, "ended")
}

func (rec *recorder) EndAlert() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.endAlerts++
}

func (rec *recorder) RemindersChanged(reminders []Reminder) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.lists = append(rec.lists, reminders)
}

func (rec *recorder) Message(message Message) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.messages = append(rec.messages, message)
}

func (rec *recorder) lastMessage() Message {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.messages) == 0 {
		return Message{}
	}
	return rec.messages[len(rec.messages)-1]
}

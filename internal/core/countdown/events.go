package countdown

// State represents the current engine mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateEnded   State = "ended"
)

// Topic tells the host which message line a Message belongs to.
type Topic string

const (
	TopicSettings  Topic = "settings"
	TopicReminders Topic = "reminders"
)

// MessageKind classifies a Message for styling.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is a human-readable outcome of a configuration operation.
// Err carries the validation error for hosts that localize on their own.
type Message struct {
	Topic Topic
	Kind  MessageKind
	Text  string
	Err   error
}

// Sink receives engine notifications. Hooks are invoked while the engine
// holds its lock, so implementations must not call back into the engine
// synchronously.
type Sink interface {
	DisplayUpdate(remaining int)
	LabelRefresh(remaining int)
	StateChanged(state State)
	ReminderFired(reminder Reminder)
	ReminderAlert()
	Ended()
	EndAlert()
	// RemindersChanged carries the full list sorted by descending offset. It
	// is sent on add, remove and prune, and whenever Triggered flags change.
	RemindersChanged(reminders []Reminder)
	Message(message Message)
}

// Hooks adapts optional callbacks into a Sink.
type Hooks struct {
	OnDisplayUpdate    func(remaining int)
	OnLabelRefresh     func(remaining int)
	OnStateChanged     func(state State)
	OnReminderFired    func(reminder Reminder)
	OnReminderAlert    func()
	OnEnded            func()
	OnEndAlert         func()
	OnRemindersChanged func(reminders []Reminder)
	OnMessage          func(message Message)
}

func (hooks Hooks) DisplayUpdate(remaining int) {
	if hooks.OnDisplayUpdate != nil {
		hooks.OnDisplayUpdate(remaining)
	}
}

func (hooks Hooks) LabelRefresh(remaining int) {
	if hooks.OnLabelRefresh != nil {
		hooks.OnLabelRefresh(remaining)
	}
}

func (hooks Hooks) StateChanged(state State) {
	if hooks.OnStateChanged != nil {
		hooks.OnStateChanged(state)
	}
}

func (hooks Hooks) ReminderFired(reminder Reminder) {
	if hooks.OnReminderFired != nil {
		hooks.OnReminderFired(reminder)
	}
}

func (hooks Hooks) ReminderAlert() {
	if hooks.OnReminderAlert != nil {
		hooks.OnReminderAlert()
	}
}

func (hooks Hooks) Ended() {
	if hooks.OnEnded != nil {
		hooks.OnEnded()
	}
}

func (hooks Hooks) EndAlert() {
	if hooks.OnEndAlert != nil {
		hooks.OnEndAlert()
	}
}

func (hooks Hooks) RemindersChanged(reminders []Reminder) {
	if hooks.OnRemindersChanged != nil {
		hooks.OnRemindersChanged(reminders)
	}
}

func (hooks Hooks) Message(message Message) {
	if hooks.OnMessage != nil {
		hooks.OnMessage(message)
	}
}

// MultiSink fans every notification out to each sink in order.
type MultiSink []Sink

func (sinks MultiSink) DisplayUpdate(remaining int) {
	for _, sink := range sinks {
		sink.DisplayUpdate(remaining)
	}
}

func (sinks MultiSink) LabelRefresh(remaining int) {
	for _, sink := range sinks {
		sink.LabelRefresh(remaining)
	}
}

func (sinks MultiSink) StateChanged(state State) {
	for _, sink := range sinks {
		sink.StateChanged(state)
	}
}

func (sinks MultiSink) ReminderFired(reminder Reminder) {
	for _, sink := range sinks {
		sink.ReminderFired(reminder)
	}
}

func (sinks MultiSink) ReminderAlert() {
	for _, sink := range sinks {
		sink.ReminderAlert()
	}
}

func (sinks MultiSink) Ended() {
	for _, sink := range sinks {
		sink.Ended()
	}
}

func (sinks MultiSink) EndAlert() {
	for _, sink := range sinks {
		sink.EndAlert()
	}
}

func (sinks MultiSink) RemindersChanged(reminders []Reminder) {
	for _, sink := range sinks {
		sink.RemindersChanged(append([]Reminder(nil), reminders...))
	}
}

func (sinks MultiSink) Message(message Message) {
	for _, sink := range sinks {
		sink.Message(message)
	}
}

package preferences

import (
	"time"

	"eventtimer/internal/core/model"
)

// DefaultEventTitle is shown when the user has not named the event.
const DefaultEventTitle = "Event Schedule"

// Settings defines editable user preferences.
type Settings struct {
	EventTitle   string
	Duration     time.Duration
	Reminders    []time.Duration
	TickInterval time.Duration
	Muted        bool
}

// DefaultSettings returns default settings for EventTimer.
func DefaultSettings() Settings {
	return Settings{
		Duration:     model.DefaultDuration,
		TickInterval: model.DefaultTickInterval,
	}
}

// CountdownConfig converts settings to CountdownConfig.
func (settings Settings) CountdownConfig() model.CountdownConfig {
	return model.CountdownConfig{
		Duration:     settings.Duration,
		TickInterval: settings.TickInterval,
		Reminders:    append([]time.Duration(nil), settings.Reminders...),
	}
}

// DisplayTitle returns the event title or the default one.
func (settings Settings) DisplayTitle() string {
	if settings.EventTitle == "" {
		return DefaultEventTitle
	}
	return settings.EventTitle
}

package model

import "time"

// DefaultDuration is the countdown length used when nothing is configured.
const DefaultDuration = 180 * time.Second

// DefaultTickInterval is the polling cadence of a running countdown.
const DefaultTickInterval = 100 * time.Millisecond

// CountdownConfig contains runtime settings for the countdown engine.
type CountdownConfig struct {
	Duration     time.Duration
	TickInterval time.Duration
	Reminders    []time.Duration
}

// DefaultCountdownConfig returns the settings of a fresh install.
func DefaultCountdownConfig() CountdownConfig {
	return CountdownConfig{
		Duration:     DefaultDuration,
		TickInterval: DefaultTickInterval,
	}
}

// DurationSeconds returns the configured duration in whole seconds.
func (config CountdownConfig) DurationSeconds() int {
	return int(config.Duration / time.Second)
}

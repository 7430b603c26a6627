package main

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"eventtimer/internal/core/countdown"
	"eventtimer/internal/ui/preferences"
)

var (
	flagConfig   string
	flagLogLevel = FlagLogLevel{lvl: logrus.InfoLevel}
	flagDuration time.Duration
	flagRemind   []time.Duration
	flagTitle    string
	flagMuted    bool
	flagTick     time.Duration
	flagHeadless bool
)

// FlagLogLevel is a pflag.Value holding a logrus level.
type FlagLogLevel struct {
	lvl logrus.Level
}

func (f FlagLogLevel) String() string {
	return f.lvl.String()
}

func (f *FlagLogLevel) Set(v string) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(v))
	if err != nil {
		return err
	}

	f.lvl = lvl

	return nil
}

func (f FlagLogLevel) Type() string {
	return "log-level"
}

func registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&flagConfig, "config", "", "settings file; defaults to the user config directory")
	flags.Var(&flagLogLevel, "log-level", "log level: trace, debug, info, warn, error")
	flags.DurationVar(&flagDuration, "duration", 0, "total duration for this session, e.g. 3m or 90s")
	flags.DurationSliceVar(&flagRemind, "remind", nil, "reminder before the end, repeatable, e.g. --remind 1m --remind 30s")
	flags.StringVar(&flagTitle, "title", "", "event title for this session")
	flags.BoolVar(&flagMuted, "muted", false, "start with alert sounds muted")
	flags.DurationVar(&flagTick, "tick", 0, "polling interval, between 10ms and 1s")
	flags.BoolVar(&flagHeadless, "headless", false, "run the countdown in the terminal without a window")
}

// applyFlagOverrides returns settings with the explicitly set flags applied.
// Reminders are handled separately so each one is validated by the engine.
func applyFlagOverrides(flags *pflag.FlagSet, settings preferences.Settings) preferences.Settings {
	if flags.Changed("duration") && flagDuration > 0 {
		settings.Duration = flagDuration
	}
	if flags.Changed("title") {
		settings.EventTitle = strings.TrimSpace(flagTitle)
	}
	if flags.Changed("muted") {
		settings.Muted = flagMuted
	}
	if flags.Changed("tick") && flagTick >= 10*time.Millisecond && flagTick <= time.Second {
		settings.TickInterval = flagTick
	}
	if flags.Changed("remind") {
		settings.Reminders = nil
	}
	return settings
}

// addFlagReminders registers --remind values with the engine. Rejected
// values are reported through the engine's sink.
func addFlagReminders(engine *countdown.Engine, reminders []time.Duration) {
	for _, reminder := range reminders {
		_, _ = engine.AddReminderOffset(int(reminder / time.Second))
	}
}

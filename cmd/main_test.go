package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"eventtimer/internal/core/countdown"
	"eventtimer/internal/core/model"
	"eventtimer/internal/storage"
	"eventtimer/internal/ui/preferences"
)

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flagConfig, flagDuration, flagRemind, flagTitle = "", 0, nil, ""
	flagMuted, flagTick, flagHeadless = false, 0, false

	flags := pflag.NewFlagSet("eventtimer", pflag.ContinueOnError)
	registerFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestFlagOverrides(t *testing.T) {
	stored := preferences.DefaultSettings()
	stored.EventTitle = "From file"
	stored.Reminders = []time.Duration{time.Minute}

	flags := parseFlags(t, "--duration", "10m", "--title", " Keynote ", "--muted", "--tick", "250ms", "--remind", "2m", "--remind", "30s")
	settings := applyFlagOverrides(flags, stored)

	require.Equal(t, 10*time.Minute, settings.Duration)
	require.Equal(t, "Keynote", settings.EventTitle)
	require.True(t, settings.Muted)
	require.Equal(t, 250*time.Millisecond, settings.TickInterval)
	require.Nil(t, settings.Reminders)
	require.Equal(t, []time.Duration{2 * time.Minute, 30 * time.Second}, flagRemind)
	require.Equal(t, "From file", stored.EventTitle)
}

func TestFlagOverridesIgnoreUnsetAndInvalid(t *testing.T) {
	stored := preferences.DefaultSettings()
	stored.Reminders = []time.Duration{time.Minute}

	flags := parseFlags(t, "--tick", "5s")
	settings := applyFlagOverrides(flags, stored)

	require.Equal(t, model.DefaultTickInterval, settings.TickInterval)
	require.Equal(t, model.DefaultDuration, settings.Duration)
	require.Equal(t, []time.Duration{time.Minute}, settings.Reminders)
}

func TestLogLevelFlag(t *testing.T) {
	flags := parseFlags(t, "--log-level", "debug")
	require.Equal(t, "debug", flags.Lookup("log-level").Value.String())

	var level FlagLogLevel
	require.Error(t, level.Set("loud"))
}

func TestAddFlagReminders(t *testing.T) {
	var messages []countdown.Message
	engine := countdown.New(model.CountdownConfig{Duration: 3 * time.Minute}, countdown.Options{
		Sink: countdown.Hooks{OnMessage: func(message countdown.Message) {
			messages = append(messages, message)
		}},
	})
	defer engine.Close()

	addFlagReminders(engine, []time.Duration{time.Minute, 5 * time.Minute, time.Minute})

	reminders := engine.Reminders()
	require.Len(t, reminders, 1)
	require.Equal(t, 60, reminders[0].Offset)
	require.Len(t, messages, 3)
	require.Equal(t, countdown.MessageError, messages[1].Kind)
	require.ErrorIs(t, messages[1].Err, countdown.ErrOutOfRange)
	require.ErrorIs(t, messages[2].Err, countdown.ErrDuplicateReminder)
}

func TestPruneReminders(t *testing.T) {
	stored := []time.Duration{2 * time.Minute, time.Minute, 30 * time.Second}
	require.Equal(t, []time.Duration{30 * time.Second}, pruneReminders(stored, time.Minute))
	require.Len(t, stored, 3)
}

func TestBrokenSettingsFileIsNeverOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	broken := []byte("duration_seconds: [oops")
	require.NoError(t, os.WriteFile(path, broken, 0o644))

	log := logrus.New()
	log.SetOutput(io.Discard)

	stored, writable := loadStoredSettings(path, log)
	require.False(t, writable)
	require.Equal(t, preferences.DefaultSettings(), stored)

	session := desktopSession{configPath: path, writable: writable, stored: stored, log: log}
	session.stored.Muted = true
	session.save()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, broken, content)
}

func TestMissingSettingsFileIsCreatedOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EventTimer", "settings.yaml")

	log := logrus.New()
	log.SetOutput(io.Discard)

	stored, writable := loadStoredSettings(path, log)
	require.True(t, writable)

	session := desktopSession{configPath: path, writable: writable, stored: stored, log: log}
	session.stored.EventTitle = "Retro"
	session.save()

	loaded, err := storage.LoadSettingsFrom(path)
	require.NoError(t, err)
	require.Equal(t, "Retro", loaded.EventTitle)
}

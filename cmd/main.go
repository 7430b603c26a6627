package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"eventtimer/internal/core/countdown"
	"eventtimer/internal/logging"
	"eventtimer/internal/storage"
	"eventtimer/internal/ui/preferences"
)

const (
	appName = "EventTimer"
	appID   = "com.eventtimer.app"
)

var rootCmd = &cobra.Command{
	Use:           "eventtimer",
	Short:         "countdown timer for events, with reminders before the end",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logging.NewLogger(appName, flagLogLevel.lvl)

		configPath := flagConfig
		if configPath == "" {
			resolved, err := storage.ResolveConfigPath(appName)
			if err != nil {
				log.WithError(err).Warn("settings path unavailable; preferences will not be saved")
			}
			configPath = resolved
		}

		stored, writable := loadStoredSettings(configPath, log)
		settings := applyFlagOverrides(cmd.Flags(), stored)

		log.WithFields(logrus.Fields{
			"config":    configPath,
			"duration":  settings.Duration,
			"reminders": len(settings.Reminders) + len(flagRemind),
			"tick":      settings.TickInterval,
		}).Debug("settings loaded")

		if flagHeadless {
			return runHeadless(cmd.Context(), settings, log)
		}
		return runDesktop(desktopSession{
			configPath: configPath,
			writable:   writable,
			stored:     stored,
			settings:   settings,
			log:        log,
		})
	},
}

func init() {
	registerFlags(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

// loadStoredSettings reads the settings file. It reports the file as not
// writable when it exists but cannot be read, so edits never replace it
// with defaults.
func loadStoredSettings(configPath string, log *logrus.Logger) (preferences.Settings, bool) {
	if configPath == "" {
		return preferences.DefaultSettings(), false
	}
	stored, err := storage.LoadSettingsFrom(configPath)
	if err != nil {
		log.WithError(err).WithField("path", configPath).Warn("load settings; changes will not be saved")
		return stored, false
	}
	return stored, true
}

// logSink reports countdown milestones and rejected input.
func logSink(log *logrus.Entry) countdown.Sink {
	return countdown.Hooks{
		OnStateChanged: func(state countdown.State) {
			log.WithField("state", state).Debug("state changed")
		},
		OnReminderFired: func(reminder countdown.Reminder) {
			log.WithField("offset", reminder.Offset).Info("reminder")
		},
		OnEnded: func() {
			log.Info("countdown ended")
		},
		OnMessage: func(message countdown.Message) {
			if message.Err != nil {
				log.WithError(message.Err).WithField("topic", message.Topic).Debug("input rejected")
			}
		},
	}
}

package main

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"eventtimer/internal/audio"
	"eventtimer/internal/core/countdown"
	"eventtimer/internal/platform"
	"eventtimer/internal/storage"
	"eventtimer/internal/ui/flash"
	"eventtimer/internal/ui/preferences"
	"eventtimer/internal/ui/timerwindow"
	"eventtimer/internal/ui/tray"
	"eventtimer/resources"
)

type desktopSession struct {
	configPath string
	writable   bool
	// stored mirrors the settings file; flag overrides never reach it.
	stored   preferences.Settings
	settings preferences.Settings
	log      *logrus.Logger
}

func (session *desktopSession) save() {
	if !session.writable {
		return
	}
	if err := storage.SaveSettingsTo(session.configPath, session.stored); err != nil {
		session.log.WithError(err).Warn("save settings")
	}
}

func runDesktop(session desktopSession) error {
	log := session.log

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.WithError(err).Info("single instance")
		if err := platform.ActivateRunning(appName); err != nil {
			log.WithError(err).Debug("activate running instance")
		}
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.StateIcon(countdown.StateIdle))

	output, err := audio.NewOtoOutput()
	if err != nil {
		log.WithError(err).Warn("audio unavailable; alerts will be silent")
		output = nil
	}
	player, err := audio.NewPlayer(output, log.WithField("component", "audio"))
	if err != nil {
		return errors.Wrap(err, "create alert player")
	}
	defer player.Close()
	player.SetMuted(session.settings.Muted)

	var (
		engine      *countdown.Engine
		window      *timerwindow.Window
		trayManager *tray.Manager
	)

	startPause := func() {
		switch engine.State() {
		case countdown.StateRunning:
			engine.Pause()
		case countdown.StateEnded:
			window.ClearVisualState()
			engine.Start()
		default:
			engine.Start()
		}
	}
	reset := func() {
		engine.Reset()
		window.ClearVisualState()
	}
	toggleMute := func() {
		muted := player.ToggleMuted()
		session.settings.Muted = muted
		session.stored.Muted = muted
		window.SetMuted(muted)
		if trayManager != nil {
			trayManager.SetMuted(muted)
		}
		session.save()
	}

	window = timerwindow.New(fyneApp, session.settings, flash.DefaultConfig(), timerwindow.Callbacks{
		OnStartPause: startPause,
		OnReset:      reset,
		OnToggleMute: toggleMute,
		OnAddReminder: func(minutes string) {
			if _, err := engine.AddReminderInput(minutes); err == nil {
				window.ClearReminderInput()
			}
		},
		OnRemoveReminder: func(id int) {
			engine.RemoveReminder(id)
		},
		OnTitleChanged: func(title string) {
			session.settings.EventTitle = title
			session.stored.EventTitle = title
			session.save()
		},
		OnApplyDuration: func(minutes string) {
			if _, err := engine.ConfigureDurationInput(minutes); err != nil {
				return
			}
			total := engine.Total()
			session.settings.Duration = time.Duration(total) * time.Second
			session.stored.Duration = session.settings.Duration
			session.stored.Reminders = pruneReminders(session.stored.Reminders, session.stored.Duration)
			window.SetTotal(total)
			window.ClearVisualState()
			session.save()
		},
	})

	sinks := countdown.MultiSink{
		window,
		countdown.Hooks{
			OnReminderAlert: player.ReminderAlert,
			OnEndAlert:      player.EndAlert,
		},
		logSink(log.WithField("component", "timer")),
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:       window.Show,
			OnStartPause: startPause,
			OnReset:      reset,
			OnToggleMute: toggleMute,
			OnQuit:       fyneApp.Quit,
			OnStateChange: func(state countdown.State) {
				desktopApp.SetSystemTrayIcon(resources.StateIcon(state))
			},
		})
		trayManager.SetMuted(session.settings.Muted)
		desktopApp.SetSystemTrayIcon(resources.StateIcon(countdown.StateIdle))
		sinks = append(sinks, trayManager)
		window.SetCloseIntercept(window.Hide)
	} else {
		log.Debug("system tray unsupported on this platform")
	}

	engine = countdown.New(session.settings.CountdownConfig(), countdown.Options{
		TickInterval: session.settings.TickInterval,
		Sink:         sinks,
		Logger:       log.WithField("component", "countdown"),
	})
	defer engine.Close()
	addFlagReminders(engine, flagRemind)

	guard.Serve(func() {
		fyne.Do(window.Show)
	})

	engine.Publish()
	window.Show()
	fyneApp.Run()

	return nil
}

// pruneReminders drops presets that no longer fit inside total.
func pruneReminders(reminders []time.Duration, total time.Duration) []time.Duration {
	kept := reminders[:0:0]
	for _, reminder := range reminders {
		if reminder < total {
			kept = append(kept, reminder)
		}
	}
	return kept
}

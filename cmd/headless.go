package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"eventtimer/internal/audio"
	"eventtimer/internal/core/countdown"
	"eventtimer/internal/headless"
	"eventtimer/internal/ui/preferences"
)

func runHeadless(ctx context.Context, settings preferences.Settings, log *logrus.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	player, err := audio.NewPlayer(audio.NewBellOutput(os.Stdout), log.WithField("component", "audio"))
	if err != nil {
		return errors.Wrap(err, "create alert player")
	}
	player.SetMuted(settings.Muted)
	defer func() {
		// The end tone rings twice; let it finish before exiting.
		if err := player.CloseWait(2 * time.Second); err != nil {
			log.WithError(err).Debug("alert player release")
		}
	}()

	terminal := headless.NewTerminal(os.Stdout, settings.DisplayTitle())
	engine := countdown.New(settings.CountdownConfig(), countdown.Options{
		TickInterval: settings.TickInterval,
		Logger:       log.WithField("component", "countdown"),
		Sink: countdown.MultiSink{
			terminal,
			countdown.Hooks{
				OnReminderAlert: player.ReminderAlert,
				OnEndAlert:      player.EndAlert,
			},
			logSink(log.WithField("component", "headless")),
		},
	})
	addFlagReminders(engine, flagRemind)

	err = headless.Run(ctx, engine, terminal)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

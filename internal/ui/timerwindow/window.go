package timerwindow

import (
	"context"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"eventtimer/internal/core/countdown"
	"eventtimer/internal/ui/flash"
	"eventtimer/internal/ui/preferences"
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnStartPause     func()
	OnReset          func()
	OnToggleMute     func()
	OnAddReminder    func(minutes string)
	OnRemoveReminder func(id int)
	OnTitleChanged   func(title string)
	OnApplyDuration  func(minutes string)
}

// Window is the main countdown window. It implements countdown.Sink; every
// hook hops onto the fyne thread before touching widgets.
type Window struct {
	app       fyne.App
	window    fyne.Window
	config    flash.Config
	callbacks Callbacks
	state     view

	eventTitle      *canvas.Text
	clock           *canvas.Text
	hint            *widget.Label
	startButton     *widget.Button
	resetButton     *widget.Button
	muteButton      *widget.Button
	reminderEntry   *widget.Entry
	reminderList    *fyne.Container
	reminderMessage *widget.Label
	settings        *preferences.Panel

	reminderFlash   *flash.Presenter
	reminderMsgHold *flash.Presenter
	settingsMsgHold *flash.Presenter
}

var _ countdown.Sink = (*Window)(nil)

// New creates the countdown window.
func New(app fyne.App, settings preferences.Settings, config flash.Config, callbacks Callbacks) *Window {
	window := app.NewWindow(defaultWindowLabel)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	win := &Window{
		app:             app,
		window:          window,
		config:          config,
		callbacks:       callbacks,
		reminderFlash:   flash.New(),
		reminderMsgHold: flash.New(),
		settingsMsgHold: flash.New(),
		state: view{
			title:     settings.DisplayTitle(),
			remaining: settings.CountdownConfig().DurationSeconds(),
			total:     settings.CountdownConfig().DurationSeconds(),
			state:     countdown.StateIdle,
			muted:     settings.Muted,
		},
	}

	win.eventTitle = canvas.NewText(win.state.title, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	win.eventTitle.Alignment = fyne.TextAlignCenter
	win.eventTitle.TextStyle = fyne.TextStyle{Bold: true}
	win.eventTitle.TextSize = 24

	win.clock = canvas.NewText(win.state.clockText(), win.state.clockColor())
	win.clock.Alignment = fyne.TextAlignCenter
	win.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	win.clock.TextSize = 96

	win.hint = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	win.startButton = widget.NewButton(win.state.startLabel(), func() {
		if win.callbacks.OnStartPause != nil {
			win.callbacks.OnStartPause()
		}
	})
	win.startButton.Importance = widget.HighImportance
	win.resetButton = widget.NewButton("Reset", func() {
		if win.callbacks.OnReset != nil {
			win.callbacks.OnReset()
		}
	})
	win.muteButton = widget.NewButton(win.state.muteLabel(), func() {
		if win.callbacks.OnToggleMute != nil {
			win.callbacks.OnToggleMute()
		}
	})

	win.reminderEntry = widget.NewEntry()
	win.reminderEntry.SetPlaceHolder("Minutes before the end")
	win.reminderEntry.OnSubmitted = func(string) {
		win.submitReminder()
	}
	addButton := widget.NewButton("Add", win.submitReminder)

	win.reminderList = container.NewVBox()
	win.reminderMessage = widget.NewLabel(defaultReminderTip)
	win.reminderMessage.Wrapping = fyne.TextWrapWord

	win.settings = preferences.NewPanel(settings, preferences.Callbacks{
		OnTitleChanged: func(title string) {
			win.setEventTitle(title)
			if win.callbacks.OnTitleChanged != nil {
				win.callbacks.OnTitleChanged(title)
			}
		},
		OnApplyDuration: func(minutes string) {
			if win.callbacks.OnApplyDuration != nil {
				win.callbacks.OnApplyDuration(minutes)
			}
		},
	})

	controls := container.NewHBox(layout.NewSpacer(), win.startButton, win.resetButton, win.muteButton, layout.NewSpacer())
	stage := container.NewVBox(win.eventTitle, win.clock, win.hint, controls)

	reminders := container.NewVBox(
		widget.NewLabelWithStyle("Reminders", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, container.NewHBox(widget.NewLabel("min"), addButton), win.reminderEntry),
		win.reminderMessage,
		win.reminderList,
	)

	side := container.NewVBox(win.settings.Content(), widget.NewSeparator(), reminders)
	content := container.NewBorder(stage, nil, nil, nil, container.NewVScroll(side))

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(560, 640))

	win.render()
	return win
}

// Show displays the window.
func (win *Window) Show() {
	win.window.Show()
	win.window.RequestFocus()
}

// SetCloseIntercept replaces the default close behaviour.
func (win *Window) SetCloseIntercept(handler func()) {
	win.window.SetCloseIntercept(handler)
}

// Hide hides the window.
func (win *Window) Hide() {
	win.window.Hide()
}

// SetMuted updates the mute button.
func (win *Window) SetMuted(muted bool) {
	fyne.Do(func() {
		win.state.muted = muted
		win.muteButton.SetText(win.state.muteLabel())
	})
}

// ClearVisualState drops reminder and ended highlights, as on reset.
func (win *Window) ClearVisualState() {
	fyne.Do(func() {
		win.reminderFlash.Stop()
		win.state.highlight = highlightNone
		win.state.hint = ""
		win.render()
	})
}

func (win *Window) DisplayUpdate(remaining int) {
	fyne.Do(func() {
		win.state.remaining = remaining
		win.renderClock()
	})
}

func (win *Window) LabelRefresh(remaining int) {
	fyne.Do(func() {
		win.state.remaining = remaining
		win.window.SetTitle(win.state.windowTitle())
	})
}

func (win *Window) StateChanged(state countdown.State) {
	fyne.Do(func() {
		win.state.state = state
		if state == countdown.StateRunning && win.state.highlight == highlightEnded {
			win.state.highlight = highlightNone
			win.state.hint = ""
		}
		win.render()
	})
}

func (win *Window) ReminderFired(reminder countdown.Reminder) {
	hint := reminderHint(reminder)
	fyne.Do(func() {
		win.reminderFlash.Show(context.Background(), win.config.ReminderHold, func() {
			win.state.highlight = highlightReminder
			win.state.hint = hint
			win.render()
		}, func() {
			fyne.Do(func() {
				if win.state.highlight == highlightReminder {
					win.state.highlight = highlightNone
				}
				if win.state.hint == hint {
					win.state.hint = ""
				}
				win.render()
			})
		})
		win.notify(hint)
	})
}

func (win *Window) ReminderAlert() {}

func (win *Window) Ended() {
	fyne.Do(func() {
		win.reminderFlash.Stop()
		win.state.highlight = highlightEnded
		win.state.hint = endedHint
		win.render()
		win.notify(endedHint)
	})
}

func (win *Window) EndAlert() {}

func (win *Window) RemindersChanged(reminders []countdown.Reminder) {
	fyne.Do(func() {
		win.renderReminders(reminders)
	})
}

func (win *Window) Message(message countdown.Message) {
	fyne.Do(func() {
		isError := message.Kind == countdown.MessageError
		switch message.Topic {
		case countdown.TopicSettings:
			win.settingsMsgHold.Show(context.Background(), win.config.MessageHold, func() {
				win.settings.SetMessage(message.Text, isError)
			}, func() {
				fyne.Do(func() {
					win.settings.SetMessage("", false)
				})
			})
		case countdown.TopicReminders:
			win.reminderMsgHold.Show(context.Background(), win.config.MessageHold, func() {
				win.setReminderMessage(message.Text, isError)
			}, func() {
				fyne.Do(func() {
					win.setReminderMessage("", false)
				})
			})
		}
	})
}

// SetTotal records the configured duration for button availability.
func (win *Window) SetTotal(total int) {
	fyne.Do(func() {
		win.state.total = total
		win.settings.SetDuration(time.Duration(total) * time.Second)
		win.render()
	})
}

func (win *Window) submitReminder() {
	if win.callbacks.OnAddReminder == nil {
		return
	}
	text := win.reminderEntry.Text
	win.callbacks.OnAddReminder(text)
}

// ClearReminderInput empties the reminder entry after a successful add.
func (win *Window) ClearReminderInput() {
	fyne.Do(func() {
		win.reminderEntry.SetText("")
	})
}

func (win *Window) setEventTitle(title string) {
	win.state.title = title
	if win.state.title == "" {
		win.state.title = preferences.DefaultEventTitle
	}
	win.eventTitle.Text = win.state.title
	win.eventTitle.Refresh()
	win.window.SetTitle(win.state.windowTitle())
}

func (win *Window) setReminderMessage(text string, isError bool) {
	if text == "" {
		win.reminderMessage.Importance = widget.MediumImportance
		win.reminderMessage.SetText(defaultReminderTip)
		return
	}
	win.reminderMessage.Importance = widget.SuccessImportance
	if isError {
		win.reminderMessage.Importance = widget.DangerImportance
	}
	win.reminderMessage.SetText(text)
}

func (win *Window) render() {
	win.renderClock()
	win.hint.SetText(win.state.hint)
	win.startButton.SetText(win.state.startLabel())
	win.muteButton.SetText(win.state.muteLabel())
	if win.state.controlsEnabled() {
		win.startButton.Enable()
		win.resetButton.Enable()
	} else {
		win.startButton.Disable()
		win.resetButton.Disable()
	}
	win.window.SetTitle(win.state.windowTitle())
}

func (win *Window) renderClock() {
	win.clock.Text = win.state.clockText()
	win.clock.Color = win.state.clockColor()
	win.clock.Refresh()
}

func (win *Window) renderReminders(reminders []countdown.Reminder) {
	win.reminderList.RemoveAll()
	if len(reminders) == 0 {
		win.reminderList.Add(widget.NewLabelWithStyle("No reminders yet.", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}))
		return
	}
	for _, reminder := range reminders {
		id := reminder.ID
		remove := widget.NewButton("Remove", func() {
			if win.callbacks.OnRemoveReminder != nil {
				win.callbacks.OnRemoveReminder(id)
			}
		})
		remove.Importance = widget.LowImportance
		win.reminderList.Add(container.NewBorder(nil, nil, nil, remove, widget.NewLabel(reminderItemText(reminder))))
	}
}

func (win *Window) notify(text string) {
	win.app.SendNotification(fyne.NewNotification(win.state.title, text))
}

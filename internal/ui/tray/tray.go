package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"eventtimer/internal/core/countdown"
)

const menuTitle = "EventTimer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStartPause  func()
	OnReset       func()
	OnToggleMute  func()
	OnQuit        func()
	OnStateChange func(state countdown.State)
}

// Manager handles system tray state. It implements countdown.Sink through
// the embedded Hooks and only reacts to clock and state changes.
type Manager struct {
	countdown.Hooks

	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	resetItem  *fyne.MenuItem
	muteItem   *fyne.MenuItem
	showItem   *fyne.MenuItem
	quitItem   *fyne.MenuItem
	state      countdown.State
	remaining  int
	muted      bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		state:     countdown.StateIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.showItem = fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})
	manager.startItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnStartPause != nil {
			manager.callbacks.OnStartPause()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	manager.muteItem = fyne.NewMenuItem("Mute", func() {
		if manager.callbacks.OnToggleMute != nil {
			manager.callbacks.OnToggleMute()
		}
	})
	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.quitItem.IsQuit = true

	manager.Hooks = countdown.Hooks{
		OnDisplayUpdate: func(remaining int) {
			fyne.Do(func() {
				manager.remaining = remaining
				manager.refreshStatus()
			})
		},
		OnStateChanged: func(state countdown.State) {
			fyne.Do(func() {
				manager.SetState(state)
			})
		},
	}

	manager.refreshMenu()
	return manager
}

// SetState updates the run state shown in the menu.
func (manager *Manager) SetState(state countdown.State) {
	manager.state = state
	manager.startItem.Label = startLabel(state)
	manager.refreshStatus()
	if manager.callbacks.OnStateChange != nil {
		manager.callbacks.OnStateChange(state)
	}
}

// SetMuted updates the mute item label.
func (manager *Manager) SetMuted(muted bool) {
	manager.muted = muted
	if muted {
		manager.muteItem.Label = "Unmute"
	} else {
		manager.muteItem.Label = "Mute"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = StatusText(manager.remaining, manager.state)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
			manager.statusItem,
			manager.showItem,
			fyne.NewMenuItemSeparator(),
			manager.startItem,
			manager.resetItem,
			manager.muteItem,
			fyne.NewMenuItemSeparator(),
			manager.quitItem,
		))
	}
}

// StatusText renders the tray status line.
func StatusText(remaining int, state countdown.State) string {
	status := countdown.FormatClock(remaining)
	switch state {
	case countdown.StateEnded:
		status = fmt.Sprintf("%s (ended)", status)
	case countdown.StateIdle:
		status = fmt.Sprintf("%s (paused)", status)
	}
	return fmt.Sprintf("Status: %s", status)
}

func startLabel(state countdown.State) string {
	if state == countdown.StateRunning {
		return "Pause"
	}
	return "Start"
}

package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines settings panel handlers.
type Callbacks struct {
	OnTitleChanged  func(title string)
	OnApplyDuration func(minutes string)
}

// Panel holds the event title and total duration controls.
type Panel struct {
	content   fyne.CanvasObject
	callbacks Callbacks
	title     *widget.Entry
	duration  *widget.Entry
	apply     *widget.Button
	message   *widget.Label
}

// NewPanel creates the settings panel.
func NewPanel(settings Settings, callbacks Callbacks) *Panel {
	title := widget.NewEntry()
	title.SetPlaceHolder(DefaultEventTitle)
	title.SetText(settings.EventTitle)

	duration := widget.NewEntry()
	duration.SetText(formatMinutes(settings.Duration))

	message := widget.NewLabel("")
	message.Wrapping = fyne.TextWrapWord

	panel := &Panel{
		callbacks: callbacks,
		title:     title,
		duration:  duration,
		message:   message,
	}

	panel.apply = widget.NewButton("Apply", panel.handleApply)
	duration.OnSubmitted = func(string) {
		panel.handleApply()
	}
	title.OnChanged = func(value string) {
		if panel.callbacks.OnTitleChanged != nil {
			panel.callbacks.OnTitleChanged(strings.TrimSpace(value))
		}
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Event", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Title"), nil, title),
		container.NewBorder(nil, nil, widget.NewLabel("Total duration"), container.NewHBox(widget.NewLabel("min"), layout.NewSpacer(), panel.apply), duration),
		message,
	)
	panel.content = form

	return panel
}

// Content returns the panel's canvas object.
func (panel *Panel) Content() fyne.CanvasObject {
	return panel.content
}

// SetMessage shows a settings outcome; empty text clears it.
func (panel *Panel) SetMessage(text string, isError bool) {
	panel.message.Importance = widget.MediumImportance
	if isError {
		panel.message.Importance = widget.DangerImportance
	} else if text != "" {
		panel.message.Importance = widget.SuccessImportance
	}
	panel.message.SetText(text)
}

// SetDuration shows the applied total duration in minutes.
func (panel *Panel) SetDuration(duration time.Duration) {
	panel.duration.SetText(formatMinutes(duration))
}

func (panel *Panel) handleApply() {
	if panel.callbacks.OnApplyDuration != nil {
		panel.callbacks.OnApplyDuration(panel.duration.Text)
	}
}

func formatMinutes(duration time.Duration) string {
	return strconv.FormatFloat(duration.Minutes(), 'f', -1, 64)
}

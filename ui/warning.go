package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

// ShowWarning displays message in a standalone dialog and blocks until the
// user dismisses it. Used for settings the widget cannot start with.
func ShowWarning(message string) {
	a := app.NewWithID(appID)
	win := a.NewWindow("Warning")
	win.Resize(fyne.NewSize(360, 160))

	d := dialog.NewInformation("Warning", message, win)
	d.SetOnClosed(a.Quit)
	win.SetOnClosed(a.Quit)

	win.Show()
	d.Show()
	a.Run()
}

//go:build !windows

package ui

// Fyne exposes no window placement, stacking or opacity controls, so these
// are only implemented natively on Windows.

const nativeWindowSupported = false

func setWindowTopmost(bool) {}

func windowPosition() (x, y int, ok bool) { return 0, 0, false }

func cursorPosition() (x, y int, ok bool) { return 0, 0, false }

func moveWindow(int, int) {}

func setWindowOpacity(float64) {}

func hideFromTaskbar() {}

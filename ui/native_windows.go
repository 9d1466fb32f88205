//go:build windows

package ui

import (
	"os"
	"sync"
	"syscall"
	"unsafe"
)

var (
	user32                     = syscall.NewLazyDLL("user32.dll")
	procEnumWindows            = user32.NewProc("EnumWindows")
	procIsWindowVisible        = user32.NewProc("IsWindowVisible")
	procGetWindowThreadProcID  = user32.NewProc("GetWindowThreadProcessId")
	procSetWindowPos           = user32.NewProc("SetWindowPos")
	procGetWindowRect          = user32.NewProc("GetWindowRect")
	procGetWindowLong          = user32.NewProc("GetWindowLongW")
	procSetWindowLong          = user32.NewProc("SetWindowLongW")
	procSetLayeredWindowAttrib = user32.NewProc("SetLayeredWindowAttributes")
	procShowWindow             = user32.NewProc("ShowWindow")
	procIsWindow               = user32.NewProc("IsWindow")
	procGetCursorPos           = user32.NewProc("GetCursorPos")
)

const (
	hwndTopmost    = ^uintptr(0)     // -1: HWND_TOPMOST
	hwndNotTopmost = ^uintptr(0) - 1 // -2: HWND_NOTOPMOST
	swpNoSize      = uintptr(0x0001)
	swpNoMove      = uintptr(0x0002)
	swpNoZOrder    = uintptr(0x0004)
	swpNoActivate  = uintptr(0x0010)

	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000
	wsExLayered    = 0x00080000
	lwaAlpha       = uintptr(0x2)

	swHide   = uintptr(0)
	swShowNA = uintptr(8)
)

// GWL_EXSTYLE is -20; held in a variable so the conversion sign-extends.
var gwlExStyle int32 = -20

type rect struct {
	Left, Top, Right, Bottom int32
}

type point struct {
	X, Y int32
}

const nativeWindowSupported = true

// The runtime never frees callbacks and caps how many can exist, so the
// EnumWindows callback is created once and the result is cached.
var (
	hwndMu     sync.Mutex
	cachedHWND uintptr
	enumFound  uintptr
	processID  = uint32(os.Getpid())
	enumProc   = syscall.NewCallback(enumWindowsProc)
)

// enumWindowsProc stops at the first visible window of this process. It
// runs with hwndMu held.
func enumWindowsProc(hwnd uintptr, _ uintptr) uintptr {
	var procID uint32
	procGetWindowThreadProcID.Call(hwnd, uintptr(unsafe.Pointer(&procID)))
	if procID != processID {
		return 1
	}
	vis, _, _ := procIsWindowVisible.Call(hwnd)
	if vis == 0 {
		return 1
	}
	enumFound = hwnd
	return 0
}

// findMainWindowHWND returns the widget's window, enumerating only when no
// live handle is cached.
func findMainWindowHWND() uintptr {
	hwndMu.Lock()
	defer hwndMu.Unlock()

	if cachedHWND != 0 {
		if ok, _, _ := procIsWindow.Call(cachedHWND); ok != 0 {
			return cachedHWND
		}
		cachedHWND = 0
	}

	enumFound = 0
	procEnumWindows.Call(enumProc, 0)
	cachedHWND = enumFound
	return cachedHWND
}

func setWindowTopmost(topmost bool) {
	hwnd := findMainWindowHWND()
	if hwnd == 0 {
		return
	}
	insert := hwndNotTopmost
	if topmost {
		insert = hwndTopmost
	}
	procSetWindowPos.Call(
		hwnd,
		insert,
		0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoActivate,
	)
}

// windowPosition returns the top-left corner of the window in screen pixels.
func windowPosition() (x, y int, ok bool) {
	hwnd := findMainWindowHWND()
	if hwnd == 0 {
		return 0, 0, false
	}
	var r rect
	ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return 0, 0, false
	}
	return int(r.Left), int(r.Top), true
}

// cursorPosition returns the mouse pointer in screen pixels.
func cursorPosition() (x, y int, ok bool) {
	var p point
	ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if ret == 0 {
		return 0, 0, false
	}
	return int(p.X), int(p.Y), true
}

func moveWindow(x, y int) {
	hwnd := findMainWindowHWND()
	if hwnd == 0 {
		return
	}
	procSetWindowPos.Call(
		hwnd,
		0,
		uintptr(int32(x)), uintptr(int32(y)), 0, 0,
		swpNoSize|swpNoZOrder|swpNoActivate,
	)
}

// setWindowOpacity makes the window layered and applies alpha in [0, 1].
func setWindowOpacity(alpha float64) {
	hwnd := findMainWindowHWND()
	if hwnd == 0 {
		return
	}
	style, _, _ := procGetWindowLong.Call(hwnd, uintptr(gwlExStyle))
	procSetWindowLong.Call(hwnd, uintptr(gwlExStyle), style|wsExLayered)
	procSetLayeredWindowAttrib.Call(hwnd, 0, uintptr(byte(alpha*255)), lwaAlpha)
}

// hideFromTaskbar turns the window into a tool window. The window has to be
// hidden and shown again for the taskbar to drop its button.
func hideFromTaskbar() {
	hwnd := findMainWindowHWND()
	if hwnd == 0 {
		return
	}
	style, _, _ := procGetWindowLong.Call(hwnd, uintptr(gwlExStyle))
	style = (style | wsExToolWindow) &^ wsExAppWindow
	procShowWindow.Call(hwnd, swHide)
	procSetWindowLong.Call(hwnd, uintptr(gwlExStyle), style)
	procShowWindow.Call(hwnd, swShowNA)
}

package ui

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"resin_widget/config"
	"resin_widget/logging"
)

const (
	appID       = "com.resinwidget"
	windowTitle = "Resin Widget"

	resinIcon         = "resin.png"
	checkinIcon       = "checkin.png"
	realmCurrencyIcon = "realmCurr.png"

	checkinURL = "https://act.hoyolab.com/ys/event/signin-sea-v3/index.html?act_id=e202102251931481"
)

var defaultWindowSize = fyne.NewSize(400, 300)

// Deps wires the widget to its settings and data source.
type Deps struct {
	Settings   *config.Settings
	NewFetcher func(config.Auth) NotesFetcher
	Interval   time.Duration
	Logger     *slog.Logger
}

type state struct {
	mu     sync.Mutex
	app    fyne.App
	win    fyne.Window
	cfg    *config.Settings
	logger *slog.Logger

	newFetcher func(config.Auth) NotesFetcher
	poller     *poller
	bg         *background
	drag       dragMove

	// Data bindings
	resin         binding.String
	dailyReward   binding.String
	realmCurrency binding.String
}

func newState(a fyne.App, win fyne.Window, d Deps) *state {
	s := &state{
		app:           a,
		win:           win,
		cfg:           d.Settings,
		logger:        d.Logger,
		newFetcher:    d.NewFetcher,
		bg:            newBackground(),
		resin:         binding.NewString(),
		dailyReward:   binding.NewString(),
		realmCurrency: binding.NewString(),
	}
	s.poller = newPoller(d.NewFetcher(d.Settings.Auth), d.Settings.Auth, d.Interval, d.Logger, func(snap Snapshot) {
		fyne.Do(func() { s.applySnapshot(snap) })
	})
	s.poller.enabled = func() bool { return s.currentDisplay().ShowNotes }
	s.bg.onDrag = s.dragged
	s.bg.onDragEnd = s.dragEnded
	return s
}

// Run creates and shows the widget window. It blocks until the window is
// closed.
func Run(ctx context.Context, d Deps) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := app.NewWithID(appID)
	win := newWindow(a, d.Settings.Display)

	s := newState(a, win, d)
	s.applyDisplay(d.Settings.Display)

	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			win.Close()
		}
	})
	win.SetOnClosed(func() {
		s.savePosition()
		cancel()
	})

	win.Show()

	// Native attributes need the window to exist on screen first.
	go func() {
		time.Sleep(300 * time.Millisecond)
		s.applyNative(d.Settings)
	}()

	go s.watchSettings(ctx)

	if !d.Settings.Display.ShowNotes {
		s.logger.Info("show_notes is disabled, notes will not be fetched")
	}
	go s.poller.Run(ctx)

	a.Run()
}

// newWindow builds a frameless splash window unless the widget should get
// a taskbar entry.
func newWindow(a fyne.App, d config.Display) fyne.Window {
	if !d.ShowInTaskbar {
		if drv, ok := a.Driver().(desktop.Driver); ok {
			return drv.CreateSplashWindow()
		}
	}
	return a.NewWindow(windowTitle)
}

// buildUI constructs the three rows over the background.
func (s *state) buildUI(d config.Display) fyne.CanvasObject {
	size := float32(d.FontSize)

	rows := container.NewVBox(
		s.row(newRowIcon(resinIcon, size, nil), s.resin, d),
		s.row(newRowIcon(checkinIcon, size, s.openCheckin), s.dailyReward, d),
		s.row(newRowIcon(realmCurrencyIcon, size, nil), s.realmCurrency, d),
	)

	m := float32(d.Margins)
	content := container.New(layout.NewCustomPaddedLayout(m, m, m, m), rows)

	return container.NewStack(s.bg, content)
}

func (s *state) row(icon *rowIcon, text binding.String, d config.Display) fyne.CanvasObject {
	lbl := widget.NewLabelWithData(text)
	if d.WordWrap {
		lbl.Wrapping = fyne.TextWrapWord
	}
	return container.NewBorder(nil, nil, icon, nil, lbl)
}

// applyDisplay restyles the open window from the Display section.
func (s *state) applyDisplay(d config.Display) {
	s.app.Settings().SetTheme(newWidgetTheme(d, loadFont(d.FontFile, s.logger)))
	s.bg.apply(d)
	s.win.SetContent(s.buildUI(d))
	s.win.SetFixedSize(!d.AllowResizing)
	if d.FitWindowToText {
		s.win.Resize(s.win.Content().MinSize())
	} else {
		s.win.Resize(defaultWindowSize)
	}
}

func (s *state) applyNative(cfg *config.Settings) {
	if !nativeWindowSupported {
		s.logger.Debug("native window attributes are not supported on this platform")
		return
	}
	if !cfg.Display.ShowInTaskbar {
		hideFromTaskbar()
	}
	moveWindow(cfg.Window.LastX, cfg.Window.LastY)
	applyNativeStyle(cfg.Display)
}

func applyNativeStyle(d config.Display) {
	setWindowTopmost(d.AlwaysOnTop)
	setWindowOpacity(d.Transparency)
}

func (s *state) applySnapshot(snap Snapshot) {
	s.setSnapshot(snap)
	if s.currentDisplay().FitWindowToText {
		s.win.Resize(s.win.Content().MinSize())
	}
}

func (s *state) setSnapshot(snap Snapshot) {
	_ = s.resin.Set(snap.Resin)
	_ = s.dailyReward.Set(snap.DailyReward)
	_ = s.realmCurrency.Set(snap.RealmCurrency)
}

func (s *state) snapshot() Snapshot {
	resin, _ := s.resin.Get()
	daily, _ := s.dailyReward.Get()
	realm, _ := s.realmCurrency.Get()
	return Snapshot{Resin: resin, DailyReward: daily, RealmCurrency: realm}
}

func (s *state) currentDisplay() config.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Display
}

func (s *state) openCheckin() {
	u, err := url.Parse(checkinURL)
	if err != nil {
		return
	}
	if err := s.app.OpenURL(u); err != nil {
		s.logger.Warn("failed to open check-in page", logging.Error(err))
	}
}

// dragged moves the window so the pointer stays where it grabbed the
// background.
func (s *state) dragged(delta fyne.Delta) {
	if !s.currentDisplay().Draggable {
		return
	}
	cx, cy, ok := cursorPosition()
	if !ok {
		return
	}
	if !s.drag.active {
		wx, wy, ok := windowPosition()
		if !ok {
			return
		}
		scale := s.win.Canvas().Scale()
		s.drag.begin(cx, cy, wx, wy, int(delta.DX*scale), int(delta.DY*scale))
	}
	moveWindow(s.drag.target(cx, cy))
}

func (s *state) dragEnded() {
	s.drag.end()
	s.savePosition()
}

func (s *state) savePosition() {
	x, y, ok := windowPosition()
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if x == s.cfg.Window.LastX && y == s.cfg.Window.LastY {
		return
	}
	if err := s.cfg.SavePosition(x, y); err != nil {
		s.logger.Error("failed to save window position", logging.Position(x, y), logging.Error(err))
		return
	}
	s.logger.Debug("window position saved", logging.Position(x, y))
}

func (s *state) watchSettings(ctx context.Context) {
	err := config.Watch(ctx, s.cfg.Path(), s.logger, func(next *config.Settings) {
		s.reload(ctx, next)
	})
	if err != nil {
		s.logger.Warn("settings watcher stopped", logging.Error(err))
	}
}

// reload restyles the window when settings.ini is edited and re-points the
// poller when the Auth section changes. Window geometry stays as it is on
// screen, so a position save triggers nothing.
func (s *state) reload(ctx context.Context, next *config.Settings) {
	s.mu.Lock()
	prev := *s.cfg
	s.cfg.Display = next.Display
	s.cfg.Auth = next.Auth
	s.mu.Unlock()

	refresh := false
	if prev.Auth != next.Auth {
		s.logger.Info("auth settings changed, switching account")
		s.poller.setSource(s.newFetcher(next.Auth), next.Auth)
		refresh = true
	}
	if prev.Display != next.Display {
		fyne.Do(func() { s.applyDisplay(next.Display) })
		applyNativeStyle(next.Display)
		refresh = refresh || (next.Display.ShowNotes && !prev.Display.ShowNotes)
	}
	if refresh {
		s.poller.Refresh(ctx)
	}
}

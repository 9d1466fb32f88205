package config

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	sectionDisplay = "Display"
	sectionAuth    = "Auth"
	sectionWindow  = "Window"

	keyLastX = "last_x"
	keyLastY = "last_y"
)

const (
	DefaultFontSize     = 14
	DefaultMargins      = 10
	DefaultFontFile     = "zh-cn.ttf"
	DefaultPosition     = 100
	DefaultTransparency = 1.0
)

var (
	DefaultFontColor       color.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DefaultBackgroundColor color.Color = color.NRGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff}
)

// Settings mirrors settings.ini. It is read once at startup; only the
// Window section is ever written back.
type Settings struct {
	Display Display
	Auth    Auth
	Window  Window

	path string
}

type Display struct {
	FontSize        int
	FontColor       color.Color
	FontFile        string
	BackgroundColor color.Color
	BackgroundImage string
	ShowBackground  bool
	CornerRadius    int
	Margins         int
	Transparency    float64
	AlwaysOnTop     bool
	Draggable       bool
	AllowResizing   bool
	ShowInTaskbar   bool
	WordWrap        bool
	FitWindowToText bool
	ShowNotes       bool
}

// Auth holds the HoYoLAB v2 cookies. UID and Server are optional; when
// UID is zero the ltuid_v2 value doubles as the game UID.
type Auth struct {
	LtuidV2       string
	LtokenV2      string
	CookieTokenV2 string
	AccountMidV2  string
	UID           int64
	Server        string
}

type Window struct {
	LastX int
	LastY int
}

// Path returns the file the settings were loaded from.
func (s *Settings) Path() string {
	return s.path
}

// GameUID returns the role id to query notes for.
func (a Auth) GameUID() (int64, error) {
	if a.UID > 0 {
		return a.UID, nil
	}
	uid, err := strconv.ParseInt(strings.TrimSpace(a.LtuidV2), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ltuid_v2 %q: %w", a.LtuidV2, err)
	}
	return uid, nil
}

func Load(path string) (*Settings, error) {
	f, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	s := parse(f)
	s.path = path
	return s, nil
}

// Values are taken verbatim: "#" and ";" start a comment only at the start
// of a line, so hex colors survive.
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:     true,
	IgnoreInlineComment: true,
}

func loadFile(path string) (*ini.File, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings %s: %w", path, err)
	}
	return f, nil
}

func parse(f *ini.File) *Settings {
	d := f.Section(sectionDisplay)
	a := f.Section(sectionAuth)
	w := f.Section(sectionWindow)

	return &Settings{
		Display: Display{
			FontSize:        d.Key("font_size").MustInt(DefaultFontSize),
			FontColor:       colorKey(d, "font_color", DefaultFontColor),
			FontFile:        d.Key("font_file").MustString(DefaultFontFile),
			BackgroundColor: colorKey(d, "background_color", DefaultBackgroundColor),
			BackgroundImage: strings.TrimSpace(d.Key("background_image").String()),
			ShowBackground:  flag(d, "show_background", true),
			CornerRadius:    d.Key("corner_radius").MustInt(0),
			Margins:         d.Key("margins").MustInt(DefaultMargins),
			Transparency:    clamp(d.Key("transparency").MustFloat64(DefaultTransparency), 0, 1),
			AlwaysOnTop:     flag(d, "always_on_top", false),
			Draggable:       flag(d, "draggable", true),
			AllowResizing:   flag(d, "allow_resizing", false),
			ShowInTaskbar:   flag(d, "show_in_taskbar", false),
			WordWrap:        flag(d, "word_wrap", false),
			FitWindowToText: flag(d, "fit_window_to_text", false),
			ShowNotes:       flag(d, "show_notes", false),
		},
		Auth: Auth{
			LtuidV2:       strings.TrimSpace(a.Key("ltuid_v2").String()),
			LtokenV2:      strings.TrimSpace(a.Key("ltoken_v2").String()),
			CookieTokenV2: strings.TrimSpace(a.Key("cookie_token_v2").String()),
			AccountMidV2:  strings.TrimSpace(a.Key("account_mid_v2").String()),
			UID:           a.Key("uid").MustInt64(0),
			Server:        strings.TrimSpace(a.Key("server").String()),
		},
		Window: Window{
			LastX: w.Key(keyLastX).MustInt(DefaultPosition),
			LastY: w.Key(keyLastY).MustInt(DefaultPosition),
		},
	}
}

// flag treats "1" as true and any other present value as false.
func flag(sec *ini.Section, name string, def bool) bool {
	if !sec.HasKey(name) {
		return def
	}
	return strings.TrimSpace(sec.Key(name).String()) == "1"
}

func colorKey(sec *ini.Section, name string, def color.Color) color.Color {
	raw := strings.TrimSpace(sec.Key(name).String())
	if raw == "" {
		return def
	}
	c, err := ParseColor(raw)
	if err != nil {
		return def
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SavePosition rewrites [Window] last_x/last_y. The file is re-read first so
// edits made while the widget was running survive, and every byte outside
// the Window section is written back unchanged.
func (s *Settings) SavePosition(x, y int) error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read settings %s: %w", s.path, err)
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("failed to stat settings %s: %w", s.path, err)
	}

	f, err := ini.LoadSources(loadOptions, raw)
	if err != nil {
		return fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}
	section, err := renderWindow(f.Section(sectionWindow), x, y)
	if err != nil {
		return err
	}

	out := spliceSection(raw, sectionWindow, section)
	if err := os.WriteFile(s.path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to save settings %s: %w", s.path, err)
	}
	s.Window.LastX = x
	s.Window.LastY = y
	return nil
}

// renderWindow encodes the Window section alone, with the new position and
// any other keys it already had.
func renderWindow(old *ini.Section, x, y int) ([]byte, error) {
	out := ini.Empty(loadOptions)
	sec, err := out.NewSection(sectionWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to build window section: %w", err)
	}
	for _, k := range old.Keys() {
		nk, err := sec.NewKey(k.Name(), k.Value())
		if err != nil {
			return nil, fmt.Errorf("failed to copy window key %s: %w", k.Name(), err)
		}
		nk.Comment = k.Comment
	}
	sec.Key(keyLastX).SetValue(strconv.Itoa(x))
	sec.Key(keyLastY).SetValue(strconv.Itoa(y))

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode window section: %w", err)
	}
	return buf.Bytes(), nil
}

// spliceSection replaces the named section of raw with body, or appends body
// when the section is absent. Blank and comment lines right before the next
// header stay with that header.
func spliceSection(raw []byte, name string, body []byte) []byte {
	lines := bytes.SplitAfter(raw, []byte("\n"))
	header := "[" + name + "]"

	start, end := -1, len(lines)
	for i, line := range lines {
		t := bytes.TrimSpace(line)
		if len(t) == 0 || t[0] != '[' {
			continue
		}
		if start >= 0 {
			end = i
			break
		}
		if string(t) == header {
			start = i
		}
	}

	var out bytes.Buffer
	if start < 0 {
		out.Write(raw)
		if len(raw) > 0 {
			if raw[len(raw)-1] != '\n' {
				out.WriteString(ini.LineBreak)
			}
			out.WriteString(ini.LineBreak)
		}
		out.Write(body)
		return out.Bytes()
	}

	if end < len(lines) {
		for end > start+1 && isFiller(lines[end-1]) {
			end--
		}
	}
	for _, l := range lines[:start] {
		out.Write(l)
	}
	out.Write(body)
	for _, l := range lines[end:] {
		out.Write(l)
	}
	return out.Bytes()
}

func isFiller(line []byte) bool {
	t := bytes.TrimSpace(line)
	return len(t) == 0 || t[0] == '#' || t[0] == ';'
}

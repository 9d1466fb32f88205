package config

import (
	"context"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const sampleSettings = `; widget settings
[Display]
font_size = 18
font_color = #FFCC00
background_color = #123456
background_image =
show_background = 0
corner_radius = 8
margins = 12
transparency = 0.8
always_on_top = 1
draggable = 1
allow_resizing = 0
show_in_taskbar = 0
word_wrap = 1
fit_window_to_text = 0
show_notes = 1

[Auth]
ltuid_v2 = 123456789
ltoken_v2 = v2_token
cookie_token_v2 = v2_cookie
account_mid_v2 = mid

[Window]
last_x = 250
last_y = 40
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.ini")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, sampleSettings)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantDisplay := Display{
		FontSize:        18,
		FontColor:       color.NRGBA{R: 0xff, G: 0xcc, B: 0x00, A: 0xff},
		FontFile:        DefaultFontFile,
		BackgroundColor: color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff},
		ShowBackground:  false,
		CornerRadius:    8,
		Margins:         12,
		Transparency:    0.8,
		AlwaysOnTop:     true,
		Draggable:       true,
		WordWrap:        true,
		ShowNotes:       true,
	}
	if diff := cmp.Diff(wantDisplay, s.Display); diff != "" {
		t.Errorf("Display mismatch (-want +got):\n%s", diff)
	}

	wantAuth := Auth{
		LtuidV2:       "123456789",
		LtokenV2:      "v2_token",
		CookieTokenV2: "v2_cookie",
		AccountMidV2:  "mid",
	}
	if diff := cmp.Diff(wantAuth, s.Auth); diff != "" {
		t.Errorf("Auth mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Window{LastX: 250, LastY: 40}, s.Window); diff != "" {
		t.Errorf("Window mismatch (-want +got):\n%s", diff)
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "[Display]\nfont_size = big\ntransparency = 3\n[Auth]\n[Window]\n")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Display.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %d, want default %d", s.Display.FontSize, DefaultFontSize)
	}
	if s.Display.Transparency != 1 {
		t.Errorf("Transparency = %v, want clamped to 1", s.Display.Transparency)
	}
	if !s.Display.Draggable || !s.Display.ShowBackground {
		t.Errorf("expected draggable and show_background to default on, got %+v", s.Display)
	}
	if s.Window.LastX != DefaultPosition || s.Window.LastY != DefaultPosition {
		t.Errorf("Window = %+v, want %d,%d", s.Window, DefaultPosition, DefaultPosition)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.ini")); err == nil {
		t.Fatal("Load() on missing file returned nil error")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(*Settings)
		wantProblems int
	}{
		{name: "valid", mutate: func(*Settings) {}},
		{name: "missing token", mutate: func(s *Settings) { s.Auth.LtokenV2 = "" }, wantProblems: 1},
		{
			name: "wrap and fit",
			mutate: func(s *Settings) {
				s.Display.WordWrap = true
				s.Display.FitWindowToText = true
			},
			wantProblems: 1,
		},
		{
			name: "both problems",
			mutate: func(s *Settings) {
				s.Auth.AccountMidV2 = ""
				s.Display.WordWrap = true
				s.Display.FitWindowToText = true
			},
			wantProblems: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &Settings{Auth: Auth{LtuidV2: "1", LtokenV2: "t", CookieTokenV2: "c", AccountMidV2: "m"}}
			tt.mutate(s)

			err := s.Validate()
			if tt.wantProblems == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			ve := AsValidationError(err)
			if ve == nil {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if len(ve.Problems) != tt.wantProblems {
				t.Errorf("got %d problems (%v), want %d", len(ve.Problems), ve.Problems, tt.wantProblems)
			}
		})
	}
}

func TestGameUID(t *testing.T) {
	t.Parallel()

	uid, err := Auth{LtuidV2: "700000001"}.GameUID()
	if err != nil || uid != 700000001 {
		t.Errorf("GameUID() = %d, %v; want 700000001", uid, err)
	}

	uid, err = Auth{LtuidV2: "1", UID: 800000002}.GameUID()
	if err != nil || uid != 800000002 {
		t.Errorf("GameUID() with explicit uid = %d, %v; want 800000002", uid, err)
	}

	if _, err := (Auth{LtuidV2: "abc"}).GameUID(); err == nil {
		t.Error("GameUID() with non-numeric ltuid_v2 returned nil error")
	}
}

func TestSavePositionKeepsOtherSections(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, sampleSettings)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := s.SavePosition(640, 480); err != nil {
		t.Fatalf("SavePosition() error = %v", err)
	}
	if s.Window.LastX != 640 || s.Window.LastY != 480 {
		t.Errorf("in-memory Window = %+v, want 640,480", s.Window)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if diff := cmp.Diff(Window{LastX: 640, LastY: 480}, reloaded.Window); diff != "" {
		t.Errorf("saved Window mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Display, reloaded.Display); diff != "" {
		t.Errorf("Display changed by SavePosition (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(s.Auth, reloaded.Auth); diff != "" {
		t.Errorf("Auth changed by SavePosition (-before +after):\n%s", diff)
	}
}

func TestSavePositionPreservesFile(t *testing.T) {
	t.Parallel()

	const middle = `[Display]
font_color = #00FF00
margins = 10 ; px

[Window]
last_x = 1
last_y = 2

; cookies
[Auth]
ltuid_v2 = 1
`

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "window last",
			input: sampleSettings,
			want:  strings.Replace(sampleSettings, "last_x = 250\nlast_y = 40\n", "last_x = 5\nlast_y = 6\n", 1),
		},
		{
			name:  "window between sections",
			input: middle,
			want:  strings.Replace(middle, "last_x = 1\nlast_y = 2\n", "last_x = 5\nlast_y = 6\n", 1),
		},
		{
			name:  "window missing",
			input: "[Display]\nbackground_color = #123456",
			want:  "[Display]\nbackground_color = #123456\n\n[Window]\nlast_x = 5\nlast_y = 6\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeSettings(t, tt.input)
			s, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if err := s.SavePosition(5, 6); err != nil {
				t.Fatalf("SavePosition() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read settings: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("file mismatch (-want +got):\n%s", diff)
			}

			reloaded, err := Load(path)
			if err != nil {
				t.Fatalf("reload error = %v", err)
			}
			if diff := cmp.Diff(s.Display, reloaded.Display); diff != "" {
				t.Errorf("Display changed by SavePosition (-before +after):\n%s", diff)
			}
		})
	}
}

func TestLoadHexColors(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "[Display]\nfont_color = #00FF00\nbackground_color = #123456\n")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(color.Color(color.NRGBA{G: 0xff, A: 0xff}), s.Display.FontColor); diff != "" {
		t.Errorf("FontColor mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(color.Color(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}), s.Display.BackgroundColor); diff != "" {
		t.Errorf("BackgroundColor mismatch (-want +got):\n%s", diff)
	}
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    color.Color
		wantErr bool
	}{
		{input: "#FFFFFF", want: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{input: "#f00", want: color.NRGBA{R: 0xff, A: 0xff}},
		{input: "#80000000", want: color.NRGBA{A: 0x80}},
		{input: "White", want: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{input: "transparent", want: color.NRGBA{}},
		{input: "rgb(1,2,3)", wantErr: true},
		{input: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseColor(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestNormalizeRefresh(t *testing.T) {
	t.Parallel()

	if got := NormalizeRefresh(5 * time.Second); got != DefaultRefresh {
		t.Errorf("NormalizeRefresh(5s) = %v, want %v", got, DefaultRefresh)
	}
	if got := NormalizeRefresh(2 * time.Minute); got != 2*time.Minute {
		t.Errorf("NormalizeRefresh(2m) = %v, want 2m", got)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, sampleSettings)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	changed := make(chan *Settings, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, logger, func(s *Settings) {
			select {
			case changed <- s:
			default:
			}
		})
	}()

	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)
	updated := strings.Replace(sampleSettings, "font_size = 18", "font_size = 22", 1)
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("failed to rewrite settings: %v", err)
	}

	select {
	case s := <-changed:
		if s.Display.FontSize != 22 {
			t.Errorf("reloaded FontSize = %d, want 22", s.Display.FontSize)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() returned %v", err)
	}
}

package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"resin_widget/config"
	"resin_widget/logging"
)

// widgetTheme overrides text color, text size and font on top of the
// default fyne theme.
type widgetTheme struct {
	base      fyne.Theme
	fontColor color.Color
	textSize  float32
	font      fyne.Resource
}

var _ fyne.Theme = (*widgetTheme)(nil)

func newWidgetTheme(d config.Display, font fyne.Resource) *widgetTheme {
	return &widgetTheme{
		base:      theme.DefaultTheme(),
		fontColor: d.FontColor,
		textSize:  float32(d.FontSize),
		font:      font,
	}
}

func (t *widgetTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameForeground:
		return t.fontColor
	case theme.ColorNameBackground:
		return color.Transparent
	}
	return t.base.Color(name, variant)
}

func (t *widgetTheme) Font(style fyne.TextStyle) fyne.Resource {
	if t.font != nil && !style.Monospace && !style.Symbol {
		return t.font
	}
	return t.base.Font(style)
}

func (t *widgetTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *widgetTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.textSize > 0 {
		return t.textSize
	}
	return t.base.Size(name)
}

// loadFont reads the custom TTF; a missing font falls back to the theme
// default.
func loadFont(path string, logger *slog.Logger) fyne.Resource {
	if path == "" {
		return nil
	}
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		logger.Warn("failed to load custom font", logging.Path(path), logging.Error(err))
		return nil
	}
	logger.Debug("custom font loaded", logging.Path(path))
	return res
}

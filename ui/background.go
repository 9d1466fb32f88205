package ui

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"resin_widget/config"
)

// background paints the window backdrop and turns drags on it into window
// moves. Rows stacked on top receive taps; drags fall through to here.
type background struct {
	widget.BaseWidget

	rect  *canvas.Rectangle
	image *canvas.Image

	onDrag    func(fyne.Delta)
	onDragEnd func()
}

var (
	_ fyne.Draggable = (*background)(nil)
	_ fyne.Widget    = (*background)(nil)
)

func newBackground() *background {
	b := &background{
		rect:  canvas.NewRectangle(config.DefaultBackgroundColor),
		image: &canvas.Image{FillMode: canvas.ImageFillStretch},
	}
	b.image.Hide()
	b.ExtendBaseWidget(b)
	return b
}

func (b *background) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(b.rect, b.image))
}

// apply shows the image when enabled and present on disk, otherwise the
// rounded color fill.
func (b *background) apply(d config.Display) {
	b.rect.FillColor = d.BackgroundColor
	b.rect.CornerRadius = float32(d.CornerRadius)

	if d.ShowBackground && fileExists(d.BackgroundImage) {
		b.image.File = d.BackgroundImage
		b.image.Show()
		b.rect.Hide()
	} else {
		b.image.File = ""
		b.image.Hide()
		b.rect.Show()
	}
	b.rect.Refresh()
	b.image.Refresh()
}

func (b *background) imageShown() bool {
	return b.image.Visible()
}

func (b *background) Dragged(e *fyne.DragEvent) {
	if b.onDrag != nil {
		b.onDrag(e.Dragged)
	}
}

func (b *background) DragEnd() {
	if b.onDragEnd != nil {
		b.onDragEnd()
	}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

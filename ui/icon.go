package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// rowIcon is a square image sized to the text; with onTap set it acts as a
// link.
type rowIcon struct {
	widget.BaseWidget

	image *canvas.Image
	onTap func()
}

var (
	_ fyne.Tappable      = (*rowIcon)(nil)
	_ desktop.Cursorable = (*rowIcon)(nil)
)

func newRowIcon(path string, size float32, onTap func()) *rowIcon {
	img := canvas.NewImageFromFile(path)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSquareSize(size))

	i := &rowIcon{image: img, onTap: onTap}
	i.ExtendBaseWidget(i)
	return i
}

func (i *rowIcon) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(i.image)
}

func (i *rowIcon) Tapped(*fyne.PointEvent) {
	if i.onTap != nil {
		i.onTap()
	}
}

func (i *rowIcon) Cursor() desktop.Cursor {
	if i.onTap != nil {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

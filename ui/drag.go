package ui

// dragMove follows the pointer in screen pixels. Fyne drag deltas are
// relative to the window, which moves under the pointer while dragging.
type dragMove struct {
	active           bool
	startX, startY   int
	originX, originY int
}

// begin records the window origin and where the pointer was pressed. The
// first drag event arrives with the pointer already moved by (dx, dy).
func (m *dragMove) begin(cursorX, cursorY, winX, winY, dx, dy int) {
	m.active = true
	m.startX, m.startY = cursorX-dx, cursorY-dy
	m.originX, m.originY = winX, winY
}

// target is the window origin that keeps the pointer on the same spot.
func (m *dragMove) target(cursorX, cursorY int) (x, y int) {
	return m.originX + cursorX - m.startX, m.originY + cursorY - m.startY
}

func (m *dragMove) end() {
	m.active = false
}

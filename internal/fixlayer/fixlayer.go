// Package fixlayer renders text and tiles on the 40×32 overlay layer.
// It layers a font mapping and alignment layout on top of the raw
// column-major VRAM writes.
package fixlayer

import (
	"fmt"

	"github.com/manicakes/progearsdk/internal/hw"
)

// Safe and visible bounds for layout. CRT overscan eats the outer
// cells, so centered text uses the inner region.
const (
	SafeLeft      = 1
	SafeRight     = 38
	VisibleTop    = 2
	VisibleBottom = 29
)

// Horizontal alignment for Layout and the aligned print helpers.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// Vertical alignment.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Writer prints onto the fix layer. The font base is the tile index of
// ASCII NUL in the fix ROM, so character c renders as tile base+c.
type Writer struct {
	lspc     *hw.LSPC
	fontBase uint16
}

func New(lspc *hw.LSPC, fontBase uint16) *Writer {
	return &Writer{lspc: lspc, fontBase: fontBase}
}

// Put writes one raw tile cell.
func (w *Writer) Put(x, y int, tile uint16, palette uint8) {
	w.lspc.FixPut(x, y, tile, palette)
}

// Clear zeroes a cell rectangle.
func (w *Writer) Clear(x, y, width, height int) {
	w.lspc.FixClear(x, y, width, height)
}

// ClearAll wipes the whole layer.
func (w *Writer) ClearAll() {
	w.lspc.FixClearAll()
}

// Row writes a run of raw tiles left to right.
func (w *Writer) Row(x, y int, tiles []uint16, palette uint8) {
	w.lspc.FixRow(x, y, tiles, palette)
}

// Text prints s at (x,y), clipping at the right edge. Returns the
// number of cells written.
func (w *Writer) Text(x, y int, palette uint8, s string) int {
	return w.lspc.FixText(x, y, s, palette, w.fontBase)
}

// Printf formats and prints. The formatted string clips like Text.
func (w *Writer) Printf(x, y int, palette uint8, format string, args ...interface{}) int {
	return w.Text(x, y, palette, fmt.Sprintf(format, args...))
}

// LayoutX returns the column where a width-cell run starts under the
// given alignment. Centered and right-aligned text uses the safe area.
func LayoutX(align HAlign, width int) int {
	switch align {
	case AlignCenter:
		x := SafeLeft + (SafeRight-SafeLeft+1-width)/2
		if x < SafeLeft {
			x = SafeLeft
		}
		return x
	case AlignRight:
		x := SafeRight - width + 1
		if x < SafeLeft {
			x = SafeLeft
		}
		return x
	}
	return SafeLeft
}

// LayoutY returns the row for a one-row run under the given alignment,
// inside the visible rows.
func LayoutY(align VAlign) int {
	switch align {
	case AlignMiddle:
		return VisibleTop + (VisibleBottom-VisibleTop)/2
	case AlignBottom:
		return VisibleBottom
	}
	return VisibleTop
}

// TextAligned prints s at the position the alignment pair resolves to
// and returns the column it started at.
func (w *Writer) TextAligned(h HAlign, v VAlign, palette uint8, s string) int {
	x := LayoutX(h, len(s))
	w.Text(x, LayoutY(v), palette, s)
	return x
}

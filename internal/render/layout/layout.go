package layout

import (
	"image"
	"strings"
)

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	height := rect.Dy()
	if topHeightPx < 0 {
		topHeightPx = 0
	}
	if topHeightPx > height {
		topHeightPx = height
	}
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// Horizontal and vertical alignment keywords as saved in "h:v" alignment strings.
const (
	Left   = "left"
	Center = "center"
	Right  = "right"
	Top    = "top"
	Bottom = "bottom"
)

// ParseAlignment splits an "h:v" alignment string.
// Missing or unknown parts fall back to center.
func ParseAlignment(value string) (halign, valign string) {
	halign, valign = Center, Center
	parts := strings.SplitN(value, ":", 2)
	switch h := strings.TrimSpace(parts[0]); h {
	case Left, Right:
		halign = h
	}
	if len(parts) == 2 {
		switch v := strings.TrimSpace(parts[1]); v {
		case Top, Bottom:
			valign = v
		}
	}
	return halign, valign
}

// Align returns the top-left point of a widthPx x heightPx box placed in rect.
// Boxes larger than rect overflow evenly when centered.
func Align(rect image.Rectangle, widthPx, heightPx int, halign, valign string) image.Point {
	rect = Normalize(rect)
	pt := rect.Min
	switch halign {
	case Left:
	case Right:
		pt.X = rect.Max.X - widthPx
	default:
		pt.X += (rect.Dx() - widthPx) / 2
	}
	switch valign {
	case Top:
	case Bottom:
		pt.Y = rect.Max.Y - heightPx
	default:
		pt.Y += (rect.Dy() - heightPx) / 2
	}
	return pt
}

// Grid splits rect into columns x rows equal cells separated by gapPx, row-major.
func Grid(rect image.Rectangle, columns, rows, gapPx int) []image.Rectangle {
	rect = Normalize(rect)
	if columns <= 0 || rows <= 0 {
		return nil
	}
	if gapPx < 0 {
		gapPx = 0
	}
	cellW := (rect.Dx() - gapPx*(columns-1)) / columns
	cellH := (rect.Dy() - gapPx*(rows-1)) / rows
	if cellW < 0 {
		cellW = 0
	}
	if cellH < 0 {
		cellH = 0
	}
	cells := make([]image.Rectangle, 0, columns*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			x := rect.Min.X + col*(cellW+gapPx)
			y := rect.Min.Y + row*(cellH+gapPx)
			cells = append(cells, image.Rect(x, y, x+cellW, y+cellH))
		}
	}
	return cells
}

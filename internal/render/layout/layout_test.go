package layout_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rook-computer/deckgfx/internal/render/layout"
)

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		value          string
		halign, valign string
	}{
		{value: "center:center", halign: layout.Center, valign: layout.Center},
		{value: "left:top", halign: layout.Left, valign: layout.Top},
		{value: "right:bottom", halign: layout.Right, valign: layout.Bottom},
		{value: "right", halign: layout.Right, valign: layout.Center},
		{value: "", halign: layout.Center, valign: layout.Center},
		{value: "sideways:up", halign: layout.Center, valign: layout.Center},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			h, v := layout.ParseAlignment(tt.value)
			assert.Equal(t, tt.halign, h)
			assert.Equal(t, tt.valign, v)
		})
	}
}

func TestAlign(t *testing.T) {
	rect := image.Rect(0, 14, 72, 72)

	assert.Equal(t, image.Pt(0, 14), layout.Align(rect, 10, 10, layout.Left, layout.Top))
	assert.Equal(t, image.Pt(62, 62), layout.Align(rect, 10, 10, layout.Right, layout.Bottom))
	assert.Equal(t, image.Pt(31, 38), layout.Align(rect, 10, 10, layout.Center, layout.Center))
	// oversized boxes overflow evenly
	assert.Equal(t, image.Pt(-14, 14), layout.Align(rect, 100, 58, layout.Center, layout.Center))
}

func TestGrid(t *testing.T) {
	cells := layout.Grid(image.Rect(0, 0, 100, 50), 2, 2, 10)

	assert.Equal(t, []image.Rectangle{
		image.Rect(0, 0, 45, 20),
		image.Rect(55, 0, 100, 20),
		image.Rect(0, 30, 45, 50),
		image.Rect(55, 30, 100, 50),
	}, cells)
	assert.Nil(t, layout.Grid(image.Rect(0, 0, 10, 10), 0, 1, 0))
}

func TestInsetAndSplit(t *testing.T) {
	assert.Equal(t, image.Rect(2, 2, 8, 8), layout.Inset(image.Rect(0, 0, 10, 10), 2))

	top, bottom := layout.SplitHorizontal(image.Rect(0, 0, 72, 72), 14)
	assert.Equal(t, image.Rect(0, 0, 72, 14), top)
	assert.Equal(t, image.Rect(0, 14, 72, 72), bottom)

	top, bottom = layout.SplitHorizontal(image.Rect(0, 0, 72, 72), 100)
	assert.Equal(t, image.Rect(0, 0, 72, 72), top)
	assert.True(t, bottom.Empty())
}

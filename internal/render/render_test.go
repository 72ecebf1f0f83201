package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/deckgfx/internal/render"
	"github.com/rook-computer/deckgfx/internal/render/layout"
)

func counterClock() func() time.Time {
	t := time.Unix(1700000000, 0)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestNewCanvas_IsBlack(t *testing.T) {
	c := render.NewCanvas(render.BankSize, render.BankSize)

	buf := c.Buffer()
	assert.Len(t, buf, render.BankSize*render.BankSize*3)
	assert.Equal(t, make([]byte, len(buf)), buf)
	assert.Empty(t, c.Texts())
}

func TestCanvas_LastUpdateAdvances(t *testing.T) {
	c := render.NewCanvasWithClock(4, 4, counterClock())
	created := c.LastUpdate()

	c.BackgroundColor(render.White)

	assert.True(t, c.LastUpdate().After(created))
}

func TestCanvas_BoxFilledIsInclusive(t *testing.T) {
	c := render.NewCanvas(10, 10)

	c.BoxFilled(2, 2, 4, 4, render.Red)

	assert.Equal(t, render.Red, c.At(2, 2))
	assert.Equal(t, render.Red, c.At(4, 4))
	assert.Equal(t, render.Black, c.At(5, 5))
	assert.Equal(t, render.Black, c.At(1, 1))
}

func TestCanvas_DrawBorder(t *testing.T) {
	c := render.NewCanvas(20, 20)

	c.DrawBorder(3, render.Yellow)

	assert.Equal(t, render.Yellow, c.At(0, 10))
	assert.Equal(t, render.Yellow, c.At(2, 10))
	assert.Equal(t, render.Black, c.At(3, 10))
	assert.Equal(t, render.Yellow, c.At(19, 19))
	assert.Equal(t, render.Yellow, c.At(10, 17))
	assert.Equal(t, render.Black, c.At(10, 16))
}

func TestCanvas_HorizontalLine(t *testing.T) {
	c := render.NewCanvas(8, 8)

	c.HorizontalLine(3, render.Green)

	for x := 0; x < 8; x++ {
		assert.Equal(t, render.Green, c.At(x, 3))
	}
	assert.Equal(t, render.Black, c.At(0, 2))
	assert.Equal(t, render.Black, c.At(0, 4))
}

func TestCanvas_Texts(t *testing.T) {
	c := render.NewCanvas(render.BankSize, render.BankSize)

	c.DrawTextLine(3, 3, "1.1", render.Yellow)
	c.DrawAlignedText(image.Rect(2, 18, 70, 70), "two\nlines", render.White, 0, layout.Center, layout.Center)
	assert.Equal(t, []string{"1.1", "two lines"}, c.Texts())

	c.Fill(image.Rect(0, 14, 72, 72), render.Black)
	assert.Equal(t, []string{"1.1"}, c.Texts())

	// a partial fill leaves the text in place
	c.Fill(image.Rect(0, 0, 4, 4), render.Black)
	assert.Equal(t, []string{"1.1"}, c.Texts())

	c.BackgroundColor(render.Black)
	assert.Empty(t, c.Texts())
}

func TestDrawAlignedText_LiteralLineBreak(t *testing.T) {
	c := render.NewCanvas(render.BankSize, render.BankSize)

	c.DrawAlignedText(image.Rect(0, 0, 72, 72), `a\nb`, render.White, 0, layout.Left, layout.Top)

	assert.Equal(t, []string{"a b"}, c.Texts())
}

func TestDrawAlignedText_Alignment(t *testing.T) {
	tests := []struct {
		name           string
		halign, valign string
		inside, empty  image.Rectangle
	}{
		{
			name:   "left top",
			halign: layout.Left, valign: layout.Top,
			inside: image.Rect(0, 0, 36, 36), empty: image.Rect(36, 36, 72, 72),
		},
		{
			name:   "right bottom",
			halign: layout.Right, valign: layout.Bottom,
			inside: image.Rect(36, 36, 72, 72), empty: image.Rect(0, 0, 36, 36),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := render.NewCanvas(render.BankSize, render.BankSize)
			c.DrawAlignedText(image.Rect(0, 0, 72, 72), "X", render.White, 0, tt.halign, tt.valign)

			assert.True(t, hasColor(c, tt.inside, render.White))
			assert.False(t, hasColor(c, tt.empty, render.White))
		})
	}
}

func TestDrawAlignedText_ClipsToRect(t *testing.T) {
	c := render.NewCanvas(render.BankSize, render.BankSize)

	c.DrawAlignedText(image.Rect(10, 10, 20, 20), "WWWWWWWWWW WWWWWWWWWW WWWWWWWWWW", render.White, 14, layout.Center, layout.Center)

	assert.False(t, hasColor(c, image.Rect(0, 0, 72, 10), render.White))
	assert.False(t, hasColor(c, image.Rect(20, 0, 72, 72), render.White))
	assert.False(t, hasColor(c, image.Rect(0, 20, 72, 72), render.White))
}

func TestDrawAlignedText_AutoSize(t *testing.T) {
	short := render.NewCanvas(render.BankSize, render.BankSize)
	short.DrawAlignedText(image.Rect(0, 0, 72, 72), "1", render.White, render.SizeAuto, layout.Center, layout.Center)

	long := render.NewCanvas(render.BankSize, render.BankSize)
	long.DrawAlignedText(image.Rect(0, 0, 72, 72), "a much longer label", render.White, render.SizeAuto, layout.Center, layout.Center)

	assert.Greater(t, countColor(short, render.White), 0)
	assert.Equal(t, []string{"1"}, short.Texts())
	assert.Equal(t, []string{"a much longer label"}, long.Texts())
}

func TestDrawFromPNGData(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []byte{0, 0, 0xFF, 0xFF})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	c := render.NewCanvas(render.BankSize, render.BankSize)
	require.NoError(t, c.DrawFromPNGData(buf.Bytes(), image.Rect(0, 14, 72, 72), layout.Right, layout.Bottom))

	blue := color.RGBA{B: 0xFF, A: 0xFF}
	assert.Equal(t, blue, c.At(71, 71))
	assert.Equal(t, blue, c.At(68, 68))
	assert.Equal(t, render.Black, c.At(67, 67))

	err := c.DrawFromPNGData([]byte("junk"), image.Rect(0, 14, 72, 72), layout.Center, layout.Center)
	assert.Error(t, err)
}

func TestDrawPixelBuffer(t *testing.T) {
	c := render.NewCanvas(4, 4)
	rect := image.Rect(0, 2, 4, 4)

	err := c.DrawPixelBuffer(rect, make([]byte, 5))
	assert.ErrorIs(t, err, render.ErrShortPixelBuffer)

	require.NoError(t, c.DrawPixelBuffer(rect, bytes.Repeat([]byte{1, 2, 3}, 8)))
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xFF}, c.At(3, 3))
	assert.Equal(t, render.Black, c.At(3, 1))
}

func TestImageFromBuffer_RoundTrip(t *testing.T) {
	c := render.NewCanvas(3, 2)
	c.Fill(image.Rect(1, 0, 2, 1), render.Orange)

	img, err := render.ImageFromBuffer(c.Buffer(), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, c.Image().Pix, img.Pix)

	_, err = render.ImageFromBuffer(c.Buffer()[:5], 3, 2)
	assert.Error(t, err)
}

func TestPNG(t *testing.T) {
	c := render.NewCanvas(render.BankSize, render.BankSize)
	c.BackgroundColor(render.Yellow)

	data, err := c.PNG()
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, render.BankSize, render.BankSize), decoded.Bounds())
	r, g, b, _ := decoded.At(10, 10).RGBA()
	assert.Equal(t, []uint32{0xFF, 0xC6, 0x00}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestDrawIcon(t *testing.T) {
	for _, name := range []string{render.IconArrowUp, render.IconArrowDown, render.IconPlay} {
		t.Run(name, func(t *testing.T) {
			c := render.NewCanvas(render.BankSize, render.BankSize)
			require.NoError(t, c.DrawIcon(20, 20, name, render.White))
			assert.Greater(t, countColor(c, render.White), 0)
			assert.False(t, hasColor(c, image.Rect(0, 0, 20, 72), render.White))
		})
	}

	c := render.NewCanvas(8, 8)
	assert.Error(t, c.DrawIcon(0, 0, "nope", render.White))
}

func TestDrawSign(t *testing.T) {
	plus := render.NewCanvas(render.BankSize, render.BankSize)
	plus.DrawSign(10, 10, true, render.White)
	minus := render.NewCanvas(render.BankSize, render.BankSize)
	minus.DrawSign(10, 10, false, render.White)

	// centre of both bars
	assert.Equal(t, render.White, plus.At(17, 17))
	assert.Equal(t, render.White, minus.At(17, 17))
	// top of the vertical bar
	assert.Equal(t, render.White, plus.At(17, 11))
	assert.Equal(t, render.Black, minus.At(17, 11))
}

func TestRGB(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF}, render.RGB(0x123456))
	assert.Equal(t, render.Black, render.RGB(0))
}

func hasColor(c *render.Canvas, rect image.Rectangle, col color.RGBA) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if c.At(x, y) == col {
				return true
			}
		}
	}
	return false
}

func countColor(c *render.Canvas, col color.RGBA) int {
	n := 0
	b := c.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.At(x, y) == col {
				n++
			}
		}
	}
	return n
}

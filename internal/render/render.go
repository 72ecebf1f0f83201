package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"time"
)

// Canvas is a fixed-size drawing surface for one bank image.
// It remembers when it was last modified and which text is still visible on it.
type Canvas struct {
	img     *image.RGBA
	texts   []textRun
	updated time.Time
	now     func() time.Time
}

// textRun is a text draw still visible on the canvas.
type textRun struct {
	box  image.Rectangle
	text string
}

// NewCanvas returns a black canvas.
func NewCanvas(width, height int) *Canvas {
	return NewCanvasWithClock(width, height, time.Now)
}

// NewCanvasWithClock returns a black canvas whose update times come from now.
func NewCanvasWithClock(width, height int, now func() time.Time) *Canvas {
	if now == nil {
		now = time.Now
	}
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height)), now: now}
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: Black}, image.Point{}, draw.Src)
	c.touch()
	return c
}

func (c *Canvas) touch() { c.updated = c.now() }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// LastUpdate is the time of the most recent drawing call.
func (c *Canvas) LastUpdate() time.Time { return c.updated }

// At returns the colour of one pixel.
func (c *Canvas) At(x, y int) color.RGBA { return c.img.RGBAAt(x, y) }

// Fill paints rect with col, clipped to the canvas.
func (c *Canvas) Fill(rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(c.img.Bounds())
	if !rect.Empty() {
		draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
		c.cover(rect)
	}
	c.touch()
}

// BoxFilled fills the rectangle spanning (x1, y1) to (x2, y2), both corners included.
func (c *Canvas) BoxFilled(x1, y1, x2, y2 int, col color.Color) {
	c.Fill(image.Rect(min(x1, x2), min(y1, y2), max(x1, x2)+1, max(y1, y2)+1), col)
}

// BackgroundColor paints the whole canvas.
func (c *Canvas) BackgroundColor(col color.Color) {
	c.Fill(c.img.Bounds(), col)
}

// HorizontalLine draws a one pixel line across the canvas at row y.
func (c *Canvas) HorizontalLine(y int, col color.Color) {
	b := c.img.Bounds()
	c.Fill(image.Rect(b.Min.X, y, b.Max.X, y+1), col)
}

// DrawBorder draws a frame depth pixels wide along the canvas edges.
func (c *Canvas) DrawBorder(depth int, col color.Color) {
	b := c.img.Bounds()
	c.Fill(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+depth), col)
	c.Fill(image.Rect(b.Min.X, b.Max.Y-depth, b.Max.X, b.Max.Y), col)
	c.Fill(image.Rect(b.Min.X, b.Min.Y, b.Min.X+depth, b.Max.Y), col)
	c.Fill(image.Rect(b.Max.X-depth, b.Min.Y, b.Max.X, b.Max.Y), col)
}

// Texts lists the text drawn on the canvas that has not been painted over since,
// oldest first. Multi-line text is reported with its lines joined by a space.
func (c *Canvas) Texts() []string {
	out := make([]string, 0, len(c.texts))
	for _, run := range c.texts {
		out = append(out, run.text)
	}
	return out
}

func (c *Canvas) record(box image.Rectangle, lines []string) {
	text := strings.TrimSpace(strings.Join(lines, " "))
	if text == "" {
		return
	}
	c.texts = append(c.texts, textRun{box: box.Intersect(c.img.Bounds()), text: text})
}

// cover forgets text runs fully painted over by rect.
func (c *Canvas) cover(rect image.Rectangle) {
	kept := c.texts[:0]
	for _, run := range c.texts {
		if !run.box.In(rect) {
			kept = append(kept, run)
		}
	}
	c.texts = kept
}

// Buffer exports the canvas as packed 24-bit RGB rows.
func (c *Canvas) Buffer() []byte {
	b := c.img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := c.img.RGBAAt(x, y)
			out = append(out, px.R, px.G, px.B)
		}
	}
	return out
}

// Image returns a copy of the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

// PNG encodes the canvas.
func (c *Canvas) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ImageFromBuffer rebuilds an image from packed 24-bit RGB rows.
func ImageFromBuffer(buf []byte, width, height int) (*image.RGBA, error) {
	if len(buf) < width*height*3 {
		return nil, fmt.Errorf("buffer holds %d bytes, need %d", len(buf), width*height*3)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < width*height; i, j = i+1, j+3 {
		img.Pix[i*4] = buf[j]
		img.Pix[i*4+1] = buf[j+1]
		img.Pix[i*4+2] = buf[j+2]
		img.Pix[i*4+3] = 0xFF
	}
	return img, nil
}

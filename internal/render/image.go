package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/rook-computer/deckgfx/internal/render/layout"
)

// ErrShortPixelBuffer is returned when a raw pixel buffer does not cover its target rectangle.
var ErrShortPixelBuffer = errors.New("pixel buffer too short")

// DrawFromPNGData decodes a PNG and composites it into rect at the given alignment.
// The image is not scaled; parts outside rect are clipped.
func (c *Canvas) DrawFromPNGData(data []byte, rect image.Rectangle, halign, valign string) error {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode png: %w", err)
	}
	rect = layout.Normalize(rect)
	srcBounds := src.Bounds()
	origin := layout.Align(rect, srcBounds.Dx(), srcBounds.Dy(), halign, valign)
	target := image.Rectangle{Min: origin, Max: origin.Add(srcBounds.Size())}.Intersect(rect)
	if !target.Empty() {
		draw.Draw(c.img, target, src, srcBounds.Min.Add(target.Min.Sub(origin)), draw.Over)
	}
	c.touch()
	return nil
}

// DrawPixelBuffer copies packed 24-bit RGB rows into rect.
func (c *Canvas) DrawPixelBuffer(rect image.Rectangle, buf []byte) error {
	rect = layout.Normalize(rect)
	width, height := rect.Dx(), rect.Dy()
	if len(buf) < width*height*3 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrShortPixelBuffer, len(buf), width, height)
	}
	src, err := ImageFromBuffer(buf, width, height)
	if err != nil {
		return err
	}
	draw.Draw(c.img, rect, src, image.Point{}, draw.Src)
	c.cover(rect)
	c.touch()
	return nil
}

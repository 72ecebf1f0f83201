package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	svg "github.com/ajstarks/svgo"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Icon names understood by DrawIcon.
const (
	IconArrowUp   = "arrow_up"
	IconArrowDown = "arrow_down"
	IconPlay      = "play"
)

type iconShape struct {
	width, height int
	draw          func(canvas *svg.SVG, style string)
}

var iconShapes = map[string]iconShape{
	IconArrowUp: {width: 20, height: 20, draw: func(canvas *svg.SVG, style string) {
		canvas.Polygon([]int{10, 20, 14, 14, 6, 6, 0}, []int{0, 10, 10, 20, 20, 10, 10}, style)
	}},
	IconArrowDown: {width: 20, height: 20, draw: func(canvas *svg.SVG, style string) {
		canvas.Polygon([]int{6, 14, 14, 20, 10, 0, 6}, []int{0, 0, 10, 10, 20, 10, 10}, style)
	}},
	IconPlay: {width: 6, height: 8, draw: func(canvas *svg.SVG, style string) {
		canvas.Polygon([]int{0, 6, 0}, []int{0, 4, 8}, style)
	}},
}

var (
	iconMu    sync.Mutex
	iconCache = make(map[string]*image.RGBA)
)

// DrawIcon composites a named icon with its top-left corner at (x, y).
func (c *Canvas) DrawIcon(x, y int, name string, col color.RGBA) error {
	icon, err := rasterIcon(name, col)
	if err != nil {
		return err
	}
	rect := icon.Bounds().Add(image.Pt(x, y))
	draw.Draw(c.img, rect, icon, image.Point{}, draw.Over)
	c.touch()
	return nil
}

// rasterIcon renders the icon's SVG markup once per name and colour.
func rasterIcon(name string, col color.RGBA) (*image.RGBA, error) {
	shape, ok := iconShapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown icon %q", name)
	}
	fill := fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
	key := name + fill

	iconMu.Lock()
	defer iconMu.Unlock()
	if img, ok := iconCache[key]; ok {
		return img, nil
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(shape.width, shape.height, 0, 0, shape.width, shape.height)
	shape.draw(canvas, "fill:"+fill)
	canvas.End()

	icon, err := oksvg.ReadIconStream(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse icon %q: %w", name, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, shape.width, shape.height))
	icon.SetTarget(0, 0, float64(shape.width), float64(shape.height))
	scanner := rasterx.NewScannerGV(shape.width, shape.height, img, img.Bounds())
	dasher := rasterx.NewDasher(shape.width, shape.height, scanner)
	icon.Draw(dasher, 1.0)

	iconCache[key] = img
	return img, nil
}

// signSize is the edge length of the plus/minus glyph.
const signSize = 14

// DrawSign draws a plus or minus glyph with its top-left corner at (x, y).
func (c *Canvas) DrawSign(x, y int, plus bool, col color.Color) {
	gc := draw2dimg.NewGraphicContext(c.img)
	gc.SetFillColor(col)

	fx, fy := float64(x), float64(y)
	bar := float64(signSize) / 2
	draw2dkit.Rectangle(gc, fx, fy+bar-2, fx+signSize, fy+bar+2)
	gc.Fill()
	if plus {
		draw2dkit.Rectangle(gc, fx+bar-2, fy, fx+bar+2, fy+signSize)
		gc.Fill()
	}
	c.touch()
}

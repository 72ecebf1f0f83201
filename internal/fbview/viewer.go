// Package fbview shows one page of bank images on a display, usually the Linux framebuffer.
package fbview

import (
	"context"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/logging"
	"github.com/rook-computer/deckgfx/internal/render"
	"github.com/rook-computer/deckgfx/internal/render/layout"
)

const component = "fb"

// DefaultColumns matches the 8 wide layout of a 32 button surface.
const DefaultColumns = 8

// CellGap is the spacing between banks in a composed page.
const CellGap = 4

// PageSource supplies the images of a page. *graphics.Graphics implements it.
type PageSource interface {
	GetImagesForPage(page int) []graphics.BankImage
}

// Viewer redraws one page whenever one of its banks changes.
// It implements graphics.Listener.
type Viewer struct {
	Source  PageSource
	Page    int
	Columns int
	Logger  logging.Logger

	redraw chan struct{}
}

func NewViewer(source PageSource, page, columns int) *Viewer {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return &Viewer{
		Source:  source,
		Page:    page,
		Columns: columns,
		Logger:  logging.NoopLogger{},
		redraw:  make(chan struct{}, 1),
	}
}

func (v *Viewer) BankBackground(graphics.Coordinate, int) {}

func (v *Viewer) BankInvalidated(c graphics.Coordinate) {
	if c.Page == v.Page {
		v.requestRedraw()
	}
}

// requestRedraw never blocks; pending requests collapse into one.
func (v *Viewer) requestRedraw() {
	select {
	case v.redraw <- struct{}{}:
	default:
	}
}

// Compose lays the page's banks out in a grid, row by row.
func (v *Viewer) Compose() *image.RGBA {
	return ComposePage(v.Source.GetImagesForPage(v.Page), v.Columns, v.Logger)
}

// ComposePage lays images out in a grid of the given width, CellGap apart.
func ComposePage(images []graphics.BankImage, columns int, logger logging.Logger) *image.RGBA {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if logger == nil {
		logger = logging.NoopLogger{}
	}
	rows := (len(images) + columns - 1) / columns
	if rows == 0 {
		rows = 1
	}
	bounds := image.Rect(0, 0, columns*render.BankSize+(columns-1)*CellGap, rows*render.BankSize+(rows-1)*CellGap)
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, &image.Uniform{C: render.Black}, image.Point{}, draw.Src)

	cells := layout.Grid(bounds, columns, rows, CellGap)
	for i, bank := range images {
		img, err := bank.Image()
		if err != nil {
			logger.Errorf(component, "bank %d: %v", i+1, err)
			continue
		}
		draw.Draw(out, cells[i], img, image.Point{}, draw.Src)
	}
	return out
}

// Blit scales src to fit dst keeping its aspect ratio, centred on a black background.
func Blit(dst draw.Image, src image.Image) {
	db := dst.Bounds()
	sb := src.Bounds()
	if db.Empty() || sb.Empty() {
		return
	}

	frame := image.NewRGBA(db)
	draw.Draw(frame, db, &image.Uniform{C: render.Black}, image.Point{}, draw.Src)

	w, h := db.Dx(), sb.Dy()*db.Dx()/sb.Dx()
	if h > db.Dy() {
		w, h = sb.Dx()*db.Dy()/sb.Dy(), db.Dy()
	}
	target := layout.Align(db, w, h, layout.Center, layout.Center)
	xdraw.NearestNeighbor.Scale(frame, image.Rectangle{Min: target, Max: target.Add(image.Pt(w, h))}, src, sb, xdraw.Src, nil)

	draw.Draw(dst, db, frame, db.Min, draw.Src)
}

// Run draws the page to dst once, then again after every change, until ctx is done.
func (v *Viewer) Run(ctx context.Context, dst draw.Image) {
	v.Logger.Infof(component, "showing page %d, %d columns", v.Page, v.Columns)
	v.requestRedraw()
	for {
		select {
		case <-ctx.Done():
			return
		case <-v.redraw:
			Blit(dst, v.Compose())
		}
	}
}

package graphics

import (
	"encoding/base64"
	"image"
	"strconv"

	"github.com/rook-computer/deckgfx/internal/render"
	"github.com/rook-computer/deckgfx/internal/render/layout"
)

// Fixed positions inside a bank canvas.
var (
	topbarRect  = image.Rect(0, 0, render.BankSize, render.TopbarHeight)
	fullRect    = image.Rect(0, 0, render.BankSize, render.BankSize)
	contentRect = image.Rect(0, render.ContentTop, render.BankSize, render.BankSize)

	textRect       = image.Rect(2, 18, 70, 70)
	textRectNoTop  = image.Rect(2, 2, 70, 70)
	pageLabelRect  = image.Rect(0, 0, render.BankSize, 30)
	pageNumberRect = image.Rect(0, 32, render.BankSize, 62)
)

const (
	pushBorderDepth = 3
	pageNameSize    = 18
)

// drawBank renders the stored style of c, merged with its feedback override, into the cache.
func (g *Graphics) drawBank(c Coordinate) *render.Canvas {
	stored, ok := g.source.BankStyle(c.Page, c.Bank)
	if !ok || stored.Style == "" {
		return g.drawPlaceholder(c)
	}
	return g.drawBankImage(stored.WithOverride(g.feedbacks.Style(c)), &c)
}

// drawPlaceholder caches the dim label shown by unconfigured banks.
func (g *Graphics) drawPlaceholder(c Coordinate) *render.Canvas {
	canvas := g.newCanvas()
	canvas.DrawTextLine(2, 3, c.String(), render.PlaceholderText)
	canvas.HorizontalLine(render.DividerRow, render.PlaceholderLine)
	g.buffers[c] = canvas
	delete(g.lastDraw, c)
	delete(g.styles, c)
	return canvas
}

// drawBankImage renders style. A nil coordinate is a preview: nothing is cached and no
// per-bank state is consulted.
func (g *Graphics) drawBankImage(style BankStyle, c *Coordinate) *render.Canvas {
	var canvas *render.Canvas
	if c != nil {
		g.styles[*c] = style.Style
		delete(g.lastDraw, *c)
		if cached, ok := g.buffers[*c]; ok {
			canvas = cached
			canvas.Fill(topbarRect, render.Black)
		} else {
			canvas = g.newCanvas()
			g.buffers[*c] = canvas
		}
	} else {
		canvas = g.newCanvas()
	}

	switch style.Style {
	case StylePageUp:
		g.drawPageUp(canvas, c)
	case StylePageDown:
		g.drawPageDown(canvas, c)
	case StylePageNum:
		g.drawPageNum(canvas, c)
	case "":
	default:
		g.drawCustom(canvas, style, c)
	}
	return canvas
}

func (g *Graphics) drawPageUp(canvas *render.Canvas, c *Coordinate) {
	canvas.BackgroundColor(render.NavBackground)
	g.notifyBackground(c, 0)

	if g.userConfig.PagePlusMinus {
		canvas.DrawSign(29, 20, !g.userConfig.PageDirectionFlipped, render.White)
	} else {
		g.drawIcon(canvas, 26, 20, render.IconArrowUp, c)
	}
	canvas.DrawAlignedText(image.Rect(0, 39, render.BankSize, 47), "UP", render.Yellow, 0, layout.Center, layout.Center)
}

func (g *Graphics) drawPageDown(canvas *render.Canvas, c *Coordinate) {
	canvas.BackgroundColor(render.NavBackground)
	g.notifyBackground(c, 0)

	if g.userConfig.PagePlusMinus {
		canvas.DrawSign(29, 40, g.userConfig.PageDirectionFlipped, render.White)
	} else {
		g.drawIcon(canvas, 26, 40, render.IconArrowDown, c)
	}
	canvas.DrawAlignedText(image.Rect(0, 25, render.BankSize, 33), "DOWN", render.Yellow, 0, layout.Center, layout.Center)
}

func (g *Graphics) drawPageNum(canvas *render.Canvas, c *Coordinate) {
	canvas.BackgroundColor(render.NavBackground)
	g.notifyBackground(c, 0)

	if c == nil {
		g.drawPageLabel(canvas, "x")
		return
	}
	name, ok := g.source.PageName(c.Page)
	if !ok || name == "" || name == DefaultPageName {
		g.drawPageLabel(canvas, strconv.Itoa(c.Page))
		return
	}
	canvas.DrawAlignedText(fullRect, name, render.White, pageNameSize, layout.Center, layout.Center)
}

func (g *Graphics) drawPageLabel(canvas *render.Canvas, value string) {
	canvas.DrawAlignedText(pageLabelRect, DefaultPageName, render.Yellow, 0, layout.Center, layout.Bottom)
	canvas.DrawAlignedText(pageNumberRect, value, render.White, pageNameSize, layout.Center, layout.Top)
}

func (g *Graphics) drawCustom(canvas *render.Canvas, style BankStyle, c *Coordinate) {
	if style.Alignment == "" {
		style.Alignment = DefaultAlignment
	}
	if style.PNGAlignment == "" {
		style.PNGAlignment = DefaultAlignment
	}
	if c != nil {
		g.lastDraw[*c] = style
	}

	content, text := contentRect, textRect
	if g.userConfig.RemoveTopbar {
		content, text = fullRect, textRectNoTop
	}

	canvas.Fill(content, render.RGB(style.BgColor))
	g.notifyBackground(c, style.BgColor)

	if style.PNG64 != nil {
		halign, valign := layout.ParseAlignment(style.PNGAlignment)
		data, err := base64.StdEncoding.DecodeString(*style.PNG64)
		if err == nil {
			err = canvas.DrawFromPNGData(data, content, halign, valign)
		}
		if err != nil {
			g.log.Errorf(component, "bank %s: %v", label(c), err)
			canvas.Fill(content, render.Black)
			canvas.DrawAlignedText(text, "PNG\nERROR", render.Red, 0, layout.Center, layout.Center)
			g.drawTopbar(canvas, c)
			return
		}
	}

	if style.Img64 != nil {
		data, err := base64.StdEncoding.DecodeString(*style.Img64)
		if err == nil {
			err = canvas.DrawPixelBuffer(content, data)
		}
		if err != nil {
			g.log.Errorf(component, "bank %s: raw image: %v", label(c), err)
			canvas.Fill(content, render.Black)
			canvas.DrawAlignedText(text, "IMAGE\nDRAW\nERROR", render.Red, 0, layout.Center, layout.Center)
			g.drawTopbar(canvas, c)
			return
		}
	}

	halign, valign := layout.ParseAlignment(style.Alignment)
	canvas.DrawAlignedText(text, g.variables.Parse(style.Text), render.RGB(style.Color), style.Size.Points(), halign, valign)
	g.drawTopbar(canvas, c)
}

// drawTopbar draws the coordinate label and status overlays, or the push border when the
// topbar is hidden.
func (g *Graphics) drawTopbar(canvas *render.Canvas, c *Coordinate) {
	pushed := c != nil && g.pushed[*c]

	if g.userConfig.RemoveTopbar {
		if pushed {
			canvas.DrawBorder(pushBorderDepth, render.Yellow)
		}
	} else {
		canvas.HorizontalLine(render.DividerRow, render.Yellow)
		switch {
		case c == nil:
			canvas.DrawTextLine(3, 3, "x.x", render.Yellow)
		case pushed:
			canvas.Fill(topbarRect, render.Yellow)
			canvas.DrawTextLine(3, 3, c.String(), render.Black)
		default:
			canvas.DrawTextLine(3, 3, c.String(), render.Yellow)
		}
	}

	if c == nil {
		return
	}
	switch g.actions.Status(*c) {
	case ActionStatusWarning:
		canvas.BoxFilled(62, 2, 70, 10, render.Orange)
	case ActionStatusError:
		canvas.BoxFilled(62, 2, 70, 10, render.Red)
	}
	if g.actions.Running(*c) {
		g.drawIcon(canvas, 55, 3, render.IconPlay, c)
	}
}

func (g *Graphics) drawIcon(canvas *render.Canvas, x, y int, name string, c *Coordinate) {
	col := render.White
	if name == render.IconPlay {
		col = render.Green
	}
	if err := canvas.DrawIcon(x, y, name, col); err != nil {
		g.log.Errorf(component, "bank %s: icon %s: %v", label(c), name, err)
	}
}

func label(c *Coordinate) string {
	if c == nil {
		return "preview"
	}
	return c.String()
}

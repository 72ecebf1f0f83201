package render

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/deckgfx/internal/render/layout"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// SizeAuto asks DrawAlignedText to pick the largest size that fits.
const SizeAuto = -1

// autoSizes are tried largest first; 0 is the built-in small face.
var autoSizes = []int{44, 30, 24, 18, 14, 0}

var (
	regularOnce sync.Once
	regularFont *truetype.Font
)

// faceFor returns the face used for a point size. Size 0 is the small bitmap face.
func faceFor(points int) font.Face {
	if points <= 0 {
		return basicfont.Face7x13
	}
	regularOnce.Do(func() {
		// goregular.TTF is embedded in the module, a parse failure leaves the bitmap fallback.
		regularFont, _ = truetype.Parse(goregular.TTF)
	})
	if regularFont == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(regularFont, &truetype.Options{Size: float64(points), DPI: 72, Hinting: font.HintingFull})
}

// DrawTextLine draws a single line of small text with its top-left corner at (x, y).
func (c *Canvas) DrawTextLine(x, y int, text string, col color.Color) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	drawer := &font.Drawer{Dst: c.img, Src: &image.Uniform{C: col}, Face: face}
	drawer.Dot = fixed.P(x, y+metrics.Ascent.Round())
	drawer.DrawString(text)

	width := font.MeasureString(face, text).Ceil()
	c.record(image.Rect(x, y, x+width, y+metrics.Height.Ceil()), []string{text})
	c.touch()
}

// DrawAlignedText wraps text into rect and draws it aligned, clipped to rect.
// Both a newline and the two characters `\n` break lines.
func (c *Canvas) DrawAlignedText(rect image.Rectangle, text string, col color.Color, points int, halign, valign string) {
	rect = layout.Normalize(rect)
	if points == SizeAuto {
		points = fitSize(rect, text)
	}
	face := faceFor(points)
	defer face.Close()

	lines := wrapText(face, text, rect.Dx())
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	blockWidth := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > blockWidth {
			blockWidth = w
		}
	}
	origin := layout.Align(rect, blockWidth, lineHeight*len(lines), halign, valign)

	dst := c.img.SubImage(rect).(*image.RGBA)
	drawer := &font.Drawer{Dst: dst, Src: &image.Uniform{C: col}, Face: face}
	for i, line := range lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		lineTop := origin.Y + i*lineHeight
		x := layout.Align(image.Rect(rect.Min.X, lineTop, rect.Max.X, lineTop+lineHeight), lineWidth, lineHeight, halign, layout.Top).X
		drawer.Dot = fixed.P(x, lineTop+metrics.Ascent.Round())
		drawer.DrawString(line)
	}

	box := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(blockWidth, lineHeight*len(lines)))}
	c.record(box.Intersect(rect), lines)
	c.touch()
}

// fitSize picks the largest auto size whose wrapped text fits rect.
func fitSize(rect image.Rectangle, text string) int {
	for _, points := range autoSizes {
		face := faceFor(points)
		lines := wrapText(face, text, rect.Dx())
		fits := len(lines)*face.Metrics().Height.Ceil() <= rect.Dy()
		for _, line := range lines {
			if font.MeasureString(face, line).Ceil() > rect.Dx() {
				fits = false
			}
		}
		face.Close()
		if fits {
			return points
		}
	}
	return 0
}

// wrapText breaks text into lines no wider than maxWidth, splitting words only when a
// single word does not fit on its own.
func wrapText(face font.Face, text string, maxWidth int) []string {
	text = strings.ReplaceAll(text, `\n`, "\n")
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if font.MeasureString(face, candidate).Ceil() <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = ""
			for _, part := range breakWord(face, word, maxWidth) {
				if current != "" {
					lines = append(lines, current)
				}
				current = part
			}
		}
		lines = append(lines, current)
	}
	return lines
}

func breakWord(face font.Face, word string, maxWidth int) []string {
	var parts []string
	current := ""
	for _, r := range word {
		candidate := current + string(r)
		if current != "" && font.MeasureString(face, candidate).Ceil() > maxWidth {
			parts = append(parts, current)
			candidate = string(r)
		}
		current = candidate
	}
	return append(parts, current)
}

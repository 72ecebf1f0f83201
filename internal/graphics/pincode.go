package graphics

import (
	"image"
	"regexp"
	"strconv"

	"github.com/rook-computer/deckgfx/internal/render"
	"github.com/rook-computer/deckgfx/internal/render/layout"
)

// LockoutIndex is the position of the lockout screen in a PincodeImageSet.
const LockoutIndex = 10

const (
	pincodeDigitSize = 44
	lockoutLabelSize = 14
	lockoutCodeSize  = 18
)

var (
	lockoutLabelRect = image.Rect(0, -10, render.BankSize, 62)
	lockoutCodeRect  = image.Rect(0, 15, render.BankSize, 87)

	pincodeMaskPattern = regexp.MustCompile(`(?i)[a-z0-9]`)
)

// MaskPincode hides every letter and digit of code.
func MaskPincode(code string) string {
	return pincodeMaskPattern.ReplaceAllString(code, "*")
}

// GetImagesForPincode returns the digit pad and a lockout screen showing code masked.
// The digit images are rendered once; the lockout screen is rendered on every call.
// A nil code leaves the lockout screen without an entry line.
func (g *Graphics) GetImagesForPincode(code *string) PincodeImageSet {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.pincodeReady {
		for digit := 0; digit < LockoutIndex; digit++ {
			canvas := g.newCanvas()
			canvas.BackgroundColor(render.NavBackground)
			canvas.DrawAlignedText(fullRect, strconv.Itoa(digit), render.White, pincodeDigitSize, layout.Center, layout.Center)
			g.pincode[digit] = g.imageOf(canvas, nil)
		}
		g.pincodeReady = true
	}

	canvas := g.newCanvas()
	canvas.BackgroundColor(render.NavBackground)
	canvas.DrawAlignedText(lockoutLabelRect, "Lockout", render.Yellow, lockoutLabelSize, layout.Center, layout.Center)
	if code != nil {
		canvas.DrawAlignedText(lockoutCodeRect, MaskPincode(*code), render.White, lockoutCodeSize, layout.Center, layout.Center)
	}
	g.pincode[LockoutIndex] = g.imageOf(canvas, nil)

	return g.pincode
}

package render

import "image/color"

// Bank canvas geometry.
const (
	BankSize = 72

	// TopbarHeight is the strip cleared before a cached canvas is redrawn.
	TopbarHeight = 15
	// ContentTop is the first row below the topbar divider.
	ContentTop = 14
	// DividerRow is where the topbar divider line is drawn.
	DividerRow = 13
)

// Palette shared by the bank renderers.
var (
	Black  = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	White  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Yellow = color.RGBA{R: 0xFF, G: 0xC6, B: 0x00, A: 0xFF} // button accent
	Red    = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	Orange = color.RGBA{R: 0xFF, G: 0x7F, B: 0x00, A: 0xFF}
	Green  = color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}

	// NavBackground is the near-black used behind page navigation glyphs and the pincode pad.
	NavBackground = color.RGBA{R: 15, G: 15, B: 15, A: 0xFF}

	PlaceholderText = color.RGBA{R: 50, G: 50, B: 50, A: 0xFF}
	PlaceholderLine = color.RGBA{R: 30, G: 30, B: 30, A: 0xFF}
)

// RGB converts a saved 0xRRGGBB colour value.
func RGB(value int) color.RGBA {
	return color.RGBA{R: uint8(value >> 16), G: uint8(value >> 8), B: uint8(value), A: 0xFF}
}

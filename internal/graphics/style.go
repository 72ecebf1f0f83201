package graphics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rook-computer/deckgfx/internal/render"
)

// Grid limits.
const (
	MaxPages          = 99
	DefaultMaxButtons = 32
)

// Style kinds with dedicated renderers. Any other non-empty style is a custom button.
const (
	StylePageUp   = "pageup"
	StylePageDown = "pagedown"
	StylePageNum  = "pagenum"
)

// DefaultPageName is the name pages carry until the user renames them.
const DefaultPageName = "PAGE"

// DefaultAlignment applies to configurations saved before alignment support.
const DefaultAlignment = "center:center"

// Coordinate addresses one bank on a page.
type Coordinate struct {
	Page int `json:"page"`
	Bank int `json:"bank"`
}

func (c Coordinate) String() string { return fmt.Sprintf("%d.%d", c.Page, c.Bank) }

func isPageControl(style string) bool {
	return style == StylePageUp || style == StylePageDown || style == StylePageNum
}

// Size is a saved text size: a point size, or one of the legacy tokens "small", "large"
// or "auto". JSON numbers and strings are both accepted.
type Size string

func (s *Size) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("size: %w", err)
		}
		*s = Size(str)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("size: %w", err)
		}
		*s = Size(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return nil
}

func (s Size) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(s)); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(s))
}

// Points resolves the size for drawing. Legacy values map as "small", 0 and 7 to the
// small face, "large" to 14 and "auto" to render.SizeAuto.
func (s Size) Points() int {
	switch v := strings.ToLower(strings.TrimSpace(string(s))); v {
	case "", "small", "0", "7":
		return 0
	case "large":
		return 14
	case "auto":
		return render.SizeAuto
	default:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
}

// BankStyle is the saved appearance of a bank.
type BankStyle struct {
	Style        string  `json:"style"`
	Text         string  `json:"text,omitempty"`
	Size         Size    `json:"size,omitempty"`
	Color        int     `json:"color"`
	BgColor      int     `json:"bgcolor"`
	Alignment    string  `json:"alignment,omitempty"`
	PNGAlignment string  `json:"pngalignment,omitempty"`
	PNG64        *string `json:"png64,omitempty"`
	Img64        *string `json:"img64,omitempty"`
}

// StyleOverride holds the fields a feedback replaces; nil fields keep the saved value.
type StyleOverride struct {
	Text         *string `json:"text,omitempty"`
	Size         *Size   `json:"size,omitempty"`
	Color        *int    `json:"color,omitempty"`
	BgColor      *int    `json:"bgcolor,omitempty"`
	Alignment    *string `json:"alignment,omitempty"`
	PNGAlignment *string `json:"pngalignment,omitempty"`
	PNG64        *string `json:"png64,omitempty"`
	Img64        *string `json:"img64,omitempty"`
}

// WithOverride returns a copy of s with the override's fields applied. s is not modified.
func (s BankStyle) WithOverride(o *StyleOverride) BankStyle {
	out := s
	if o == nil {
		return out
	}
	if o.Text != nil {
		out.Text = *o.Text
	}
	if o.Size != nil {
		out.Size = *o.Size
	}
	if o.Color != nil {
		out.Color = *o.Color
	}
	if o.BgColor != nil {
		out.BgColor = *o.BgColor
	}
	if o.Alignment != nil {
		out.Alignment = *o.Alignment
	}
	if o.PNGAlignment != nil {
		out.PNGAlignment = *o.PNGAlignment
	}
	if o.PNG64 != nil {
		png := *o.PNG64
		out.PNG64 = &png
	}
	if o.Img64 != nil {
		img := *o.Img64
		out.Img64 = &img
	}
	return out
}

// UserConfig keys the renderer reacts to.
const (
	KeyPageDirectionFlipped = "page_direction_flipped"
	KeyPagePlusMinus        = "page_plusminus"
	KeyRemoveTopbar         = "remove_topbar"
)

// UserConfig is the renderer's copy of the global display settings.
type UserConfig struct {
	PageDirectionFlipped bool `json:"page_direction_flipped"`
	PagePlusMinus        bool `json:"page_plusminus"`
	RemoveTopbar         bool `json:"remove_topbar"`
}

package web

import (
	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/logging"
)

// Renderer is the part of graphics.Graphics the API drives.
type Renderer interface {
	InGrid(c graphics.Coordinate) bool
	GetBank(page, bank int) graphics.BankImage
	GetImagesForPage(page int) []graphics.BankImage
	GetImagesForPincode(code *string) graphics.PincodeImageSet
	Invalidate(page, bank int)
	IndicatePush(page, bank int, pressed bool)
	IsPushed(page, bank int) bool
	PageNameChanged(page int, name string)
	SetUserConfigKey(key string, value bool)
	Preview(style graphics.BankStyle) []byte
}

// BankStore persists the configuration the API edits.
//
// The concrete implementation is *store.Store.
type BankStore interface {
	SaveBank(page, bank int, style graphics.BankStyle) error
	DeleteBank(page, bank int) error
	SetPageName(page int, name string) error
	SetUserConfig(key string, value any) error
}

type APIV1Deps struct {
	Renderer Renderer
	Store    BankStore
	Logger   logging.Logger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	if d.Logger == nil {
		d.Logger = logging.NoopLogger{}
	}
	return d
}

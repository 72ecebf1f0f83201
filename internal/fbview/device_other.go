//go:build !linux

package fbview

import (
	"errors"

	"github.com/rook-computer/deckgfx/internal/logging"
)

var errNoFramebuffer = errors.New("framebuffer output is only supported on linux")

func OpenDisplay(path string, log logging.Logger) (Display, error) {
	return nil, errNoFramebuffer
}

//go:build linux

package fbview

import (
	"fmt"

	fb "github.com/gonutz/framebuffer"

	"github.com/rook-computer/deckgfx/internal/logging"
)

type fbDisplay struct {
	*fb.Device
	log logging.Logger
}

// OpenDisplay maps the framebuffer at path and puts the console into graphics mode
// so the text cursor does not draw over the page. Close restores text mode.
func OpenDisplay(path string, log logging.Logger) (Display, error) {
	if path == "" {
		path = DefaultDevice
	}
	if log == nil {
		log = logging.NoopLogger{}
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	b := dev.Bounds()
	log.Infof(component, "framebuffer %s open, bounds=%dx%d", path, b.Dx(), b.Dy())

	if err := setConsoleMode(kdGraphics); err != nil {
		log.Errorf(component, "KD_GRAPHICS: %v", err)
	}
	return &fbDisplay{Device: dev, log: log}, nil
}

func (d *fbDisplay) Close() error {
	d.Device.Close()
	if err := setConsoleMode(kdText); err != nil {
		d.log.Errorf(component, "KD_TEXT: %v", err)
		return err
	}
	return nil
}

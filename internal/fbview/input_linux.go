//go:build linux

package fbview

import (
	"context"
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/rook-computer/deckgfx/internal/logging"
)

// WatchExitKey calls onExit once when F4 is pressed on any input device.
// Without input devices it logs and returns.
func WatchExitKey(ctx context.Context, log logging.Logger, onExit func()) {
	if onExit == nil {
		return
	}
	if log == nil {
		log = logging.NoopLogger{}
	}
	paths, err := evdev.ListDevicePaths()
	if err != nil || len(paths) == 0 {
		log.Infof("input", "no evdev devices found for F4 exit")
		return
	}

	var once sync.Once
	exit := func() {
		once.Do(func() {
			log.Infof("input", "F4 pressed: exiting")
			onExit()
		})
	}
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		go func() {
			<-ctx.Done()
			dev.Close()
		}()
		go watchDevice(ctx, dev, exit)
	}
}

// watchDevice reads until the device is closed or ctx ends.
func watchDevice(ctx context.Context, dev *evdev.InputDevice, exit func()) {
	for {
		ev, err := dev.ReadOne()
		if err != nil || ctx.Err() != nil {
			return
		}
		if isExitKey(ev) {
			exit()
			return
		}
	}
}

func isExitKey(ev *evdev.InputEvent) bool {
	return ev.Type == evdev.EV_KEY && ev.Code == evdev.KEY_F4 && ev.Value == 1
}

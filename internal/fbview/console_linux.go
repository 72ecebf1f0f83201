//go:build linux

package fbview

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A
)

var consolePaths = []string{"/dev/tty", "/dev/tty0"}

// setConsoleMode applies KDSETMODE to the first console that accepts it.
func setConsoleMode(mode int) error {
	var errs []error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			errs = append(errs, fmt.Errorf("open %s: %w", p, err))
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			errs = append(errs, fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err))
			continue
		}
		return nil
	}
	return errors.Join(errs...)
}

package fbview

import "image/draw"

// DefaultDevice is the first Linux framebuffer.
const DefaultDevice = "/dev/fb0"

// Display is an image the viewer draws into that must be released when done.
type Display interface {
	draw.Image
	Close() error
}

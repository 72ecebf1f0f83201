package app_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/deckgfx/internal/app"
	"github.com/rook-computer/deckgfx/internal/config"
	"github.com/rook-computer/deckgfx/internal/fbview"
	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/logging"
	"github.com/rook-computer/deckgfx/internal/render"
)

type memDisplay struct {
	mu     sync.Mutex
	img    *image.RGBA
	closed bool
}

func (d *memDisplay) ColorModel() color.Model { return d.img.ColorModel() }
func (d *memDisplay) Bounds() image.Rectangle { return d.img.Bounds() }

func (d *memDisplay) At(x, y int) color.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.img.At(x, y)
}

func (d *memDisplay) Set(x, y int, c color.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.img.Set(x, y, c)
}

func (d *memDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func testConfig() config.Config {
	return config.Config{
		DB:          ":memory:",
		MaxButtons:  4,
		TopbarDelay: time.Millisecond,
		FBPage:      1,
		FBColumns:   2,
	}
}

func TestApp_ExitStopsStart(t *testing.T) {
	a, err := app.New(testConfig(), nil)
	require.NoError(t, err)
	boom := errors.New("boom")

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()
	a.Exit(boom)
	a.Exit(nil)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return")
	}
	assert.NoError(t, a.Stop())
}

func TestApp_ServesStoredStyles(t *testing.T) {
	a, err := app.New(testConfig(), logging.NoopLogger{})
	require.NoError(t, err)
	require.NoError(t, a.Store.SaveBank(1, 1, graphics.BankStyle{Style: "text", Text: "Go"}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	cancel()
	require.NoError(t, <-done)

	img := a.Graphics.GetBank(1, 1)
	require.NotNil(t, img.Style)
	assert.Equal(t, "Go", img.Style.Text)
	assert.NoError(t, a.Stop())
}

func TestApp_FramebufferViewer(t *testing.T) {
	cfg := testConfig()
	cfg.FB = true
	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, a.Viewer)

	width := 2*render.BankSize + fbview.CellGap
	display := &memDisplay{img: image.NewRGBA(image.Rect(0, 0, width, width))}
	var openedPath string
	a.OpenDisplay = func(path string, _ logging.Logger) (fbview.Display, error) {
		openedPath = path
		return display, nil
	}
	a.Config.FBDevice = "/dev/fb1"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	require.NoError(t, a.Store.SaveBank(1, 1, graphics.BankStyle{Style: "text", BgColor: 0xFF0000}))
	a.Graphics.Invalidate(1, 1)
	require.Eventually(t, func() bool {
		return display.At(36, 40) == color.Color(color.RGBA{R: 255, A: 255})
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "/dev/fb1", openedPath)
	require.NoError(t, a.Stop())
	assert.True(t, display.closed)
}

func TestApp_DisplayErrorFailsStart(t *testing.T) {
	cfg := testConfig()
	cfg.FB = true
	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	a.OpenDisplay = func(string, logging.Logger) (fbview.Display, error) {
		return nil, errors.New("no fb")
	}

	err = a.Start(context.Background())

	assert.ErrorContains(t, err, "no fb")
	assert.NoError(t, a.Stop())
}

// Package app ties the bank store, the renderer, the HTTP API and the framebuffer
// viewer into one running service.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/deckgfx/internal/config"
	"github.com/rook-computer/deckgfx/internal/fbview"
	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/logging"
	"github.com/rook-computer/deckgfx/internal/store"
	"github.com/rook-computer/deckgfx/internal/web"
)

const component = "app"

type App struct {
	Config   config.Config
	Store    *store.Store
	Graphics *graphics.Graphics
	Web      web.Server
	Viewer   *fbview.Viewer
	Logger   logging.Logger

	// OpenDisplay opens the framebuffer when Config.FB is set.
	OpenDisplay func(path string, log logging.Logger) (fbview.Display, error)

	display  fbview.Display
	exitOnce atomic.Bool
	exitCh   chan error
}

// New opens the store and builds the renderer and API on top of it.
func New(cfg config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NoopLogger{}
	}
	s, err := store.Open(cfg.DB, cfg.MaxButtons)
	if err != nil {
		return nil, err
	}
	userConfig, err := s.UserConfig()
	if err != nil {
		s.Close()
		return nil, err
	}

	app := &App{
		Config:      cfg,
		Store:       s,
		Logger:      logger,
		OpenDisplay: fbview.OpenDisplay,
		exitCh:      make(chan error, 1),
	}

	opts := cfg.GraphicsOptions()
	opts.UserConfig = userConfig
	opts.Logger = logger
	if cfg.FB {
		app.Viewer = fbview.NewViewer(nil, cfg.FBPage, cfg.FBColumns)
		app.Viewer.Logger = logger
		opts.Listener = app.Viewer
	}
	app.Graphics = graphics.New(store.Source{Store: s, Logger: logger}, opts)
	if app.Viewer != nil {
		app.Viewer.Source = app.Graphics
	}

	app.Web = web.NewServer(
		web.ServerConfig{ListenAddr: cfg.Listen, DevMode: cfg.Dev},
		web.APIV1Deps{Renderer: app.Graphics, Store: s, Logger: logger},
	)
	return app, nil
}

// Exit asks a running Start to return err. Only the first call counts.
func (app *App) Exit(err error) {
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start renders every bank, starts serving and blocks until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	app.Graphics.ConfigReady()

	if err := app.Web.Start(ctx); err != nil {
		app.Logger.Errorf(component, "web start error: %v", err)
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup

	if app.Viewer != nil {
		display, err := app.OpenDisplay(app.Config.FBDevice, app.Logger)
		if err != nil {
			app.Logger.Errorf(component, "display error: %v", err)
			return fmt.Errorf("framebuffer: %w", err)
		}
		app.display = display
		fbview.WatchExitKey(loopCtx, app.Logger, func() { app.Exit(nil) })
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.Viewer.Run(loopCtx, display)
		}()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	return err
}

// Stop releases the server, the display, the renderer and the store.
func (app *App) Stop() error {
	var errs []error
	if err := app.Web.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("web: %w", err))
	}
	if app.display != nil {
		if err := app.display.Close(); err != nil {
			errs = append(errs, fmt.Errorf("display: %w", err))
		}
		app.display = nil
	}
	app.Graphics.Close()
	if err := app.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	return errors.Join(errs...)
}

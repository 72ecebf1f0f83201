package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/deckgfx/internal/app"
	"github.com/rook-computer/deckgfx/internal/config"
	"github.com/rook-computer/deckgfx/internal/fbview"
	"github.com/rook-computer/deckgfx/internal/graphics"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve bank images over HTTP",
		Long: `Renders every bank from the database and serves the /api/v1 endpoints until interrupted.
With --fb one page is also shown on the Linux framebuffer and redrawn as its banks change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts.logger.Infof(component, "serving %d pages of %d banks on %q", graphics.MaxPages, opts.cfg.MaxButtons, opts.cfg.Listen)
			runErr := a.Start(ctx)
			return errors.Join(runErr, a.Stop())
		},
	}

	flags := cmd.Flags()
	flags.StringP(config.KeyListen, "l", ":8080", "HTTP listen address; empty disables the API")
	flags.Bool(config.KeyDev, false, "allow cross-origin requests from development frontends")
	flags.Duration(config.KeyTopbarDelay, graphics.DefaultTopbarDelay, "delay before regenerating all banks after the topbar setting changes")
	flags.Bool(config.KeyFB, false, "show a page on the framebuffer")
	flags.String(config.KeyFBDevice, fbview.DefaultDevice, "framebuffer device")
	flags.Int(config.KeyFBPage, 1, "page shown on the framebuffer")
	flags.Int(config.KeyFBColumns, fbview.DefaultColumns, "banks per row on the framebuffer")
	return cmd
}

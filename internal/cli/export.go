package cli

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rook-computer/deckgfx/internal/fbview"
	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/logging"
	"github.com/rook-computer/deckgfx/internal/store"
)

type exportOptions struct {
	out     string
	pages   int
	columns int
	code    string
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var eo exportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every bank image to PNG files",
		Long: `Renders all banks from the database and writes one PNG per bank, one grid PNG per page
and the pincode images into the output directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if eo.pages < 1 || eo.pages > graphics.MaxPages {
				return fmt.Errorf("--pages must be 1-%d, got %d", graphics.MaxPages, eo.pages)
			}
			s, err := store.Open(opts.cfg.DB, opts.cfg.MaxButtons)
			if err != nil {
				return err
			}
			defer s.Close()
			userConfig, err := s.UserConfig()
			if err != nil {
				return err
			}

			gopts := opts.cfg.GraphicsOptions()
			gopts.UserConfig = userConfig
			gopts.Logger = opts.logger
			g := graphics.New(store.Source{Store: s, Logger: opts.logger}, gopts)
			defer g.Close()
			g.Generate(false)

			var code *string
			if cmd.Flags().Changed("code") {
				code = &eo.code
			}

			bar := progressbar.NewOptions(eo.pages+1,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("Exporting pages..."),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			if err := exportImages(g, eo, code, bar, opts.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d pages to %s\n", eo.pages, eo.out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&eo.out, "out", "o", "export", "output directory")
	flags.IntVar(&eo.pages, "pages", graphics.MaxPages, "export pages 1 to N")
	flags.IntVar(&eo.columns, "columns", fbview.DefaultColumns, "banks per row in the page grid images")
	flags.StringVar(&eo.code, "code", "", "entered pincode shown on the lockout image")
	return cmd
}

// exportImages writes page NN/bank MM PNGs, a grid per page and the pincode set.
func exportImages(g *graphics.Graphics, eo exportOptions, code *string, bar *progressbar.ProgressBar, logger logging.Logger) error {
	for page := 1; page <= eo.pages; page++ {
		pageDir := filepath.Join(eo.out, fmt.Sprintf("page%02d", page))
		if err := os.MkdirAll(pageDir, 0o755); err != nil {
			return err
		}
		images := g.GetImagesForPage(page)
		for i, bank := range images {
			if err := writeBankPNG(filepath.Join(pageDir, fmt.Sprintf("bank%02d.png", i+1)), bank); err != nil {
				return err
			}
		}
		grid := fbview.ComposePage(images, eo.columns, logger)
		if err := writePNG(filepath.Join(eo.out, fmt.Sprintf("page%02d.png", page)), grid); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	pinDir := filepath.Join(eo.out, "pincode")
	if err := os.MkdirAll(pinDir, 0o755); err != nil {
		return err
	}
	set := g.GetImagesForPincode(code)
	for i, img := range set {
		name := strconv.Itoa(i) + ".png"
		if i == graphics.LockoutIndex {
			name = "lockout.png"
		}
		if err := writeBankPNG(filepath.Join(pinDir, name), img); err != nil {
			return err
		}
	}
	_ = bar.Add(1)
	return bar.Finish()
}

func writeBankPNG(path string, bank graphics.BankImage) error {
	img, err := bank.Image()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writePNG(path, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Package cli is the deckgfx command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rook-computer/deckgfx/internal/config"
	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/logging"
)

const component = "cli"

const (
	debugLogPath = "./deckgfx-debug.log"
	envStdioLog  = "DECKGFX_STDIO_LOG"
)

// rootOptions is shared by every subcommand; setup fills cfg and logger before they run.
type rootOptions struct {
	cfgFile  string
	debug    bool
	stdioLog string

	v       *viper.Viper
	cfg     config.Config
	logger  logging.Logger
	logFile io.Closer
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: config.New(), logger: logging.NoopLogger{}}

	cmd := &cobra.Command{
		Use:   "deckgfx",
		Short: "Render and serve the bank images of a button grid",
		Long: `deckgfx renders the 72x72 images of every page and bank of a control surface,
keeps them cached, and serves them over HTTP or shows a page on the Linux framebuffer.`,
		SilenceUsage:       true,
		PersistentPreRunE:  opts.setup,
		PersistentPostRunE: opts.teardown,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.deckgfx.toml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging to "+debugLogPath)
	flags.StringVar(&opts.stdioLog, "stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	flags.String(config.KeyDB, "deckgfx.db", "SQLite database holding bank styles")
	flags.Int(config.KeyMaxButtons, graphics.DefaultMaxButtons, "banks per page")

	cmd.AddCommand(newServeCommand(opts), newExportCommand(opts))
	return cmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	logPath := o.stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "stdio log redirect error:", err)
		}
	}

	if o.debug {
		f, err := os.OpenFile(debugLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "debug log open error:", err)
		} else {
			o.logFile = f
			o.logger = logging.NewFileLogger(f)
			o.logger.Infof(component, "debug logging enabled")
		}
	}

	if err := config.BindFlags(o.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(o.v, o.cfgFile)
	if err != nil {
		return err
	}
	o.cfg = cfg
	if used := o.v.ConfigFileUsed(); used != "" {
		o.logger.Infof(component, "config file: %s", used)
	}
	return nil
}

func (o *rootOptions) teardown(*cobra.Command, []string) error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	return err
}

// Package cmd wires the kolam command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"KolamBoard/internal/config"
	"KolamBoard/internal/logging"
	kolamnet "KolamBoard/internal/net"
	"KolamBoard/internal/render"
	"KolamBoard/internal/storage"
)

// AppContext is filled in before any subcommand runs.
type AppContext struct {
	Config  config.Config
	Logger  *slog.Logger
	Style   render.Style
	Storage *storage.Dir
}

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	storageDir string
}

func (app *AppContext) init(flags *globalFlags, stderr io.Writer) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}
	if flags.storageDir != "" {
		cfg.Storage.Dir = flags.storageDir
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: stderr,
	})
	if err != nil {
		return err
	}
	style, err := cfg.RenderStyle()
	if err != nil {
		return err
	}

	app.Config = cfg
	app.Logger = logger
	app.Style = style
	app.Storage = storage.NewDir(cfg.Storage.Dir, logger)
	logger.Debug("configuration loaded", "source", cfg.Source)
	return nil
}

// NewRootCommand builds the command tree. Running it without a subcommand
// opens the drawing board.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	app := &AppContext{}

	root := &cobra.Command{
		Use:           "kolam",
		Short:         "Draw kolam patterns on a dot grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(flags, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraw(cmd, app, false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config file (default: ./kolam.yaml if present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "override log format (json, console)")
	pf.StringVar(&flags.storageDir, "storage-dir", "", "directory for saved patterns")

	root.AddCommand(
		newDrawCommand(app),
		newViewCommand(app),
		newRenderCommand(app),
		newListCommand(app),
	)
	return root
}

// rewriteArgs turns "kolam kolam://host:port" into "kolam view kolam://host:port",
// so share links can be registered as a URL handler.
func rewriteArgs(args []string) []string {
	if len(args) == 1 && strings.HasPrefix(args[0], kolamnet.LinkScheme) {
		return []string{"view", args[0]}
	}
	return args
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	root.SetArgs(rewriteArgs(os.Args[1:]))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kolam:", err)
		return 1
	}
	return 0
}

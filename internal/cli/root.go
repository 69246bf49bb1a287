// Package cli contains the cobra command tree for thequest. Running the
// binary without a subcommand opens the window.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Akaiko1/thequest/internal/config"
	"github.com/Akaiko1/thequest/internal/editor"
	"github.com/Akaiko1/thequest/internal/logging"
	"github.com/Akaiko1/thequest/internal/output"
	"github.com/Akaiko1/thequest/internal/projects"
	"github.com/Akaiko1/thequest/internal/templates"
	"github.com/Akaiko1/thequest/internal/ui"
)

// options carries flag values and the services built from them.
type options struct {
	configFile string
	basePath   string
	verbose    bool
	noColor    bool

	config    *config.Config
	logger    *zap.Logger
	workspace *projects.Workspace

	newOpener func(command string, logger *zap.Logger) (editor.Opener, error)
	runWindow func(cfg *config.Config, logger *zap.Logger) error
}

func defaultOptions() *options {
	return &options{
		newOpener: func(command string, logger *zap.Logger) (editor.Opener, error) {
			return editor.NewCommandOpener(command, logger)
		},
		runWindow: func(cfg *config.Config, logger *zap.Logger) error {
			app, err := ui.New(cfg, logger)
			if err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

// Execute runs the command tree and exits non-zero on error.
func Execute(version string) {
	cmd := newRootCmd(defaultOptions())
	cmd.Version = version
	if err := cmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, output.StyleError.Render("error:"), err)
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "thequest",
		Short: "Create and find language-scaffolded project folders",
		Long: `thequest keeps projects under <base>/<Language>/<Name>, writes starter
files for new ones and shows which projects were touched most recently.

Run 'thequest' with no arguments to open the window.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.logger.Info("Starting window", zap.String("base", opts.config.BasePath))
			return opts.runWindow(opts.config, opts.logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file path (default: ~/.config/thequest/config.yaml)")
	flags.StringVar(&opts.basePath, "base", "", "Projects folder (overrides base_path)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newNewCmd(opts),
		newListCmd(opts),
		newStatsCmd(opts),
		newOpenCmd(opts),
		newLanguagesCmd(opts),
	)
	return rootCmd
}

// setup loads config, builds the logger and the workspace.
func (o *options) setup() error {
	logger, err := logging.New(o.verbose)
	if err != nil {
		return err
	}
	o.logger = logger

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.basePath != "" {
		cfg.BasePath = config.ExpandPath(o.basePath)
	}
	o.config = cfg

	output.SetNoColor(o.noColor || !output.StdoutIsTerminal())

	o.workspace = projects.NewWorkspace(cfg, templates.FromConfig(cfg), logger)
	logger.Debug("Config loaded",
		zap.String("base", cfg.BasePath),
		zap.String("editor", cfg.Editor),
		zap.Int("recent_limit", cfg.RecentLimit))
	return nil
}

func (o *options) opener() (editor.Opener, error) {
	opener, err := o.newOpener(o.config.Editor, o.logger)
	if err != nil {
		return nil, fmt.Errorf("configuring editor: %w", err)
	}
	return opener, nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

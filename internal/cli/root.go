// Package cli contains the newstimes commands.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Adda-Baaj/newstimes/internal/browser"
	"github.com/Adda-Baaj/newstimes/internal/config"
	"github.com/Adda-Baaj/newstimes/internal/logger"
	"github.com/Adda-Baaj/newstimes/internal/netcheck"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// SetBuildInfo records the values injected at link time.
func SetBuildInfo(v, c, bt string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	if bt != "" {
		buildTime = bt
	}
}

// app carries the state shared by every command of one invocation.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg *config.Config
	log logger.Logger

	opener  browser.Opener
	network netcheck.Checker
}

// Option overrides a collaborator, mostly for tests.
type Option func(*app)

// WithOpener replaces the system browser.
func WithOpener(o browser.Opener) Option {
	return func(a *app) { a.opener = o }
}

// WithNetwork replaces the connectivity pre-flight.
func WithNetwork(c netcheck.Checker) Option {
	return func(a *app) { a.network = c }
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{opener: browser.System{}, log: logger.NopLogger{}}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "newstimes",
		Short: "Latest Guardian headlines in your terminal",
		Long: `newstimes fetches the latest articles from the Guardian search API
for the section you follow and lists them.

Example usage:
  newstimes list                      # Articles for the saved section
  newstimes list --section sport      # One-off section override
  newstimes open 3                    # Open the third article in the browser
  newstimes settings set-section books`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./newstimes.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newListCmd(a),
		newOpenCmd(a),
		newSettingsCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	a.log = log

	a.log.DebugObj("configuration loaded", "config_loaded", map[string]any{
		"provider":      cfg.API.Provider,
		"settings_path": cfg.Settings.Path,
		"publishers":    cfg.Publishers.File,
	})
	return nil
}

func (a *app) colors() bool {
	return !a.noColor && !color.NoColor
}

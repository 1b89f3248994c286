// Package cli implements the biomart command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tedil/go-biomart/pkg/biomart"
	"github.com/tedil/go-biomart/pkg/buildinfo"
	"github.com/tedil/go-biomart/pkg/errors"
)

// appName is the application name used for directories and display.
const appName = "biomart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	server  string // --server flag value
	verbose bool   // --verbose flag value
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "biomart queries BioMart servers from the command line",
		Long:         `biomart lists marts, datasets, filters and attributes of a BioMart server and runs TSV queries against it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.server, "server", "s", "", "martservice URL (default from config or "+biomart.DefaultServerURL+")")

	// Register all subcommands
	root.AddCommand(c.martsCommand())
	root.AddCommand(c.datasetsCommand())
	root.AddCommand(c.filtersCommand())
	root.AddCommand(c.attributesCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newClient builds a client from the --server flag, environment and config
// file, in that order of precedence.
func (c *CLI) newClient() (*biomart.Client, *Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var opts []biomart.Option
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, biomart.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	return biomart.New(cfg.resolveServer(c.server), opts...), cfg, nil
}

// configDir returns the configuration directory using the XDG standard
// (~/.config/biomart/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "resolving home directory")
	}
	return filepath.Join(home, ".config", appName), nil
}

// Package cli provides the command-line interface for fsops.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gobeaver/fsops"
	"github.com/gobeaver/fsops/internal/logging"

	_ "github.com/gobeaver/fsops/driver/local"  // register local driver
	_ "github.com/gobeaver/fsops/driver/memory" // register memory driver
)

// CLI holds the opened filesystem, configuration and logger shared by all
// commands.
type CLI struct {
	FS     fsops.FileSystem
	Config *fsops.Config
	Log    zerolog.Logger
}

// rootFlags are the persistent flag values, applied over the environment
// configuration before the driver is opened.
type rootFlags struct {
	driver   string
	basePath string
	readOnly bool
	logLevel string
}

// NewRootCmd creates the root command for fsops
func NewRootCmd(version string) *cobra.Command {
	cli := &CLI{}
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "fsops",
		Short:   "File operations facade over a local or in-memory backend",
		Long:    "fsops exposes the facade's file, directory and watch operations as subcommands, one per operation, exiting 0 on success and a distinct non-zero code per error kind.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.init(flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.driver, "driver", "", "backend driver (local, memory); overrides BEAVER_FSOPS_DRIVER")
	pf.StringVar(&flags.basePath, "base", "", "base directory for the local driver; overrides BEAVER_FSOPS_LOCAL_BASE_PATH")
	pf.BoolVar(&flags.readOnly, "readonly", false, "refuse all write operations")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error); overrides BEAVER_FSOPS_LOG_LEVEL")

	rootCmd.AddCommand(
		newReadCmd(cli),
		newWriteCmd(cli),
		newAppendCmd(cli),
		newRemoveCmd(cli),
		newMkdirCmd(cli),
		newRmdirCmd(cli),
		newLsCmd(cli),
		newWatchCmd(cli),
		newSumCmd(cli),
	)

	return rootCmd
}

// init loads the environment configuration, applies flag overrides and
// opens the backend.
func (c *CLI) init(flags *rootFlags) error {
	cfg, err := fsops.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.driver != "" {
		cfg.Driver = flags.driver
	}
	if flags.basePath != "" {
		cfg.LocalBasePath = flags.basePath
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	c.Config = cfg
	c.Log = logging.NewFromSettings(cfg.LogLevel, cfg.LogFormat)

	fs, err := fsops.OpenDriver(cfg)
	if err != nil {
		return fmt.Errorf("failed to open driver: %w", err)
	}

	if flags.readOnly {
		fs = fsops.NewReadOnlyFileSystem(fs)
	}
	c.FS = fs

	c.Log.Debug().
		Str("driver", cfg.Driver).
		Str("base", cfg.LocalBasePath).
		Bool("readonly", flags.readOnly).
		Msg("backend opened")

	return nil
}

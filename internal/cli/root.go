package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

var rootCmd = &cobra.Command{
	Use:   "dbmetatool",
	Short: "Build, export and update Firebird database schemas",
	Long: `dbmetatool keeps a Firebird schema in versioned script files.

It builds a fresh database from domains.sql, tables.sql and procedures.sql,
exports the domains, tables and procedures of an existing database back into
those scripts plus metadata.json, and applies scripts to an existing database
with one transaction per file.

Configuration:
  Flags override environment variables, which override dbmeta.yaml in the
  working directory. A .env file in the working directory is loaded first.

Exit Codes:
  0   - Success
  1   - CLI usage error (no command, unknown command, missing flag)
  255 - Command failed (exit status -1)
  3   - Panic or unexpected system error`,
	SilenceUsage: true,
	// SilenceUsage hides usage for failing subcommands; an unknown
	// subcommand still shows it.
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			_ = cmd.Usage()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Usage()
		return fmt.Errorf("no command given: %w", dbmeta.ErrUsage)
	},
}

type rootFlagValues struct {
	verbose        bool
	logFormat      string
	timeout        time.Duration
	connectRetries int
}

var rootFlags rootFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false,
		"Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFormat, "log-format", logFormatConsole,
		"Log format: console|json")
	rootCmd.PersistentFlags().DurationVar(&rootFlags.timeout, "timeout", 0,
		"Upper bound for the whole operation (0 means no timeout)\n"+
			"Precedence: --timeout > timeout in dbmeta.yaml\n"+
			"Examples: 30s, 5m, 1h30m")
	rootCmd.PersistentFlags().IntVar(&rootFlags.connectRetries, "connect-retries", 0,
		"Extra connection attempts on transient network failures\n"+
			"Precedence: --connect-retries > connect_retries in dbmeta.yaml")
}

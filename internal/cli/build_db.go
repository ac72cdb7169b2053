package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/K3nZo20/DbMetaTool/internal/db"
	"github.com/K3nZo20/DbMetaTool/internal/services"
	"github.com/K3nZo20/DbMetaTool/internal/ui"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

var buildDbCmd = &cobra.Command{
	Use:   "build-db",
	Short: "Create a database and apply schema scripts",
	Long: `Build-db creates <db-dir>/database.fdb on the Firebird server when it does
not exist yet and applies domains.sql, tables.sql and procedures.sql from the
scripts directory, in that order. Missing scripts are skipped. The first
failing statement aborts the build.

When the scripts directory contains metadata.json its content is printed as
the build report.

The database directory must be reachable by the Firebird server under the
same path (local server or shared mount).

Server parameters:
  Precedence: flag > environment > dbmeta.yaml > default
    --host      $DBMETA_HOST     localhost
    --port      $DBMETA_PORT     3050
    --user      $ISC_USER        SYSDBA
    --password  $ISC_PASSWORD    masterkey
    --charset   $DBMETA_CHARSET  UTF8

Examples:
  dbmetatool build-db --db-dir /data/app --scripts-dir ./schema
  dbmetatool build-db --db-dir /data/app --scripts-dir ./schema --host fb01 --user APP`,
	Args: cobra.NoArgs,
	RunE: runBuildDb,
}

type buildDbFlagValues struct {
	dbDir, scriptsDir string
	server            db.ServerFlags
}

var buildDbFlags buildDbFlagValues

func init() {
	rootCmd.AddCommand(buildDbCmd)

	buildDbCmd.Flags().StringVar(&buildDbFlags.dbDir, "db-dir", "",
		"Directory that receives database.fdb (created when missing)")
	buildDbCmd.Flags().StringVar(&buildDbFlags.scriptsDir, "scripts-dir", "",
		"Directory holding domains.sql, tables.sql, procedures.sql and optionally metadata.json")

	buildDbCmd.Flags().StringVar(&buildDbFlags.server.Host, "host", "",
		"Firebird server host\n"+
			"Precedence: --host > $DBMETA_HOST > localhost")
	buildDbCmd.Flags().IntVar(&buildDbFlags.server.Port, "port", 0,
		"Firebird server port\n"+
			"Precedence: --port > $DBMETA_PORT > 3050")
	buildDbCmd.Flags().StringVar(&buildDbFlags.server.User, "user", "",
		"Firebird user (default: $ISC_USER or SYSDBA)")
	buildDbCmd.Flags().StringVar(&buildDbFlags.server.Password, "password", "",
		"Firebird password (default: $ISC_PASSWORD or masterkey)")
	buildDbCmd.Flags().StringVar(&buildDbFlags.server.Charset, "charset", "",
		"Connection character set (default: $DBMETA_CHARSET or UTF8)")

	_ = buildDbCmd.MarkFlagRequired("db-dir")
	_ = buildDbCmd.MarkFlagRequired("scripts-dir")
}

func runBuildDb(cmd *cobra.Command, args []string) error {
	env, err := prepareCommand(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	server, err := db.ResolveServerConfig(&buildDbFlags.server, db.LoadFromEnvironment(), env.project, "")
	if err != nil {
		return err
	}

	builder := services.NewBuilder(connectorFactory(env.logger), newCreator(), newFileSystem(), env.logger)

	ctx, stop := commandContext(cmd)
	defer stop()

	result, err := builder.Build(ctx, dbmeta.BuildConfig{
		DatabaseDir: buildDbFlags.dbDir,
		ScriptsDir:  buildDbFlags.scriptsDir,
		Connection:  server,
		RunOptions:  env.opts,
	})
	if err != nil {
		return fmt.Errorf("build-db failed: %w", err)
	}

	if result.Created {
		env.logger.Info("Created database %s", result.DatabasePath)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintMetadataReport(result.Metadata)
	printer.Success("Database built successfully.")
	return nil
}

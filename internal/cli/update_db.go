package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/K3nZo20/DbMetaTool/internal/db"
	"github.com/K3nZo20/DbMetaTool/internal/script"
	"github.com/K3nZo20/DbMetaTool/internal/services"
	"github.com/K3nZo20/DbMetaTool/internal/ui"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

var updateDbCmd = &cobra.Command{
	Use:   "update-db",
	Short: "Apply schema scripts to an existing database",
	Long: `Update-db applies domains.sql, tables.sql and procedures.sql to an existing
database, each file in its own transaction.

Statements rejected by the engine (for example "object already exists") are
reported with their SQL error code and skipped; the rest of the file still
commits. I/O errors, broken connections and cancellation roll back the
current file and stop the run.

Connection string:
  Precedence: --connection-string > $DBMETA_CONNECTION_STRING > dbmeta.yaml

Examples:
  dbmetatool update-db --connection-string "User=SYSDBA;Password=masterkey;Database=/data/app.fdb" --scripts-dir ./schema`,
	Args: cobra.NoArgs,
	RunE: runUpdateDb,
}

type updateDbFlagValues struct {
	connectionString, scriptsDir string
}

var updateDbFlags updateDbFlagValues

func init() {
	rootCmd.AddCommand(updateDbCmd)

	updateDbCmd.Flags().StringVar(&updateDbFlags.connectionString, "connection-string", "",
		"Firebird connection string (ADO.NET key=value or driver DSN)\n"+
			"Alternative: DBMETA_CONNECTION_STRING environment variable")
	updateDbCmd.Flags().StringVar(&updateDbFlags.scriptsDir, "scripts-dir", "",
		"Directory holding domains.sql, tables.sql and procedures.sql")

	_ = updateDbCmd.MarkFlagRequired("scripts-dir")
}

func runUpdateDb(cmd *cobra.Command, args []string) error {
	env, err := prepareCommand(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	conn, err := db.ResolveConnectionString(updateDbFlags.connectionString, db.LoadFromEnvironment(), env.project)
	if err != nil {
		return err
	}

	updater := services.NewUpdater(connectorFactory(env.logger), newFileSystem(), env.logger)

	ctx, stop := commandContext(cmd)
	defer stop()

	report, err := updater.Update(ctx, dbmeta.UpdateConfig{
		Connection: conn,
		ScriptsDir: updateDbFlags.scriptsDir,
		RunOptions: env.opts,
	})
	if err != nil {
		return fmt.Errorf("update-db failed: %w", err)
	}

	if skipped := countEngineErrors(report.Files); skipped > 0 {
		env.logger.Info("%d statement(s) were rejected by the engine and skipped", skipped)
	}

	ui.NewPrinter(cmd.OutOrStdout()).Success("Database updated successfully.")
	return nil
}

func countEngineErrors(files []script.FileReport) int {
	n := 0
	for _, f := range files {
		n += len(f.EngineErrors)
	}
	return n
}

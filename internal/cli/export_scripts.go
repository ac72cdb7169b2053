package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/K3nZo20/DbMetaTool/internal/db"
	"github.com/K3nZo20/DbMetaTool/internal/services"
	"github.com/K3nZo20/DbMetaTool/internal/ui"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

var exportScriptsCmd = &cobra.Command{
	Use:   "export-scripts",
	Short: "Export the schema of a database into scripts",
	Long: `Export-scripts reads the domains, tables and stored procedures of an
existing database and writes domains.sql, tables.sql, procedures.sql and
metadata.json into the output directory. Existing files are overwritten.

Field types without a known mapping are exported as UNKNOWN and reported as
warnings. Procedures without source text are left out.

Connection string:
  Precedence: --connection-string > $DBMETA_CONNECTION_STRING > dbmeta.yaml
  Formats:
    User=SYSDBA;Password=masterkey;Database=/data/app.fdb;DataSource=localhost;Port=3050
    SYSDBA:masterkey@localhost:3050//data/app.fdb

Examples:
  dbmetatool export-scripts --connection-string "User=SYSDBA;Password=masterkey;Database=/data/app.fdb" --output-dir ./schema`,
	Args: cobra.NoArgs,
	RunE: runExportScripts,
}

type exportScriptsFlagValues struct {
	connectionString, outputDir string
}

var exportScriptsFlags exportScriptsFlagValues

func init() {
	rootCmd.AddCommand(exportScriptsCmd)

	exportScriptsCmd.Flags().StringVar(&exportScriptsFlags.connectionString, "connection-string", "",
		"Firebird connection string (ADO.NET key=value or driver DSN)\n"+
			"Alternative: DBMETA_CONNECTION_STRING environment variable")
	exportScriptsCmd.Flags().StringVar(&exportScriptsFlags.outputDir, "output-dir", "",
		"Directory that receives the exported scripts (created when missing)")

	_ = exportScriptsCmd.MarkFlagRequired("output-dir")
}

func runExportScripts(cmd *cobra.Command, args []string) error {
	env, err := prepareCommand(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	conn, err := db.ResolveConnectionString(exportScriptsFlags.connectionString, db.LoadFromEnvironment(), env.project)
	if err != nil {
		return err
	}

	exporter := services.NewExporter(connectorFactory(env.logger), newFileSystem(), env.logger)

	ctx, stop := commandContext(cmd)
	defer stop()

	result, err := exporter.Export(ctx, dbmeta.ExportConfig{
		Connection: conn,
		OutputDir:  exportScriptsFlags.outputDir,
		RunOptions: env.opts,
	})
	if err != nil {
		return fmt.Errorf("export-scripts failed: %w", err)
	}

	env.logger.Info("Exported %d domain(s), %d table(s), %d procedure(s) to %s",
		result.Domains, result.Tables, result.Procedures, exportScriptsFlags.outputDir)

	ui.NewPrinter(cmd.OutOrStdout()).Success("Scripts exported successfully.")
	return nil
}

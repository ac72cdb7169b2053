package dbmeta

// Exit codes returned by the dbmetatool binary.
//   - 0: Success
//   - 1: CLI usage error (no command, unknown command, missing flag)
//   - -1: Any failure inside a recognized command (shell sees 255)
const (
	ExitSuccess    = 0
	ExitUsageError = 1
	ExitFailure    = -1
	ExitPanic      = 3 // Internal panic (unexpected crash)
)

// Well-known files of a scripts directory.
const (
	DomainsScript    = "domains.sql"
	TablesScript     = "tables.sql"
	ProceduresScript = "procedures.sql"
	MetadataFile     = "metadata.json"
)

// ExecutionOrder is the fixed order in which scripts are applied.
// Tables reference domains by name, so domains must exist first.
var ExecutionOrder = []string{DomainsScript, TablesScript, ProceduresScript}

// DatabaseFileName is the file created by build-db inside the database directory.
const DatabaseFileName = "database.fdb"

// SystemPrefix marks catalog objects owned or generated by the engine.
const SystemPrefix = "RDB$"

// Connection defaults used when a connection string or build flag omits a value.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 3050
	DefaultUser     = "SYSDBA"
	DefaultPassword = "masterkey"
	DefaultCharset  = "UTF8"
)

// MaxErrorPreviewLength is the maximum number of characters of a failed
// statement shown in error messages.
const MaxErrorPreviewLength = 200

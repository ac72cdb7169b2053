package catalog

// DomainRecord is a named, reusable column type.
type DomainRecord struct {
	Name    string `json:"Name"`
	SQLType string `json:"Type"`
}

// ColumnRecord is one column of a table. SQLType is either a quoted domain
// reference or a primitive type.
type ColumnRecord struct {
	Name    string `json:"Name"`
	SQLType string `json:"Type"`
}

// TableRecord is a user table with its columns in catalog position order.
type TableRecord struct {
	Name    string         `json:"Name"`
	Columns []ColumnRecord `json:"Columns"`
}

// ProcedureRecord is a stored procedure and its trimmed source text.
type ProcedureRecord struct {
	Name   string `json:"Name"`
	Source string `json:"Source"`
}

// Snapshot groups everything read from the catalog in one pass.
type Snapshot struct {
	Domains    []DomainRecord
	Tables     []TableRecord
	Procedures []ProcedureRecord
}

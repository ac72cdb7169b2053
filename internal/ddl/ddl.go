// Package ddl renders catalog records into executable Firebird DDL scripts
// and the metadata.json snapshot. Rendering is pure: no I/O happens here.
package ddl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/K3nZo20/DbMetaTool/internal/catalog"
)

// Terminator switch used around procedure bodies so that the semicolons
// inside PSQL are not taken as statement ends.
const (
	ProcedureTerminator = "^^"
	setTermOpen         = "SET TERM " + ProcedureTerminator + " ;"
	setTermClose        = "SET TERM ; " + ProcedureTerminator
)

// Metadata is the structured snapshot written to metadata.json.
// It contains exactly the records rendered into the three scripts.
type Metadata struct {
	Domains    []catalog.DomainRecord    `json:"Domains"`
	Tables     []catalog.TableRecord     `json:"Tables"`
	Procedures []catalog.ProcedureRecord `json:"Procedures"`
}

// Result holds the three script bodies and the metadata built from them.
type Result struct {
	Domains    string
	Tables     string
	Procedures string
	Metadata   Metadata
}

// Render builds all scripts from a catalog snapshot.
func Render(snap catalog.Snapshot) Result {
	domains, domainRecords := RenderDomains(snap.Domains)
	tables, tableRecords := RenderTables(snap.Tables)
	procedures, procRecords := RenderProcedures(snap.Procedures)

	return Result{
		Domains:    domains,
		Tables:     tables,
		Procedures: procedures,
		Metadata: Metadata{
			Domains:    domainRecords,
			Tables:     tableRecords,
			Procedures: procRecords,
		},
	}
}

// RenderDomains emits one CREATE DOMAIN line per record, in input order.
func RenderDomains(domains []catalog.DomainRecord) (string, []catalog.DomainRecord) {
	var b strings.Builder
	emitted := make([]catalog.DomainRecord, 0, len(domains))
	for _, d := range domains {
		fmt.Fprintf(&b, "CREATE DOMAIN %s AS %s;\n", catalog.QuoteIdentifier(d.Name), d.SQLType)
		emitted = append(emitted, d)
	}
	return b.String(), emitted
}

// RenderTables emits one CREATE TABLE block per record with columns in
// catalog position order.
func RenderTables(tables []catalog.TableRecord) (string, []catalog.TableRecord) {
	var b strings.Builder
	emitted := make([]catalog.TableRecord, 0, len(tables))
	for _, t := range tables {
		lines := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			lines = append(lines, catalog.QuoteIdentifier(c.Name)+" "+c.SQLType)
		}

		fmt.Fprintf(&b, "CREATE TABLE %s (\n", catalog.QuoteIdentifier(t.Name))
		b.WriteString("  " + strings.Join(lines, ",\n  ") + "\n")
		b.WriteString(");\n")

		columns := t.Columns
		if columns == nil {
			columns = []catalog.ColumnRecord{}
		}
		emitted = append(emitted, catalog.TableRecord{Name: t.Name, Columns: columns})
	}
	return b.String(), emitted
}

// RenderProcedures wraps every procedure with a non-blank source in a
// terminator switch block. Blank procedures are dropped from both outputs.
func RenderProcedures(procedures []catalog.ProcedureRecord) (string, []catalog.ProcedureRecord) {
	var b strings.Builder
	emitted := make([]catalog.ProcedureRecord, 0, len(procedures))
	for _, p := range procedures {
		source := strings.TrimSpace(p.Source)
		if source == "" {
			continue
		}

		b.WriteString(setTermOpen + "\n")
		fmt.Fprintf(&b, "CREATE OR ALTER PROCEDURE %s\n", catalog.QuoteIdentifier(p.Name))
		b.WriteString(source + " " + ProcedureTerminator + "\n")
		b.WriteString(setTermClose + "\n")

		emitted = append(emitted, catalog.ProcedureRecord{Name: p.Name, Source: source})
	}
	return b.String(), emitted
}

// MetadataJSON returns the indented metadata document with a trailing newline.
func (r Result) MetadataJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.Metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return append(data, '\n'), nil
}

// UnknownTypes names the domains and columns whose type fell back to UNKNOWN.
func (r Result) UnknownTypes() []string {
	var out []string
	for _, d := range r.Metadata.Domains {
		if d.SQLType == catalog.UnknownType {
			out = append(out, "domain "+d.Name)
		}
	}
	for _, t := range r.Metadata.Tables {
		for _, c := range t.Columns {
			if c.SQLType == catalog.UnknownType {
				out = append(out, "column "+t.Name+"."+c.Name)
			}
		}
	}
	return out
}

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// Reader runs the catalog queries over a single connection.
// Errors from the connection are wrapped but never retried.
type Reader struct {
	q dbmeta.Querier
}

// NewReader creates a Reader on top of the given Querier.
func NewReader(q dbmeta.Querier) *Reader {
	return &Reader{q: q}
}

// ListDomains returns the user domains in catalog enumeration order.
func (r *Reader) ListDomains(ctx context.Context) ([]DomainRecord, error) {
	rows, err := r.q.QueryContext(ctx, queryDomains)
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", err)
	}
	defer rows.Close()

	var domains []DomainRecord
	for rows.Next() {
		var (
			name                       string
			fieldType, length, charLen sql.NullInt64
		)
		if err := rows.Scan(&name, &fieldType, &length, &charLen); err != nil {
			return nil, fmt.Errorf("failed to scan domain row: %w", err)
		}
		domains = append(domains, DomainRecord{
			Name:    name,
			SQLType: MapFieldType(intOr(fieldType, -1), intOr(length, 0), intOr(charLen, 0)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read domains: %w", err)
	}
	return domains, nil
}

// ListTableNames returns the names of user tables, views excluded.
func (r *Reader) ListTableNames(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, queryTables)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}
	return names, nil
}

// ListColumns returns the columns of one table ordered by field position.
func (r *Reader) ListColumns(ctx context.Context, table string) ([]ColumnRecord, error) {
	rows, err := r.q.QueryContext(ctx, queryColumns, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %q: %w", table, err)
	}
	defer rows.Close()

	var columns []ColumnRecord
	for rows.Next() {
		var (
			name, source               string
			fieldType, length, charLen sql.NullInt64
		)
		if err := rows.Scan(&name, &source, &fieldType, &length, &charLen); err != nil {
			return nil, fmt.Errorf("failed to scan column row of %q: %w", table, err)
		}
		columns = append(columns, ColumnRecord{
			Name:    name,
			SQLType: ResolveColumnType(source, intOr(fieldType, -1), intOr(length, 0), intOr(charLen, 0)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns of %q: %w", table, err)
	}
	return columns, nil
}

// ListTables returns every user table with its columns.
// Table names are fully read before column queries start so only one
// cursor is open on the connection at a time.
func (r *Reader) ListTables(ctx context.Context) ([]TableRecord, error) {
	names, err := r.ListTableNames(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]TableRecord, 0, len(names))
	for _, name := range names {
		columns, err := r.ListColumns(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, TableRecord{Name: name, Columns: columns})
	}
	return tables, nil
}

// ListProcedures returns user procedures with trimmed source text.
// Procedures without source are returned with an empty Source.
func (r *Reader) ListProcedures(ctx context.Context) ([]ProcedureRecord, error) {
	rows, err := r.q.QueryContext(ctx, queryProcedures)
	if err != nil {
		return nil, fmt.Errorf("failed to query procedures: %w", err)
	}
	defer rows.Close()

	var procedures []ProcedureRecord
	for rows.Next() {
		var (
			name   string
			source sql.NullString
		)
		if err := rows.Scan(&name, &source); err != nil {
			return nil, fmt.Errorf("failed to scan procedure row: %w", err)
		}
		procedures = append(procedures, ProcedureRecord{
			Name:   name,
			Source: strings.TrimSpace(source.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read procedures: %w", err)
	}
	return procedures, nil
}

// Snapshot reads domains, tables and procedures in that order.
func (r *Reader) Snapshot(ctx context.Context) (Snapshot, error) {
	domains, err := r.ListDomains(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	tables, err := r.ListTables(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	procedures, err := r.ListProcedures(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Domains: domains, Tables: tables, Procedures: procedures}, nil
}

func intOr(v sql.NullInt64, fallback int) int {
	if !v.Valid {
		return fallback
	}
	return int(v.Int64)
}

// Package catalog reads schema objects from the Firebird system tables
// (RDB$FIELDS, RDB$RELATIONS, RDB$RELATION_FIELDS, RDB$PROCEDURES) and
// normalizes them into records with canonical DDL type strings.
//
// Only user objects are returned: rows with RDB$SYSTEM_FLAG <> 0, names
// starting with RDB$, and views are filtered out by the queries.
//
// Column types are resolved in two ways:
//   - a column whose field source is a named domain references it as "<domain>"
//   - a column backed by an engine-generated field (RDB$nnn) gets the primitive
//     type from MapFieldType
package catalog

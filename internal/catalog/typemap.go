package catalog

import (
	"fmt"
	"strings"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// RDB$FIELD_TYPE codes understood by MapFieldType.
const (
	FieldTypeSmallint  = 7
	FieldTypeInteger   = 8
	FieldTypeFloat     = 10
	FieldTypeDate      = 12
	FieldTypeTime      = 13
	FieldTypeChar      = 14
	FieldTypeBigint    = 16
	FieldTypeDouble    = 27
	FieldTypeTimestamp = 35
	FieldTypeVarchar   = 37
	FieldTypeCString   = 40
)

// UnknownType is emitted for type codes without a mapping. It is left in the
// generated DDL as a visible marker that the object needs manual review.
const UnknownType = "UNKNOWN"

// MapFieldType converts a catalog type code and its length metadata into a
// DDL type. It never fails: unrecognized codes map to UnknownType.
// For CHAR and VARCHAR the character length wins over the byte length when set.
func MapFieldType(fieldType, length, charLength int) string {
	switch fieldType {
	case FieldTypeSmallint:
		return "SMALLINT"
	case FieldTypeInteger:
		return "INTEGER"
	case FieldTypeFloat:
		return "FLOAT"
	case FieldTypeDate:
		return "DATE"
	case FieldTypeTime:
		return "TIME"
	case FieldTypeChar:
		return fmt.Sprintf("CHAR(%d)", effectiveLength(length, charLength))
	case FieldTypeBigint:
		return "BIGINT"
	case FieldTypeDouble:
		return "DOUBLE PRECISION"
	case FieldTypeTimestamp:
		return "TIMESTAMP"
	case FieldTypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", effectiveLength(length, charLength))
	case FieldTypeCString:
		return "CSTRING"
	default:
		return UnknownType
	}
}

func effectiveLength(length, charLength int) int {
	if charLength > 0 {
		return charLength
	}
	return length
}

// IsSystemName reports whether a catalog name belongs to an engine-generated object.
func IsSystemName(name string) bool {
	return strings.HasPrefix(name, dbmeta.SystemPrefix)
}

// ResolveColumnType returns the DDL type of a column. Columns based on a
// user domain reference it by quoted name; anonymous fields are mapped directly.
func ResolveColumnType(fieldSource string, fieldType, length, charLength int) string {
	if !IsSystemName(fieldSource) {
		return QuoteIdentifier(fieldSource)
	}
	return MapFieldType(fieldType, length, charLength)
}

// QuoteIdentifier wraps a catalog name in double quotes.
// Names are emitted as stored in the catalog, without escaping.
func QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

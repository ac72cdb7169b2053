package catalog

// Catalog queries. TRIM removes the CHAR padding of RDB$ name columns.
const (
	queryDomains = `
		SELECT TRIM(RDB$FIELD_NAME) AS FIELD_NAME,
		       RDB$FIELD_TYPE,
		       RDB$FIELD_LENGTH,
		       RDB$CHARACTER_LENGTH
		FROM RDB$FIELDS
		WHERE RDB$SYSTEM_FLAG = 0
		  AND RDB$FIELD_NAME NOT LIKE 'RDB$%'`

	queryTables = `
		SELECT TRIM(RDB$RELATION_NAME) AS RELATION_NAME
		FROM RDB$RELATIONS
		WHERE RDB$SYSTEM_FLAG = 0
		  AND RDB$VIEW_BLR IS NULL`

	queryColumns = `
		SELECT TRIM(rf.RDB$FIELD_NAME) AS FIELD_NAME,
		       TRIM(rf.RDB$FIELD_SOURCE) AS FIELD_SOURCE,
		       f.RDB$FIELD_TYPE,
		       f.RDB$FIELD_LENGTH,
		       f.RDB$CHARACTER_LENGTH
		FROM RDB$RELATION_FIELDS rf
		JOIN RDB$FIELDS f ON rf.RDB$FIELD_SOURCE = f.RDB$FIELD_NAME
		WHERE rf.RDB$RELATION_NAME = ?
		ORDER BY rf.RDB$FIELD_POSITION`

	queryProcedures = `
		SELECT TRIM(RDB$PROCEDURE_NAME) AS PROCEDURE_NAME,
		       RDB$PROCEDURE_SOURCE
		FROM RDB$PROCEDURES
		WHERE RDB$SYSTEM_FLAG = 0`
)

// Package script splits Firebird DDL scripts into statements and applies
// them to a live connection.
//
// # Statement splitting
//
// Split cuts a script on the current terminator (";" by default), trims each
// fragment and drops the empty ones. It does not parse string literals or
// comments. Procedure bodies rely on the isql terminator switch:
//
//	SET TERM ^^ ;
//	CREATE OR ALTER PROCEDURE "P"
//	AS BEGIN ... ; ... END ^^
//	SET TERM ; ^^
//
// SET TERM directives change the terminator and are consumed by the splitter;
// they are never sent to the server.
//
// # Execution modes
//
// ModePlain runs statements directly on the connection and stops at the
// first error. ModeTransactional runs each file in its own transaction:
// errors reported by the engine are logged and skipped, while I/O, connection
// state and cancellation errors roll the file back and stop the run.
package script

// Package manager creates Firebird database files for build-db.
//
// Firebird creates a database as a side effect of attaching through the
// firebirdsql_createdb driver, so Create opens, pings and closes a
// throwaway connection:
//
//	mgr := manager.New()
//	err := mgr.Create(ctx, cfg) // cfg.Database is the server-side file path
//
// The caller decides whether the file already exists; Create fails when
// it does.
package manager

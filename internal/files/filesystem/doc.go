// Package filesystem provides the file access abstraction used by the
// script executor and the exporter.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing, with injectable read errors
//
// Missing paths are reported with errors matching fs.ErrNotExist in both
// implementations, so callers can use errors.Is uniformly.
package filesystem

// Package files groups the file access layers used by dbmetatool.
//
// Subpackages:
//   - filesystem: read/write/stat abstraction with OS and in-memory providers
package files

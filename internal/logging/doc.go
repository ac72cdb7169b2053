// Package logging provides concrete implementations of the dbmeta.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: human-readable lines on stderr
//   - ZapLogger: structured JSON entries through go.uber.org/zap (--log-format json)
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging

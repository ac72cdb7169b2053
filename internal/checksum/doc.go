// Package checksum hashes schema scripts.
//
// Two checksums are computed per script:
//
//   - Raw: SHA-256 of the exact bytes (detects every change)
//   - Normalized: SHA-256 after removing comments and collapsing whitespace
//     outside literals (identifies scripts whose DDL is unchanged despite
//     reformatting)
//
// Case is preserved during normalization: quoted Firebird identifiers are
// case-sensitive, so "Customers" and "CUSTOMERS" name different objects.
//
// # Example Usage
//
//	calc := checksum.New()
//	raw := calc.CalculateRaw(content)
//	normalized := calc.CalculateNormalized(content)
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum

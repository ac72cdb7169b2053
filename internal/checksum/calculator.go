package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Calculator computes script checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum that ignores comments and
	// whitespace layout.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator with SHA-256. It is a zero-size value type.
type SHA256 struct{}

// New creates a SHA-256 calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (SHA256) CalculateRaw(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CalculateNormalized computes SHA-256 of Normalize(content).
func (SHA256) CalculateNormalized(content []byte) string {
	sum := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(sum[:])
}

type lexState int

const (
	inCode lexState = iota
	inLineComment
	inBlockComment
	inString     // '...' with '' as escape
	inIdentifier // "..." with "" as escape
)

// Normalize drops -- and /* */ comments, collapses whitespace runs outside
// literals into one space and trims the result. String literals and quoted
// identifiers are copied verbatim. Firebird block comments do not nest.
func Normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := inCode
	pendingSpace := false

	emit := func(s string) {
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteString(s)
	}

	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		rest := content[i:]

		switch state {
		case inCode:
			switch {
			case strings.HasPrefix(rest, "--"):
				state = inLineComment
				pendingSpace = true
				i += 2
			case strings.HasPrefix(rest, "/*"):
				state = inBlockComment
				pendingSpace = true
				i += 2
			case unicode.IsSpace(r):
				pendingSpace = true
				i += size
			case r == '\'':
				state = inString
				emit("'")
				i++
			case r == '"':
				state = inIdentifier
				emit(`"`)
				i++
			default:
				emit(rest[:size])
				i += size
			}

		case inLineComment:
			if r == '\n' {
				state = inCode
			}
			i += size

		case inBlockComment:
			if strings.HasPrefix(rest, "*/") {
				state = inCode
				i += 2
				continue
			}
			i += size

		case inString, inIdentifier:
			quote := byte('\'')
			if state == inIdentifier {
				quote = '"'
			}
			b.WriteString(rest[:size])
			i += size
			if rest[0] != quote {
				continue
			}
			if i < len(content) && content[i] == quote {
				b.WriteByte(quote)
				i++
				continue
			}
			state = inCode
		}
	}

	return b.String()
}

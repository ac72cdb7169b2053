package script

import (
	"regexp"
	"strings"
)

// DefaultTerminator ends statements unless a SET TERM directive changes it.
const DefaultTerminator = ";"

// setTermPattern matches a terminator switch once its trailing old
// terminator has been cut off, e.g. "SET TERM ^^".
var setTermPattern = regexp.MustCompile(`(?is)^SET\s+TERM\s+(\S+)$`)

// Split returns the statements of a script in order.
//
//	Split("A; B;; C") // ["A", "B", "C"]
func Split(content string) []string {
	var statements []string
	terminator := DefaultTerminator
	rest := content

	for {
		idx := strings.Index(rest, terminator)
		if idx < 0 {
			break
		}
		fragment := strings.TrimSpace(rest[:idx])
		rest = rest[idx+len(terminator):]

		if fragment == "" {
			continue
		}
		if m := setTermPattern.FindStringSubmatch(fragment); m != nil {
			terminator = m[1]
			continue
		}
		statements = append(statements, fragment)
	}

	if tail := strings.TrimSpace(rest); tail != "" {
		if setTermPattern.MatchString(tail) {
			return statements
		}
		statements = append(statements, tail)
	}
	return statements
}

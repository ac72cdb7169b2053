package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(int) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		noColor string
		ci      string
		tty     bool
		want    bool
	}{
		{name: "terminal", tty: true, want: true},
		{name: "not a terminal", tty: false, want: false},
		{name: "NO_COLOR set", noColor: "1", tty: true, want: false},
		{name: "CI set", ci: "true", tty: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("CI", tt.ci)
			withTerminal(t, tt.tty)

			assert.Equal(t, tt.want, ColorEnabled(os.Stdout))
		})
	}
}

func TestColorEnabled_BufferIsNeverColored(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "")
	withTerminal(t, true)

	assert.False(t, ColorEnabled(&bytes.Buffer{}))
}

func TestPrinter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Success("Database %s successfully.", "built")

	assert.Equal(t, "Database built successfully.\n", buf.String())
}

func TestPrintMetadataReport(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).PrintMetadataReport([]byte(`{"Domains": []}`))

	assert.Equal(t, "\n=== METADATA REPORT ===\n{\"Domains\": []}\n", buf.String())
}

func TestPrintMetadataReport_Missing(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).PrintMetadataReport(nil)

	assert.Equal(t, "\nNo metadata.json in scripts directory.\n", buf.String())
}

func TestPrinter_BlockKeepsTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainPrinter(&buf)

	p.Block("a\n")
	p.Block("")
	p.Block("b")

	assert.Equal(t, "a\nb\n", buf.String())
}

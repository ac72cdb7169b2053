// Package ui writes user-facing results to stdout, styled with lipgloss when
// the output is a color-capable terminal.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by Printer.
type Styles struct {
	Heading lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Body    lipgloss.Style
}

// DefaultStyles returns the styles used on color terminals.
func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Body:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Printer writes result lines. Without color every line is written verbatim.
type Printer struct {
	out    io.Writer
	color  bool
	styles Styles
}

// NewPrinter creates a Printer for out, enabling color via ColorEnabled.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, color: ColorEnabled(out), styles: DefaultStyles()}
}

// NewPlainPrinter creates a Printer that never styles output.
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out, styles: DefaultStyles()}
}

func (p *Printer) render(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(p.styles.Success, fmt.Sprintf(format, args...)))
}

// Heading prints a section heading preceded by a blank line.
func (p *Printer) Heading(text string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.render(p.styles.Heading, text))
}

// Notice prints an informational line preceded by a blank line.
func (p *Printer) Notice(text string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.render(p.styles.Warning, text))
}

// Block prints text as is, adding a trailing newline when missing.
func (p *Printer) Block(text string) {
	if text == "" {
		return
	}
	if text[len(text)-1] != '\n' {
		text += "\n"
	}
	fmt.Fprint(p.out, p.render(p.styles.Body, text))
}

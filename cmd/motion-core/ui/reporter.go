package ui

import (
	"fmt"
	"io"
	"os"
)

// Reporter is the status output surface commands write through. Info and
// warnings go to stdout, errors to stderr.
type Reporter interface {
	Heading(message string)
	Info(message string)
	Detail(message string)
	Success(message string)
	Warn(message string)
	Error(message string)
	Blank()
}

// ConsoleReporter renders glyph-prefixed status lines.
type ConsoleReporter struct {
	out    io.Writer
	errOut io.Writer
	styles Styles
}

// NewConsoleReporter writes to stdout and stderr with the default styles.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout, errOut: os.Stderr, styles: DefaultStyles()}
}

// NewReporter writes to the given streams, useful under test.
func NewReporter(out, errOut io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out, errOut: errOut, styles: DefaultStyles()}
}

// Heading prints a bold brand-colored section title.
func (r *ConsoleReporter) Heading(message string) {
	fmt.Fprintln(r.out, r.styles.Heading.Render(message))
}

// Info prints a brand glyph line.
func (r *ConsoleReporter) Info(message string) {
	fmt.Fprintf(r.out, "%s %s\n", r.styles.Brand.Render("›"), message)
}

// Detail prints an indented muted line.
func (r *ConsoleReporter) Detail(message string) {
	fmt.Fprintf(r.out, "  %s\n", r.styles.Muted.Render(message))
}

// Success prints a green glyph line.
func (r *ConsoleReporter) Success(message string) {
	fmt.Fprintf(r.out, "%s %s\n", r.styles.Success.Render("›"), message)
}

// Warn prints a yellow warning line.
func (r *ConsoleReporter) Warn(message string) {
	fmt.Fprintf(r.out, "%s %s\n", r.styles.Warning.Render("!"), message)
}

// Error prints a red failure line to stderr.
func (r *ConsoleReporter) Error(message string) {
	fmt.Fprintf(r.errOut, "%s %s\n", r.styles.Danger.Render("✖"), message)
}

// Blank prints an empty spacer line.
func (r *ConsoleReporter) Blank() {
	fmt.Fprintln(r.out)
}

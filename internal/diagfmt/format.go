// Package diagfmt renders diag.Diagnostic values as Rust-style terminal
// output: a colored header, a source excerpt with a gutter, and a caret
// underline at the diagnostic's focus position.
package diagfmt

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"vela/internal/diag"
)

// Reporter formats diagnostics against one file's source text.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter returns a Reporter for filename's source.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders one diagnostic, including its notes, as a multi-line
// colored string terminated by a blank line.
func (r *Reporter) Format(d diag.Diagnostic) string {
	var out strings.Builder

	levelColor := severityColor(d.Severity)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	out.WriteString(fmt.Sprintf("%s: %s\n", levelColor(d.Severity.String()), d.Message))

	width := gutterWidth(d.Range.Focus.Line)
	indent := strings.Repeat(" ", width)
	out.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Range.Focus.Line, d.Range.Focus.Column))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	line := d.Range.Focus.Line
	if line > 0 && line <= len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("│"), r.lines[line-1]))
		marker := r.marker(d.Range.Focus.Column, levelColor)
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		out.WriteString(fmt.Sprintf("%s %s %s %s (%d:%d)\n", indent, dim("│"), noteColor("note:"), note.Message, note.Range.Focus.Line, note.Range.Focus.Column))
	}
	if d.Help != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		out.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), d.Help))
	}
	out.WriteString("\n")
	return out.String()
}

func (r *Reporter) marker(column int, levelColor func(...any) string) string {
	spaces := strings.Repeat(" ", maxInt(0, column-1))
	return spaces + levelColor("^")
}

func severityColor(s diag.Severity) func(...any) string {
	switch s {
	case diag.Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case diag.Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	}
}

func gutterWidth(line int) int {
	w := len(fmt.Sprintf("%d", line))
	if w < 3 {
		return 3
	}
	return w
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Package diag implements the front end's diagnostics channel: a
// source-range-annotated, severity-leveled report stream that never
// unwinds the scanner or parser.
package diag

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Position is a 1-based (line, column) plus a byte offset into the source.
type Position struct {
	Line, Column, Offset int
}

// Range is a (start, focus, end) triple; Focus is where a caret should
// point when Start != End.
type Range struct {
	Start, Focus, End Position
}

// Note is a secondary annotation attached to a Diagnostic, e.g. "previously
// defined here" pointing at an earlier declaration.
type Note struct {
	Message string
	Range   Range
}

// Diagnostic is one report emitted by the scanner or parser.
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    Range
	File     string
	Notes    []Note
	Help     string
}

// Handler receives every Diagnostic as it is reported. It must not panic;
// the channel does not protect callers from a misbehaving handler.
type Handler func(Diagnostic)

// Channel accumulates diagnostics and forwards each to Handler, if set.
// Channel is not safe for concurrent writers; a background consumer that
// reads it while a parser is still appending needs its own external
// reader-writer lock (internal/front.Compiler's lock guards only its map of
// per-file channels, not their contents).
type Channel struct {
	Handler      Handler
	diagnostics  []Diagnostic
	errorCount   int
}

// New returns an empty Channel. A nil handler simply accumulates.
func New(h Handler) *Channel {
	return &Channel{Handler: h}
}

// Report appends d and, if set, invokes Handler synchronously.
func (c *Channel) Report(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
	if d.Severity == Error {
		c.errorCount++
	}
	if c.Handler != nil {
		c.Handler(d)
	}
}

// Errorf reports an error-severity diagnostic at r.
func (c *Channel) Errorf(r Range, format string, args ...any) {
	c.Report(Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Range: r})
}

// Warnf reports a warning-severity diagnostic at r.
func (c *Channel) Warnf(r Range, format string, args ...any) {
	c.Report(Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Range: r})
}

// All returns every diagnostic reported so far, in emission order.
func (c *Channel) All() []Diagnostic {
	return c.diagnostics
}

// HasErrors reports whether any error-severity diagnostic was reported.
func (c *Channel) HasErrors() bool {
	return c.errorCount > 0
}

// Package perrors implements the error/warning shape spec §6-7 describe:
// a fatal ParseError carrying {message, line, column, lineStart, lineEnd,
// fileName}, and a side-channel warning Sink. This generalizes the
// teacher's Parser.Errors []string / addError(msg) idiom
// (parser/parser.go) into a typed error plus a pluggable sink, since
// spec §7 distinguishes fatal errors (abort the parse) from warnings
// (side channel, parsing continues) where the teacher's interpreter never
// needed the distinction.
package perrors

import "fmt"

// ParseError is the fatal fault shape named in spec §6 "Error shape".
type ParseError struct {
	Message   string
	Line      int
	Column    int
	LineStart int
	LineEnd   int
	FileName  string

	// SuffixPosition appends "(line:column)" to Error() when
	// Options.LineNoInErrorMessage is set (spec §6).
	SuffixPosition bool
}

func (e *ParseError) Error() string {
	if e.SuffixPosition {
		return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// Sink receives warnings (spec §7 "Warnings emit through a side channel").
type Sink interface {
	Warn(message string, line, column int)
}

// Collector accumulates warnings for the caller to inspect after a
// successful parse, the way the teacher's Parser.Errors slice accumulates
// (but these are non-fatal by construction).
type Collector struct {
	Warnings []Warning
	sink     Sink
}

type Warning struct {
	Message       string
	Line, Column int
}

// NewCollector wires an optional Sink (e.g. the colorized default from
// config.ColorSink) that is notified as warnings arrive, in addition to
// the Collector's own retained slice.
func NewCollector(sink Sink) *Collector {
	return &Collector{sink: sink}
}

func (c *Collector) Warn(message string, line, column int) {
	c.Warnings = append(c.Warnings, Warning{Message: message, Line: line, Column: column})
	if c.sink != nil {
		c.sink.Warn(message, line, column)
	}
}

package types

import "fmt"

// ParseError is returned when input violates a format's line or nesting grammar.
type ParseError struct {
	// Component names the unit being parsed when the error occurred
	// (e.g. "VCARD", "VEVENT"); empty when not applicable.
	Component string
	Message   string
	Format    Format
	// Line is the 1-based line number of the offending line, 0 if unknown.
	Line int
}

func (e *ParseError) Error() string {
	prefix := e.Format.String()
	if e.Component != "" {
		prefix += " " + e.Component
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", prefix, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// UnsupportedFormatError is returned when the format cannot be detected or has no parser.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Path == "" {
		return "unsupported format: " + e.Reason
	}
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings record places where a lenient parser degraded instead of failing.
// Examples include:
//   - A malformed INI line that was skipped
//   - A message without a header/body separator
//   - A broken card skipped because of WithSkipInvalid
//
// Warnings are collected in Document.Warnings during parsing.
type Warning struct {
	// Stage where the warning occurred ("ini", "vcf", "ics", "eml")
	Stage string

	// Warning message
	Message string

	// 1-based line where the issue occurred (0 if not applicable)
	Line int
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s (at line %d): %s", w.Stage, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

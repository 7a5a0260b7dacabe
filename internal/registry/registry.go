// Package registry manages format-specific parsers for the supported text formats.
package registry

import (
	"github.com/gaetschwartz/nuformats/internal/types"
)

// FormatParser is the interface all format parsers implement.
type FormatParser interface {
	// Parse decodes text into a Document.
	// Path is set by the caller; Format, Value and Warnings are set by the parser.
	Parse(text string, opts *types.Options) (*types.Document, error)

	// Policy describes how strictly the format is parsed.
	Policy() types.Policy
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]FormatParser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser FormatParser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) FormatParser {
	return parsers[format]
}

// Formats returns every format with a registered parser, in types.Formats order.
func Formats() []types.Format {
	var out []types.Format
	for _, f := range types.Formats() {
		if parsers[f] != nil {
			out = append(out, f)
		}
	}
	return out
}

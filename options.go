package nuformats

import (
	"github.com/sirupsen/logrus"

	"github.com/gaetschwartz/nuformats/internal/types"
)

// Option configures how text is parsed.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	doc, err := nuformats.ParseFile("settings.ini",
//	    nuformats.WithQuoteStripping(),
//	    nuformats.WithStrictParsing(),
//	)
type Option func(*parseOptions)

// parseOptions holds configuration for one parse call.
type parseOptions struct {
	strictParsing  bool   // Fail on any warning
	ignoreWarnings bool   // Suppress all warnings
	format         Format // Skip detection when set

	parser types.Options
}

// defaultOptions returns the default configuration.
func defaultOptions() *parseOptions {
	return &parseOptions{
		strictParsing:  false,
		ignoreWarnings: false,
		format:         FormatUnknown,
	}
}

func applyOptions(opts []Option) *parseOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, lenient formats keep going when they meet a malformed INI line
// or a message without a header separator, returning warnings alongside the
// parsed data. With strict parsing enabled, the first warning becomes a
// *ParseError.
//
// Example:
//
//	doc, err := nuformats.ParseFile("app.ini", nuformats.WithStrictParsing())
//	// err != nil if ANY line was skipped
func WithStrictParsing() Option {
	return func(o *parseOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Document.Warnings will always be empty.
func WithIgnoreWarnings() Option {
	return func(o *parseOptions) {
		o.ignoreWarnings = true
	}
}

// WithQuoteStripping removes one pair of matching double or single quotes
// wrapping an INI value.
func WithQuoteStripping() Option {
	return func(o *parseOptions) {
		o.parser.QuoteStripping = true
	}
}

// WithPreviewBody truncates every EML text body to at most n bytes,
// cut on a UTF-8 rune boundary. Zero or a negative n means no limit.
func WithPreviewBody(n int) Option {
	return func(o *parseOptions) {
		if n < 0 {
			n = 0
		}
		o.parser.PreviewBody = n
	}
}

// WithSkipInvalid makes VCF and ICS parsing drop a broken card or component
// and carry on after it, recording a warning. For ICS only the innermost open
// component is dropped, so one bad event keeps the rest of its calendar. By
// default the whole input fails.
func WithSkipInvalid() Option {
	return func(o *parseOptions) {
		o.parser.SkipInvalid = true
	}
}

// WithLogger sends debug output about skipped lines and units to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *parseOptions) {
		o.parser.Logger = logger
	}
}

// WithFormat forces the format used by ParseFile instead of detecting it.
func WithFormat(format Format) Option {
	return func(o *parseOptions) {
		o.format = format
	}
}

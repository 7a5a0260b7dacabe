package nuformats

import (
	"fmt"

	// Each format package registers its parser in init.
	_ "github.com/gaetschwartz/nuformats/internal/eml"
	_ "github.com/gaetschwartz/nuformats/internal/ics"
	_ "github.com/gaetschwartz/nuformats/internal/ini"
	"github.com/gaetschwartz/nuformats/internal/registry"
	"github.com/gaetschwartz/nuformats/internal/types"
	_ "github.com/gaetschwartz/nuformats/internal/vcf"
)

// Parse decodes text in the given format.
//
// Lenient formats may return a Document with Warnings instead of an error.
// Options can be provided to customize parsing behavior:
//
//	doc, err := nuformats.Parse(nuformats.FormatVCF, text,
//	    nuformats.WithSkipInvalid(),
//	)
func Parse(format Format, text string, opts ...Option) (*Document, error) {
	return parseText(format, text, "", applyOptions(opts))
}

// ParseINI parses INI text into a record of sections and global keys.
func ParseINI(text string, opts ...Option) (Value, error) {
	return parseValue(FormatINI, text, opts)
}

// ParseVCF parses one or more vCards. A single card yields its record,
// otherwise the result is a list of records.
func ParseVCF(text string, opts ...Option) (Value, error) {
	return parseValue(FormatVCF, text, opts)
}

// ParseICS parses iCalendar data. A single top-level component yields its
// record, otherwise the result is a list of records.
func ParseICS(text string, opts ...Option) (Value, error) {
	return parseValue(FormatICS, text, opts)
}

// ParseEML parses an email message into a record with "headers" and "body".
func ParseEML(text string, opts ...Option) (Value, error) {
	return parseValue(FormatEML, text, opts)
}

func parseValue(format Format, text string, opts []Option) (Value, error) {
	doc, err := Parse(format, text, opts...)
	if err != nil {
		return Value{}, err
	}
	return doc.Value, nil
}

// parseText runs the registered parser and applies the document level options.
func parseText(format Format, text, path string, options *parseOptions) (*Document, error) {
	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	doc, err := parser.Parse(text, &options.parser)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	doc.Format = format

	if options.strictParsing && len(doc.Warnings) > 0 {
		w := doc.Warnings[0]
		return nil, &types.ParseError{
			Format:  format,
			Line:    w.Line,
			Message: "strict parsing failed: " + w.Message,
		}
	}

	if options.ignoreWarnings {
		doc.Warnings = nil
	}

	return doc, nil
}

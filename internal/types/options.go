package types

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options carries per-call parser configuration.
//
// Every field is read-only during a parse, so one Options value may be shared
// by concurrent parse calls.
type Options struct {
	// Logger receives debug output about skipped lines and units.
	// Nil means no logging.
	Logger logrus.FieldLogger

	// PreviewBody truncates EML leaf bodies to at most this many bytes (0 = no limit).
	PreviewBody int

	// QuoteStripping removes matching quotes wrapping INI values.
	QuoteStripping bool

	// SkipInvalid makes VCF/ICS skip a broken card or component and resume
	// at the next top-level BEGIN instead of aborting the whole input.
	SkipInvalid bool
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

// Log returns the configured logger, or a logger that discards everything.
func (o *Options) Log() logrus.FieldLogger {
	if o == nil || o.Logger == nil {
		return discard
	}
	return o.Logger
}

package types

// Document is the result of parsing one input with one format parser.
type Document struct {
	// Path of the source, empty for inline text
	Path string

	// Decoded value tree
	Value Value

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning

	// Format the document was parsed as
	Format Format
}

// Warn appends a warning for stage at line.
func (d *Document) Warn(stage string, line int, message string) {
	d.Warnings = append(d.Warnings, Warning{
		Stage:   stage,
		Message: message,
		Line:    line,
	})
}

// Package nuformats decodes common text formats into a generic value tree.
//
// Four formats are supported: INI configuration, vCard contacts (VCF),
// iCalendar data (ICS) and email messages (EML). Every parser emits the same
// Value model (Nothing, String, Binary, Record and List), so callers can
// display or serialize any input the same way.
//
// # Quick Start
//
// Parsing a file, letting the format be detected:
//
//	doc, err := nuformats.ParseFile("contacts.vcf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Value)
//
// Parsing text in a known format:
//
//	v, err := nuformats.ParseINI(text, nuformats.WithQuoteStripping())
//
// # Formats and Policies
//
// Each format has its own duplicate key and error policy:
//
//   - INI: a repeated key overwrites the earlier one; malformed lines are
//     skipped with a warning
//   - VCF: repeated properties become a list; a malformed line is fatal
//   - ICS: like VCF, and components nest with BEGIN/END
//   - EML: repeated headers become a list; a missing header block or
//     separator is a warning
//
// PolicyFor returns the policy of a format.
//
// A VCF or ICS input holding exactly one card or calendar yields that
// record; any other count yields a list of records.
//
// # Error Handling
//
// Structural problems are reported as *ParseError with a 1-based line number:
//
//	var perr *nuformats.ParseError
//	if errors.As(err, &perr) {
//		log.Printf("line %d: %s", perr.Line, perr.Message)
//	}
//
// Non-fatal issues are collected in Document.Warnings. WithStrictParsing
// turns the first warning into an error, and WithSkipInvalid lets VCF and
// ICS inputs drop a broken card or component instead of failing.
//
// Parse multiple files concurrently:
//
//	docs, err := nuformats.ParseMany(ctx, paths...)
package nuformats

package types

import (
	"path/filepath"
	"strings"
)

// Format represents a supported text format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatEML represents electronic mail messages.
	FormatEML
	// FormatICS represents iCalendar data.
	FormatICS
	// FormatINI represents INI-style configuration.
	FormatINI
	// FormatVCF represents vCard contact cards.
	FormatVCF
)

// String returns the short lowercase name of the format ("eml", "ics", ...).
func (f Format) String() string {
	switch f {
	case FormatEML:
		return "eml"
	case FormatICS:
		return "ics"
	case FormatINI:
		return "ini"
	case FormatVCF:
		return "vcf"
	default:
		return "unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatEML:
		return []string{".eml"}
	case FormatICS:
		return []string{".ics", ".ical", ".ifb", ".icalendar"}
	case FormatINI:
		return []string{".ini", ".cfg", ".conf", ".desktop"}
	case FormatVCF:
		return []string{".vcf", ".vcard"}
	case FormatUnknown:
		return nil
	default:
		return nil
	}
}

// Formats lists every known format in a stable order.
func Formats() []Format {
	return []Format{FormatEML, FormatICS, FormatINI, FormatVCF}
}

// ParseFormat maps a format name ("eml", "ICS", ".vcf") to its Format.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for _, f := range Formats() {
		if f.String() == name {
			return f, nil
		}
		for _, ext := range f.Extensions() {
			if ext[1:] == name {
				return f, nil
			}
		}
	}
	return FormatUnknown, &UnsupportedFormatError{
		Reason: "unknown format name " + `"` + name + `"`,
	}
}

// sniffLimit bounds how many non-blank lines DetectFormat inspects.
const sniffLimit = 16

// DetectFormat determines the format of text.
//
// The file extension of path is consulted first. When it is missing or not
// recognized, the leading non-blank lines of text are examined:
//   - "BEGIN:VCALENDAR" selects ICS
//   - "BEGIN:VCARD" selects VCF
//   - a "[section]" header or a comment line selects INI
//   - RFC 822 style "Name: value" header lines (with a known mail header
//     among them) select EML; other "key = value" lines select INI
//
// Detection does not validate the entire document.
func DetectFormat(text, path string) (Format, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		for _, f := range Formats() {
			for _, known := range f.Extensions() {
				if ext == known {
					return f, nil
				}
			}
		}
	}

	seen := 0
	mailHeaders := 0
	assignments := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > sniffLimit {
			break
		}

		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "BEGIN:VCALENDAR"):
			return FormatICS, nil
		case strings.HasPrefix(upper, "BEGIN:VCARD"):
			return FormatVCF, nil
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			return FormatINI, nil
		case strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#"):
			return FormatINI, nil
		}

		colon := strings.IndexByte(line, ':')
		eq := strings.IndexByte(line, '=')
		if colon > 0 && (eq < 0 || colon < eq) && !strings.ContainsAny(line[:colon], " \t") {
			if isMailHeader(line[:colon]) {
				mailHeaders++
			}
			continue
		}
		if eq > 0 {
			assignments++
		}
	}

	switch {
	case mailHeaders > 0:
		return FormatEML, nil
	case assignments > 0:
		return FormatINI, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "could not detect format from extension or content",
	}
}

// isMailHeader reports whether name is a header commonly found at the top of a message.
func isMailHeader(name string) bool {
	switch strings.ToLower(name) {
	case "from", "to", "cc", "subject", "date", "message-id", "received",
		"return-path", "mime-version", "content-type", "reply-to", "delivered-to":
		return true
	}
	return strings.HasPrefix(strings.ToLower(name), "x-")
}

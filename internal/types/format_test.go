package types

import (
	"errors"
	"testing"
)

func TestDetectFormat_Extension(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"message.eml", FormatEML},
		{"calendar.ics", FormatICS},
		{"calendar.ICAL", FormatICS},
		{"settings.ini", FormatINI},
		{"app.cfg", FormatINI},
		{"contacts.vcf", FormatVCF},
		{"contacts.vcard", FormatVCF},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			// Content deliberately disagrees with the extension
			format, err := DetectFormat("BEGIN:VCARD\n", tt.path)
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if format != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", format, tt.want)
			}
		})
	}
}

func TestDetectFormat_UnclaimedMailExtensions(t *testing.T) {
	// Outlook .msg files and mbox archives are not single RFC 822 messages.
	for _, path := range []string{"outlook.msg", "archive.mbox"} {
		format, err := DetectFormat("BEGIN:VCARD\n", path)
		if err != nil {
			t.Fatalf("DetectFormat(%q) error = %v", path, err)
		}
		if format != FormatVCF {
			t.Errorf("DetectFormat(%q) = %v, want content detection", path, format)
		}
	}
}

func TestDetectFormat_Content(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Format
	}{
		{"calendar", "\r\nBEGIN:VCALENDAR\r\nVERSION:2.0\r\n", FormatICS},
		{"card lowercase", "begin:vcard\nfn:Jane\nend:vcard\n", FormatVCF},
		{"ini section", "[server]\nhost = localhost\n", FormatINI},
		{"ini comment", "; generated\nname=value\n", FormatINI},
		{"ini assignments", "name = value\nother = thing\n", FormatINI},
		{"mail", "From: a@example.com\nTo: b@example.com\nSubject: hi\n\nbody\n", FormatEML},
		{"mail custom header", "X-Mailer: test\n\nbody\n", FormatEML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectFormat(tt.text, "")
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if format != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", format, tt.want)
			}
		})
	}
}

func TestDetectFormat_Unknown(t *testing.T) {
	_, err := DetectFormat("just some prose\nwithout structure\n", "notes.txt")
	if err == nil {
		t.Fatal("expected error for undetectable content")
	}

	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %T", err)
	}
	if unsupported.Path != "notes.txt" {
		t.Errorf("Path = %q, want %q", unsupported.Path, "notes.txt")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"eml", FormatEML, false},
		{"ICS", FormatICS, false},
		{".vcf", FormatVCF, false},
		{"vcard", FormatVCF, false},
		{"cfg", FormatINI, false},
		{"toml", FormatUnknown, true},
		{"msg", FormatUnknown, true},
		{"mbox", FormatUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	for _, f := range Formats() {
		if f.String() == "unknown" {
			t.Errorf("format %d has no name", int(f))
		}
		if len(f.Extensions()) == 0 {
			t.Errorf("format %s has no extensions", f)
		}
	}
	if FormatUnknown.String() != "unknown" {
		t.Errorf("FormatUnknown.String() = %q", FormatUnknown.String())
	}
}

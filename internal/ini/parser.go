// Package ini parses INI-style configuration into a record of sections.
//
// INI has no formal grammar, so the parser is lenient: a line that is neither
// a comment, a section header nor a key/value pair is skipped with a warning.
package ini

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gaetschwartz/nuformats/internal/registry"
	"github.com/gaetschwartz/nuformats/internal/textline"
	"github.com/gaetschwartz/nuformats/internal/types"
)

const stage = "ini"

// parser implements registry.FormatParser for INI files
type parser struct{}

func init() {
	registry.Register(types.FormatINI, &parser{})
}

// Policy reports the INI duplicate-key and error policy.
func (p *parser) Policy() types.Policy {
	return types.Policy{
		Duplicates:    types.LastWriteWins,
		MalformedLine: "skipped with a warning",
		ErrorScope:    "none",
		Lenient:       true,
	}
}

// Parse parses INI text. It never returns an error.
func (p *parser) Parse(text string, opts *types.Options) (*types.Document, error) {
	doc := &types.Document{Format: types.FormatINI}
	log := opts.Log().WithField("format", stage)
	stripQuotes := opts != nil && opts.QuoteStripping

	root := types.NewRecordBuilder(0)
	// Sections are kept as builders until the end so a reopened section
	// merges into the first one.
	sections := make(map[string]*types.RecordBuilder)
	var sectionOrder []string
	var current *types.RecordBuilder // nil while collecting global keys

	for _, l := range textline.Split(text) {
		line := strings.TrimSpace(l.Text)
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}

		if line[0] == '[' && line[len(line)-1] == ']' {
			name := strings.TrimSpace(line[1 : len(line)-1])
			sec, ok := sections[name]
			if !ok {
				sec = types.NewRecordBuilder(0)
				sections[name] = sec
				sectionOrder = append(sectionOrder, name)
				// Reserve the section's position among the root fields
				root.Set(name, types.Nothing())
			}
			current = sec
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			msg := fmt.Sprintf("skipping malformed line %q", line)
			log.WithFields(logrus.Fields{"line": l.Number}).Debug(msg)
			doc.Warn(stage, l.Number, msg)
			continue
		}
		if stripQuotes {
			value = stripSurroundingQuotes(value)
		}

		target := current
		if target == nil {
			target = root
		}
		target.Set(key, types.String(value))
	}

	for _, name := range sectionOrder {
		root.Set(name, types.NewRecord(sections[name].Build()))
	}
	doc.Value = types.NewRecord(root.Build())

	return doc, nil
}

// splitKeyValue splits "key = value" or "key: value" at whichever separator
// comes first. Key and value are trimmed; an empty key is malformed.
func splitKeyValue(line string) (string, string, bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:sep])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[sep+1:]), true
}

// stripSurroundingQuotes removes one pair of matching quotes wrapping s.
// "Hello World" -> Hello World
// 'single' -> single
// "mismatched' -> "mismatched' (unchanged)
func stripSurroundingQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

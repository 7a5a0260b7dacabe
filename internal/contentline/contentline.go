// Package contentline parses the NAME[;PARAM=VALUE...]:VALUE grammar shared
// by vCard and iCalendar.
//
// Lines must be unfolded (see package textline) before they are parsed here.
package contentline

import (
	"fmt"
	"strings"

	"github.com/gaetschwartz/nuformats/internal/textline"
	"github.com/gaetschwartz/nuformats/internal/types"
)

// Field names used when a property carries parameters.
const (
	ValueField  = "value"
	ParamsField = "params"
)

// implicitParam receives bare vCard 2.1 parameters such as TEL;WORK;VOICE.
const implicitParam = "TYPE"

// Param is a single property parameter. Values holds one entry per
// comma-separated value, with surrounding double quotes removed.
type Param struct {
	Name   string
	Values []string
}

// Property is one parsed content line.
type Property struct {
	// Name is upper-cased; a group prefix such as "item1." is kept.
	Name   string
	Params []Param
	Value  string
	Line   int
}

// SyntaxError reports a content line that cannot be split into NAME:VALUE form.
type SyntaxError struct {
	Msg  string
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse splits an unfolded line into name, parameters and value.
func Parse(l textline.Line) (Property, error) {
	text := l.Text
	syntaxErr := func(format string, args ...any) (Property, error) {
		return Property{}, &SyntaxError{Line: l.Number, Msg: fmt.Sprintf(format, args...)}
	}

	nameEnd := strings.IndexAny(text, ";:")
	if nameEnd < 0 {
		return syntaxErr("missing ':' in property line %q", text)
	}
	name := text[:nameEnd]
	if name == "" {
		return syntaxErr("empty property name")
	}
	if i := strings.IndexFunc(name, isInvalidNameRune); i >= 0 {
		return syntaxErr("invalid character %q in property name %q", name[i], name)
	}

	prop := Property{
		Name: strings.ToUpper(name),
		Line: l.Number,
	}

	rest := text[nameEnd:]
	if rest[0] == ':' {
		prop.Value = rest[1:]
		return prop, nil
	}

	// Parameters run until the first ':' outside double quotes.
	colon := indexUnquoted(rest, ':')
	if colon < 0 {
		return syntaxErr("missing ':' after parameters of %s", prop.Name)
	}
	prop.Value = rest[colon+1:]

	for _, raw := range splitUnquoted(rest[1:colon], ';') {
		param, err := parseParam(raw)
		if err != nil {
			return syntaxErr("%s: %v", prop.Name, err)
		}
		prop.Params = append(prop.Params, param)
	}

	return prop, nil
}

func parseParam(raw string) (Param, error) {
	eq := strings.IndexByte(raw, '=')
	if eq < 0 {
		if raw == "" {
			return Param{}, fmt.Errorf("empty parameter")
		}
		// vCard 2.1 allows bare parameter values
		return Param{Name: implicitParam, Values: []string{unquote(raw)}}, nil
	}

	name := strings.TrimSpace(raw[:eq])
	if name == "" {
		return Param{}, fmt.Errorf("empty parameter name in %q", raw)
	}

	var values []string
	for _, v := range splitUnquoted(raw[eq+1:], ',') {
		values = append(values, unquote(v))
	}
	return Param{Name: strings.ToUpper(name), Values: values}, nil
}

// ParamsValue returns the parameters as a record. A parameter with several
// comma-separated values maps to a list, and a repeated parameter name is
// promoted to a list of its occurrences.
func (p Property) ParamsValue() types.Value {
	b := types.NewRecordBuilder(len(p.Params))
	for _, param := range p.Params {
		b.InsertOrPromote(param.Name, paramValue(param.Values))
	}
	return types.NewRecord(b.Build())
}

// ToValue maps the property to the value stored under its name: the bare
// value when there are no parameters, otherwise a record holding the value
// alongside its parameters.
func (p Property) ToValue() types.Value {
	if len(p.Params) == 0 {
		return types.String(p.Value)
	}
	return types.RecordOf(
		types.Field{Name: ValueField, Value: types.String(p.Value)},
		types.Field{Name: ParamsField, Value: p.ParamsValue()},
	)
}

func paramValue(values []string) types.Value {
	if len(values) == 1 {
		return types.String(values[0])
	}
	items := make([]types.Value, len(values))
	for i, v := range values {
		items[i] = types.String(v)
	}
	return types.List(items...)
}

// IsComponentMarker reports whether p is a BEGIN or END line.
func (p Property) IsComponentMarker() bool {
	return p.Name == "BEGIN" || p.Name == "END"
}

// ComponentName returns the upper-cased component named by a BEGIN/END value.
func (p Property) ComponentName() string {
	return strings.ToUpper(strings.TrimSpace(p.Value))
}

func isInvalidNameRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return false
	case r == '-' || r == '_' || r == '.':
		return false
	}
	return true
}

// indexUnquoted returns the index of the first sep outside double quotes, or -1.
func indexUnquoted(s string, sep byte) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				return i
			}
		}
	}
	return -1
}

// splitUnquoted splits s on sep, ignoring separators inside double quotes.
func splitUnquoted(s string, sep byte) []string {
	var parts []string
	for {
		i := indexUnquoted(s, sep)
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i+1:]
	}
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

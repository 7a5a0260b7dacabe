// Package ics parses iCalendar data.
//
// Components nest: BEGIN:<NAME> opens a component and END:<NAME> closes it,
// attaching the finished component to its parent under NAME. Repeated
// properties and repeated child components are collected into lists.
package ics

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gaetschwartz/nuformats/internal/contentline"
	"github.com/gaetschwartz/nuformats/internal/registry"
	"github.com/gaetschwartz/nuformats/internal/textline"
	"github.com/gaetschwartz/nuformats/internal/types"
)

const stage = "ics"

// TypeField is the first field of every component record and holds the
// component name, e.g. "VEVENT".
const TypeField = "type"

// parser implements registry.FormatParser for iCalendar files
type parser struct{}

func init() {
	registry.Register(types.FormatICS, &parser{})
}

// Policy reports the iCalendar duplicate-key and error policy.
func (p *parser) Policy() types.Policy {
	return types.Policy{
		Duplicates:    types.PromoteToList,
		MalformedLine: "fatal parse error",
		ErrorScope:    "innermost open component (whole input unless SkipInvalid)",
	}
}

// frame is a component that has seen its BEGIN but not yet its END.
type frame struct {
	name      string
	beginLine int
	fields    *types.RecordBuilder
}

func newFrame(name string, line int) *frame {
	f := &frame{name: name, beginLine: line, fields: types.NewRecordBuilder(8)}
	f.fields.Set(TypeField, types.String(name))
	return f
}

// Parse parses iCalendar text.
//
// A single top-level component yields its record directly; any other number
// yields a list of records.
func (p *parser) Parse(text string, opts *types.Options) (*types.Document, error) {
	doc := &types.Document{Format: types.FormatICS}
	log := opts.Log().WithField("format", stage)
	skipInvalid := opts != nil && opts.SkipInvalid

	lines := textline.Join(textline.Split(text))

	var (
		roots []types.Value
		stack []*frame

		// Set while skipping a broken component. A nested component is
		// skipped up to its own END:<skipEnd>; skipDepth counts components
		// opened inside it meanwhile. A top-level component is skipped up
		// to the next BEGIN:<resumeAt>, where an empty resumeAt accepts
		// any BEGIN.
		skipping  bool
		skipEnd   string
		skipDepth int
		resumeAt  string
	)

	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	// fail aborts the parse, or with SkipInvalid drops the innermost open
	// component and carries on in its parent.
	fail := func(line int, msg string) error {
		perr := &types.ParseError{Format: types.FormatICS, Line: line, Message: msg}
		if f := top(); f != nil {
			perr.Component = f.name
		}
		if !skipInvalid {
			return perr
		}

		log.WithFields(logrus.Fields{"line": line, "component": perr.Component}).
			Debugf("skipping invalid component: %s", msg)
		doc.Warn(stage, line, "skipped invalid component: "+msg)
		skipping = true

		if len(stack) > 1 {
			skipEnd = stack[len(stack)-1].name
			skipDepth = 0
			stack = stack[:len(stack)-1]
			return nil
		}

		skipEnd = ""
		resumeAt = ""
		if len(stack) > 0 {
			resumeAt = stack[0].name
		}
		stack = stack[:0]
		return nil
	}

	for _, l := range lines {
		if l.Orphan {
			if skipping {
				continue
			}
			if err := fail(l.Number, "continuation line has no preceding line"); err != nil {
				return nil, err
			}
			continue
		}
		if textline.IsBlank(l.Text) {
			continue
		}

		prop, err := contentline.Parse(l)
		if skipping && skipEnd != "" {
			if err != nil {
				continue
			}
			switch {
			case prop.Name == "BEGIN":
				skipDepth++
				continue
			case prop.Name != "END":
				continue
			case skipDepth > 0:
				skipDepth--
				continue
			}
			// An END at the skipped component's depth resumes parsing. When
			// it names another component the broken one was never closed,
			// so the END is handled normally against the parent.
			skipping = false
			if prop.ComponentName() == skipEnd {
				continue
			}
		}
		if skipping {
			if err != nil || prop.Name != "BEGIN" {
				continue
			}
			if resumeAt != "" && prop.ComponentName() != resumeAt {
				continue
			}
			skipping = false
		}
		if err != nil {
			var syntax *contentline.SyntaxError
			if errors.As(err, &syntax) {
				if ferr := fail(syntax.Line, syntax.Msg); ferr != nil {
					return nil, ferr
				}
				continue
			}
			return nil, err
		}

		switch {
		case prop.Name == "BEGIN":
			name := prop.ComponentName()
			if name == "" {
				err = fail(l.Number, "BEGIN without a component name")
				break
			}
			stack = append(stack, newFrame(name, l.Number))

		case prop.Name == "END":
			name := prop.ComponentName()
			f := top()
			switch {
			case f == nil:
				err = fail(l.Number, fmt.Sprintf("END:%s without matching BEGIN", name))
			case f.name != name:
				err = fail(l.Number, fmt.Sprintf("END:%s does not match BEGIN:%s at line %d", name, f.name, f.beginLine))
			default:
				stack = stack[:len(stack)-1]
				rec := types.NewRecord(f.fields.Build())
				if parent := top(); parent != nil {
					parent.fields.InsertOrPromote(f.name, rec)
				} else {
					roots = append(roots, rec)
				}
			}

		default:
			f := top()
			if f == nil {
				err = fail(l.Number, fmt.Sprintf("property %s outside of any component", prop.Name))
				break
			}
			f.fields.InsertOrPromote(prop.Name, prop.ToValue())
		}

		if err != nil {
			return nil, err
		}
	}

	// Every component still open at the end is unterminated, innermost first.
	for f := top(); f != nil; f = top() {
		msg := fmt.Sprintf("unterminated component: BEGIN:%s at line %d has no END:%s", f.name, f.beginLine, f.name)
		if err := fail(f.beginLine, msg); err != nil {
			return nil, err
		}
	}

	if len(roots) == 1 {
		doc.Value = roots[0]
	} else {
		doc.Value = types.List(roots...)
	}

	return doc, nil
}

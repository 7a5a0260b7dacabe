// Package vcf parses vCard contact cards.
//
// An input may hold several concatenated cards, each delimited by
// BEGIN:VCARD and END:VCARD. Repeated properties within a card (several
// EMAIL or TEL lines) are collected into a list.
package vcf

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gaetschwartz/nuformats/internal/contentline"
	"github.com/gaetschwartz/nuformats/internal/registry"
	"github.com/gaetschwartz/nuformats/internal/textline"
	"github.com/gaetschwartz/nuformats/internal/types"
)

const (
	stage     = "vcf"
	component = "VCARD"
)

// parser implements registry.FormatParser for vCard files
type parser struct{}

func init() {
	registry.Register(types.FormatVCF, &parser{})
}

// Policy reports the vCard duplicate-key and error policy.
func (p *parser) Policy() types.Policy {
	return types.Policy{
		Duplicates:    types.PromoteToList,
		MalformedLine: "fatal parse error",
		ErrorScope:    "current card (whole input unless SkipInvalid)",
	}
}

// Parse parses vCard text.
//
// A single card yields its record directly; any other number of cards
// yields a list of records.
func (p *parser) Parse(text string, opts *types.Options) (*types.Document, error) {
	doc := &types.Document{Format: types.FormatVCF}
	log := opts.Log().WithField("format", stage)
	skipInvalid := opts != nil && opts.SkipInvalid

	lines := textline.Join(textline.Split(text))

	var (
		cards    []types.Value
		card     *types.RecordBuilder // nil outside BEGIN/END
		cardLine int
		skipping bool
	)

	// fail aborts the parse, or with SkipInvalid drops the current card and
	// resumes at the next BEGIN:VCARD.
	fail := func(line int, msg string) error {
		perr := &types.ParseError{Format: types.FormatVCF, Component: component, Line: line, Message: msg}
		if !skipInvalid {
			return perr
		}
		log.WithFields(logrus.Fields{"line": line}).Debugf("skipping invalid card: %s", msg)
		doc.Warn(stage, line, "skipped invalid card: "+msg)
		card = nil
		skipping = true
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
		if skipping {
			if err != nil || prop.Name != "BEGIN" || prop.ComponentName() != component {
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
			if prop.ComponentName() != component {
				err = fail(l.Number, fmt.Sprintf("unexpected BEGIN:%s, expected BEGIN:%s", prop.ComponentName(), component))
			} else if card != nil {
				err = fail(l.Number, fmt.Sprintf("nested BEGIN:%s inside card started at line %d", component, cardLine))
			} else {
				card = types.NewRecordBuilder(8)
				cardLine = l.Number
			}

		case prop.Name == "END":
			if card == nil {
				err = fail(l.Number, fmt.Sprintf("END:%s without matching BEGIN:%s", prop.ComponentName(), component))
			} else if prop.ComponentName() != component {
				err = fail(l.Number, fmt.Sprintf("END:%s does not match BEGIN:%s at line %d", prop.ComponentName(), component, cardLine))
			} else {
				cards = append(cards, types.NewRecord(card.Build()))
				card = nil
			}

		case card == nil:
			err = fail(l.Number, fmt.Sprintf("property %s outside of a card", prop.Name))

		default:
			card.InsertOrPromote(prop.Name, prop.ToValue())
		}

		if err != nil {
			return nil, err
		}
	}

	if card != nil {
		if err := fail(cardLine, fmt.Sprintf("unterminated card: BEGIN:%s has no END:%s", component, component)); err != nil {
			return nil, err
		}
	}

	if len(cards) == 1 {
		doc.Value = cards[0]
	} else {
		doc.Value = types.List(cards...)
	}

	return doc, nil
}

// Package eml parses RFC 822 style email messages.
//
// A message is a header block, a blank line and a body. Multipart bodies are
// split on their boundary delimiter into a list of parts, each of which is
// itself a header block and a body. Transfer encodings are not decoded.
package eml

import (
	"errors"
	"fmt"
	"mime"
	"net/textproto"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/gaetschwartz/nuformats/internal/registry"
	"github.com/gaetschwartz/nuformats/internal/textline"
	"github.com/gaetschwartz/nuformats/internal/types"
)

const stage = "eml"

// Field names of a message or part record.
const (
	HeadersField = "headers"
	BodyField    = "body"
)

// parser implements registry.FormatParser for email messages
type parser struct{}

func init() {
	registry.Register(types.FormatEML, &parser{})
}

// Policy reports the email duplicate-key and error policy.
func (p *parser) Policy() types.Policy {
	return types.Policy{
		Duplicates:    types.PromoteToList,
		MalformedLine: "skipped with a warning",
		ErrorScope:    "whole message",
	}
}

// section is a slice of the input to be parsed as headers plus body.
type section struct {
	text string
	line int    // line number of the first line of text in the whole input
	path string // "" for the message, "part 1.2" for nested parts
}

// entity is a message or part whose headers are parsed. For a multipart
// entity, parts holds the sub-parts still to be parsed and done the ones
// already built.
type entity struct {
	headers types.Value
	body    types.Value

	multipart bool
	parts     []section
	next      int
	done      []types.Value
}

func (e *entity) value() types.Value {
	body := e.body
	if e.multipart {
		body = types.List(e.done...)
	}
	return types.RecordOf(
		types.Field{Name: HeadersField, Value: e.headers},
		types.Field{Name: BodyField, Value: body},
	)
}

// Parse parses a message into a record with "headers" and "body" fields.
//
// Nested multiparts are handled with an explicit stack of open entities.
func (p *parser) Parse(text string, opts *types.Options) (*types.Document, error) {
	doc := &types.Document{Format: types.FormatEML}
	ps := &state{
		doc: doc,
		log: opts.Log().WithField("format", stage),
	}
	if opts != nil {
		ps.preview = opts.PreviewBody
	}

	root, err := ps.parseEntity(section{text: text, line: 1})
	if err != nil {
		return nil, err
	}
	if !root.multipart {
		doc.Value = root.value()
		return doc, nil
	}

	stack := []*entity{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.parts) {
			child, err := ps.parseEntity(top.parts[top.next])
			if err != nil {
				return nil, err
			}
			top.next++
			if child.multipart {
				stack = append(stack, child)
			} else {
				top.done = append(top.done, child.value())
			}
			continue
		}

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			doc.Value = top.value()
			break
		}
		parent := stack[len(stack)-1]
		parent.done = append(parent.done, top.value())
	}

	return doc, nil
}

type state struct {
	doc     *types.Document
	log     logrus.FieldLogger
	preview int
}

func (s *state) warn(line int, msg string) {
	s.log.WithFields(logrus.Fields{"line": line}).Debug(msg)
	s.doc.Warn(stage, line, msg)
}

func (s *state) parseError(sec section, line int, msg string) error {
	return &types.ParseError{Format: types.FormatEML, Component: sec.path, Line: line, Message: msg}
}

// parseEntity parses the header block of sec and classifies its body.
func (s *state) parseEntity(sec section) (*entity, error) {
	e := &entity{}
	lines := textline.Split(sec.text)
	offset := sec.line - 1
	for i := range lines {
		lines[i].Number += offset
	}

	if len(lines) > 0 && lines[0].Text != "" && !textline.IsContinuation(lines[0].Text) && !isHeaderLine(lines[0].Text) {
		return s.headerless(sec, "first line is not a header, treating everything as body"), nil
	}

	// The separator is an empty line. A whitespace-only line is a folded
	// continuation of the header above it.
	sep := -1
	for i, l := range lines {
		if l.Text == "" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return s.headerless(sec, "no blank line between headers and body, treating everything as body"), nil
	}

	headers, err := textline.Unfold(lines[:sep])
	if err != nil {
		var orphan *textline.OrphanError
		if errors.As(err, &orphan) {
			return nil, s.parseError(sec, orphan.Line, "header continuation line has no preceding header")
		}
		return nil, err
	}

	b := types.NewRecordBuilder(len(headers))
	var contentType string
	for _, h := range headers {
		if !isHeaderLine(h.Text) {
			s.warn(h.Number, s.scoped(sec, fmt.Sprintf("skipped header line without a name: %q", h.Text)))
			continue
		}
		colon := strings.IndexByte(h.Text, ':')
		key := textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(h.Text[:colon]))
		value := strings.TrimSpace(h.Text[colon+1:])
		if key == "Content-Type" && contentType == "" {
			contentType = value
		}
		b.InsertOrPromote(key, types.String(value))
	}
	e.headers = types.NewRecord(b.Build())

	body := sec.text[lines[sep].End:]
	bodyLine := lines[sep].Number + 1

	mediaType, params := parseMediaType(contentType)
	boundary := params["boundary"]
	if !strings.HasPrefix(mediaType, "multipart/") || boundary == "" {
		e.body = s.leafBody(body)
		return e, nil
	}

	parts, found, closed := splitParts(body, bodyLine, boundary, sec.path)
	if !found {
		s.warn(bodyLine, fmt.Sprintf("%s body has no %q boundary delimiter, keeping it as text", mediaType, boundary))
		e.body = s.leafBody(body)
		return e, nil
	}
	if !closed {
		s.warn(bodyLine, fmt.Sprintf("%s body has no closing %q boundary delimiter", mediaType, boundary))
	}
	s.log.WithFields(logrus.Fields{"parts": len(parts), "boundary": boundary}).Debugf("split %s body", mediaType)

	e.multipart = true
	e.parts = parts
	return e, nil
}

// headerless keeps sec as a body with no headers and records why.
func (s *state) headerless(sec section, msg string) *entity {
	s.warn(sec.line, s.scoped(sec, msg))
	return &entity{
		headers: types.NewRecord(types.Record{}),
		body:    s.leafBody(sec.text),
	}
}

func (s *state) scoped(sec section, msg string) string {
	if sec.path == "" {
		return msg
	}
	return sec.path + ": " + msg
}

// isHeaderLine reports whether line starts with a field name followed by ':'.
// Names are printable ASCII without spaces; blanks before the ':' are allowed.
func isHeaderLine(line string) bool {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return false
	}
	name := strings.TrimRight(line[:colon], " \t")
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; c <= ' ' || c > '~' {
			return false
		}
	}
	return true
}

// leafBody maps a non-multipart body to a String, or to Binary when the
// content is not valid UTF-8.
func (s *state) leafBody(body string) types.Value {
	if !utf8.ValidString(body) {
		return types.Binary([]byte(body))
	}
	return types.String(truncate(body, s.preview))
}

// truncate cuts s to at most n bytes without splitting a rune. n <= 0 means no limit.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// splitParts splits a multipart body on "--boundary" delimiter lines. The
// preamble before the first delimiter and the epilogue after the closing
// "--boundary--" are dropped. found reports whether any delimiter was seen.
func splitParts(body string, bodyLine int, boundary, path string) (parts []section, found, closed bool) {
	delim := "--" + boundary
	var (
		start     int
		startLine int
	)

	for _, l := range textline.Split(body) {
		t := strings.TrimRight(l.Text, " \t")
		rest, ok := strings.CutPrefix(t, delim)
		if !ok || (rest != "" && rest != "--") {
			continue
		}
		if found {
			parts = append(parts, section{
				text: trimLineEnd(body[start:l.Offset]),
				line: startLine,
				path: partPath(path, len(parts)+1),
			})
		}
		if rest == "--" {
			return parts, true, true
		}
		found = true
		start = l.End
		startLine = bodyLine + l.Number
	}

	if found {
		parts = append(parts, section{
			text: body[start:],
			line: startLine,
			path: partPath(path, len(parts)+1),
		})
	}
	return parts, found, false
}

func partPath(parent string, n int) string {
	if parent == "" {
		return "part " + strconv.Itoa(n)
	}
	return parent + "." + strconv.Itoa(n)
}

// trimLineEnd removes the line terminator that belongs to the following delimiter.
func trimLineEnd(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r") {
		return s[:len(s)-1]
	}
	return s
}

// parseMediaType parses a Content-Type value. Values that mime rejects are
// split by hand so a sloppy parameter does not hide the boundary.
func parseMediaType(v string) (string, map[string]string) {
	if v == "" {
		return "", nil
	}
	if mt, params, err := mime.ParseMediaType(v); err == nil {
		return mt, params
	}

	fields := strings.Split(v, ";")
	mt := strings.ToLower(strings.TrimSpace(fields[0]))
	params := make(map[string]string, len(fields)-1)
	for _, f := range fields[1:] {
		k, val, ok := strings.Cut(f, "=")
		if !ok {
			continue
		}
		params[strings.ToLower(strings.TrimSpace(k))] = strings.Trim(strings.TrimSpace(val), `"`)
	}
	return mt, params
}

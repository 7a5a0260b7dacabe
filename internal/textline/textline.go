// Package textline splits text into numbered lines and unfolds continuation lines.
//
// VCF, ICS and EML share one folding rule: a physical line that begins with a
// single space or tab continues the previous logical line. Unfolding removes
// that one leading character and appends the remainder verbatim.
package textline

import (
	"fmt"
	"strings"
)

// Line is a line of input together with its 1-based line number.
// For an unfolded logical line, Number is the line it started on.
type Line struct {
	Text   string
	Number int

	// Byte range of the physical line in the split text. End points past
	// the line terminator, so text[End:] is everything after the line.
	Offset, End int

	// Orphan is set by Join on a continuation line with nothing to continue.
	Orphan bool
}

// OrphanError is returned by Unfold when a continuation line has no
// preceding line to continue.
type OrphanError struct {
	Line int
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("line %d: continuation line has no preceding line", e.Line)
}

// Split breaks text into physical lines.
//
// "\r\n", "\n" and a lone "\r" all terminate a line and are dropped. A final
// terminator does not produce an extra empty line.
func Split(text string) []Line {
	if text == "" {
		return nil
	}

	lines := make([]Line, 0, strings.Count(text, "\n")+1)
	n := 0
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\n' && c != '\r' {
			continue
		}
		n++
		l := Line{Text: text[start:i], Number: n, Offset: start}
		if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		l.End = i + 1
		lines = append(lines, l)
		start = i + 1
	}
	if start < len(text) {
		n++
		lines = append(lines, Line{Text: text[start:], Number: n, Offset: start, End: len(text)})
	}
	return lines
}

// IsContinuation reports whether a physical line continues the previous one.
func IsContinuation(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t')
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Unfold joins continuation lines onto the logical line they continue.
//
// A continuation line that follows nothing, or follows a blank line, yields
// an *OrphanError naming its line number.
func Unfold(lines []Line) ([]Line, error) {
	out := Join(lines)
	for _, l := range out {
		if l.Orphan {
			return nil, &OrphanError{Line: l.Number}
		}
	}
	return out, nil
}

// Join is Unfold without the error: an orphan continuation line is kept as
// its own logical line with Orphan set, and continuations that follow it
// are joined onto it. Callers decide how much input an orphan invalidates.
func Join(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	var sb strings.Builder
	current := -1

	flush := func() {
		if current >= 0 {
			out[current].Text = sb.String()
		}
		sb.Reset()
	}

	for _, l := range lines {
		if IsContinuation(l.Text) {
			if current >= 0 && (sb.Len() > 0 || out[current].Orphan) {
				sb.WriteString(l.Text[1:])
				continue
			}
			flush()
			l.Orphan = true
			out = append(out, l)
			current = len(out) - 1
			sb.WriteString(l.Text[1:])
			continue
		}
		flush()
		out = append(out, l)
		current = len(out) - 1
		sb.WriteString(l.Text)
	}
	flush()

	return out
}

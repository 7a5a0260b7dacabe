// Package render displays a parsed value tree as a tree, a table or JSON.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"

	"github.com/gaetschwartz/nuformats/internal/types"
)

// Mode selects an output layout.
type Mode string

const (
	ModeTree  Mode = "tree"
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
)

// ParseMode maps a name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case ModeTree, ModeTable, ModeJSON:
		return m, nil
	}
	return "", fmt.Errorf("unknown output mode %q", name)
}

// maxCell bounds the width of a table cell.
const maxCell = 60

// Renderer writes values to w.
type Renderer struct {
	w      io.Writer
	mode   Mode
	styles styles
}

// New returns a Renderer for mode. Color output is disabled unless color is set.
func New(w io.Writer, mode Mode, color bool) *Renderer {
	return &Renderer{w: w, mode: mode, styles: newStyles(w, color)}
}

// Document writes doc followed by its warnings. Warnings are only printed in
// tree and table mode; JSON output stays machine readable.
func (r *Renderer) Document(doc *types.Document) error {
	title := doc.Path
	if title == "" {
		title = doc.Format.String()
	}
	if err := r.Value(title, doc.Value); err != nil {
		return err
	}
	if r.mode == ModeJSON {
		return nil
	}
	for _, w := range doc.Warnings {
		if _, err := fmt.Fprintln(r.w, r.styles.warning.Render("warning: "+w.String())); err != nil {
			return err
		}
	}
	return nil
}

// Value writes v in the renderer's mode. title labels the root in tree mode.
func (r *Renderer) Value(title string, v types.Value) error {
	var out string
	switch r.mode {
	case ModeJSON:
		b, err := JSON(v)
		if err != nil {
			return err
		}
		out = string(b)
	case ModeTable:
		out = r.Table(v)
	default:
		out = r.Tree(title, v)
	}
	_, err := fmt.Fprintln(r.w, out)
	return err
}

// JSON encodes v as indented JSON with record fields in order.
func JSON(v types.Value) ([]byte, error) {
	return v.MarshalIndentJSON()
}

// Tree renders v as an indented tree rooted at title.
func (r *Renderer) Tree(title string, v types.Value) string {
	root := tree.Root(r.styles.key.Render(title)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(r.styles.border)
	r.addChildren(root, v)
	return root.String()
}

func (r *Renderer) addChildren(t *tree.Tree, v types.Value) {
	switch v.Kind() {
	case types.KindRecord:
		rec, _ := v.Record()
		for name, val := range rec.All() {
			r.addChild(t, name, val)
		}
	case types.KindList:
		items, _ := v.Items()
		for i, item := range items {
			r.addChild(t, "["+strconv.Itoa(i)+"]", item)
		}
	default:
		t.Child(r.leaf(v))
	}
}

func (r *Renderer) addChild(t *tree.Tree, label string, v types.Value) {
	switch v.Kind() {
	case types.KindRecord, types.KindList:
		sub := tree.Root(r.styles.key.Render(label)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(r.styles.border)
		r.addChildren(sub, v)
		t.Child(sub)
	default:
		t.Child(r.styles.key.Render(label) + ": " + r.leaf(v))
	}
}

// leaf renders a scalar value.
func (r *Renderer) leaf(v types.Value) string {
	switch v.Kind() {
	case types.KindNothing:
		return r.styles.muted.Render("nothing")
	case types.KindString:
		s, _ := v.Str()
		if strings.ContainsAny(s, "\r\n\t") {
			s = strconv.Quote(s)
		}
		return r.styles.str.Render(s)
	case types.KindBinary:
		return r.styles.binary.Render(BinarySummary(v.Len()))
	default:
		return r.styles.muted.Render(Summary(v))
	}
}

// BinarySummary describes a binary value of n bytes, e.g. "binary (1.2 kB)".
func BinarySummary(n int) string {
	return "binary (" + humanize.Bytes(uint64(n)) + ")"
}

// Summary describes v in one short line.
func Summary(v types.Value) string {
	switch v.Kind() {
	case types.KindRecord:
		return fmt.Sprintf("record %d %s", v.Len(), plural(v.Len(), "field"))
	case types.KindList:
		return fmt.Sprintf("list %d %s", v.Len(), plural(v.Len(), "item"))
	case types.KindBinary:
		return BinarySummary(v.Len())
	case types.KindString:
		s, _ := v.Str()
		return s
	default:
		return "nothing"
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Table renders v as a table.
//
// A list of records becomes one row per record with the union of their
// columns in first-seen order. A record becomes a two column name/value
// table. Any other value becomes a single column.
func (r *Renderer) Table(v types.Value) string {
	headers, rows := tableRows(v)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.header
			}
			return r.styles.cell
		})
	for _, row := range rows {
		t.Row(row...)
	}
	return t.String()
}

// tableRows lays v out as header names and rows of cell text.
func tableRows(v types.Value) ([]string, [][]string) {
	switch v.Kind() {
	case types.KindRecord:
		rec, _ := v.Record()
		rows := make([][]string, 0, rec.Len())
		for name, val := range rec.All() {
			rows = append(rows, []string{name, cell(val)})
		}
		return []string{"name", "value"}, rows

	case types.KindList:
		items, _ := v.Items()
		if !allRecords(items) {
			rows := make([][]string, len(items))
			for i, item := range items {
				rows[i] = []string{strconv.Itoa(i), cell(item)}
			}
			return []string{"#", "value"}, rows
		}

		var columns []string
		seen := make(map[string]bool)
		for _, item := range items {
			rec, _ := item.Record()
			for _, name := range rec.Columns() {
				if !seen[name] {
					seen[name] = true
					columns = append(columns, name)
				}
			}
		}

		rows := make([][]string, len(items))
		for i, item := range items {
			rec, _ := item.Record()
			row := make([]string, len(columns))
			for j, name := range columns {
				if val, ok := rec.Get(name); ok {
					row[j] = cell(val)
				}
			}
			rows[i] = row
		}
		return columns, rows

	default:
		return []string{"value"}, [][]string{{cell(v)}}
	}
}

func allRecords(items []types.Value) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.Kind() != types.KindRecord {
			return false
		}
	}
	return true
}

// cell renders v on a single line no wider than maxCell runes.
func cell(v types.Value) string {
	s := Summary(v)
	if v.Kind() == types.KindString {
		s = strings.Join(strings.Fields(s), " ")
	}
	if v.Kind() == types.KindList && listOfStrings(v) {
		items, _ := v.Items()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i], _ = item.Str()
		}
		s = strings.Join(parts, ", ")
	}

	runes := []rune(s)
	if len(runes) > maxCell {
		return string(runes[:maxCell-1]) + "…"
	}
	return s
}

func listOfStrings(v types.Value) bool {
	items, _ := v.Items()
	for _, item := range items {
		if item.Kind() != types.KindString {
			return false
		}
	}
	return len(items) > 0
}

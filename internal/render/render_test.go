package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaetschwartz/nuformats/internal/types"
)

func contact(name, email string) types.Value {
	return types.RecordOf(
		types.Field{Name: "FN", Value: types.String(name)},
		types.Field{Name: "EMAIL", Value: types.String(email)},
	)
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"tree", "TABLE", " json "} {
		_, err := ParseMode(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseMode("xml")
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	r := New(&bytes.Buffer{}, ModeTree, false)
	v := types.RecordOf(
		types.Field{Name: "FN", Value: types.String("Jane")},
		types.Field{Name: "TEL", Value: types.List(types.String("1"), types.String("2"))},
		types.Field{Name: "PHOTO", Value: types.Binary(make([]byte, 2048))},
		types.Field{Name: "NOTE", Value: types.Nothing()},
	)

	out := r.Tree("card.vcf", v)
	assert.True(t, strings.HasPrefix(out, "card.vcf"), out)
	assert.Contains(t, out, "FN: Jane")
	assert.Contains(t, out, "[1]: 2")
	assert.Contains(t, out, "PHOTO: binary (2.0 kB)")
	assert.Contains(t, out, "NOTE: nothing")
	assert.Less(t, strings.Index(out, "FN"), strings.Index(out, "TEL"), "field order must be kept")
}

func TestTree_QuotesMultilineStrings(t *testing.T) {
	r := New(&bytes.Buffer{}, ModeTree, false)
	out := r.Tree("msg", types.RecordOf(types.Field{Name: "body", Value: types.String("a\nb")}))
	assert.Contains(t, out, `body: "a\nb"`)
}

func TestTableRows_ListOfRecords(t *testing.T) {
	v := types.List(
		contact("Jane", "jane@example.com"),
		types.RecordOf(
			types.Field{Name: "FN", Value: types.String("John")},
			types.Field{Name: "TEL", Value: types.String("555")},
		),
	)

	headers, rows := tableRows(v)
	assert.Equal(t, []string{"FN", "EMAIL", "TEL"}, headers)
	assert.Equal(t, [][]string{
		{"Jane", "jane@example.com", ""},
		{"John", "", "555"},
	}, rows)
}

func TestTableRows_Record(t *testing.T) {
	v := types.RecordOf(
		types.Field{Name: "server", Value: types.RecordOf(
			types.Field{Name: "host", Value: types.String("localhost")},
		)},
		types.Field{Name: "tags", Value: types.List(types.String("a"), types.String("b"))},
	)

	headers, rows := tableRows(v)
	assert.Equal(t, []string{"name", "value"}, headers)
	assert.Equal(t, [][]string{
		{"server", "record 1 field"},
		{"tags", "a, b"},
	}, rows)
}

func TestTableRows_Scalars(t *testing.T) {
	headers, rows := tableRows(types.List(types.String("x"), types.Binary([]byte("abc"))))
	assert.Equal(t, []string{"#", "value"}, headers)
	assert.Equal(t, [][]string{{"0", "x"}, {"1", "binary (3 B)"}}, rows)

	headers, rows = tableRows(types.String("solo"))
	assert.Equal(t, []string{"value"}, headers)
	assert.Equal(t, [][]string{{"solo"}}, rows)
}

func TestCell_Truncates(t *testing.T) {
	long := strings.Repeat("é", maxCell+10)
	got := cell(types.String(long))
	assert.Equal(t, maxCell, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))

	assert.Equal(t, "a b", cell(types.String("a\n  b")))
}

func TestTable(t *testing.T) {
	r := New(&bytes.Buffer{}, ModeTable, false)
	out := r.Table(types.List(contact("Jane", "jane@example.com"), contact("John", "john@example.com")))

	assert.Contains(t, out, "FN")
	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, "john@example.com")
	assert.NotContains(t, out, "\x1b[", "no escape sequences without color")
}

func TestDocument_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, ModeJSON, false)

	doc := &types.Document{
		Format:   types.FormatINI,
		Value:    types.RecordOf(types.Field{Name: "b", Value: types.String("1")}, types.Field{Name: "a", Value: types.String("2")}),
		Warnings: []types.Warning{{Stage: "ini", Message: "skipped", Line: 2}},
	}
	require.NoError(t, r.Document(doc))

	assert.Equal(t, "{\n  \"b\": \"1\",\n  \"a\": \"2\"\n}\n", buf.String())
}

func TestDocument_TreeWithWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, ModeTree, false)

	doc := &types.Document{
		Path:     "app.ini",
		Format:   types.FormatINI,
		Value:    types.RecordOf(types.Field{Name: "a", Value: types.String("1")}),
		Warnings: []types.Warning{{Stage: "ini", Message: "skipped", Line: 2}},
	}
	require.NoError(t, r.Document(doc))

	assert.Contains(t, buf.String(), "app.ini")
	assert.Contains(t, buf.String(), "warning: ini (at line 2): skipped")
}

func TestBinarySummary(t *testing.T) {
	assert.Equal(t, "binary (0 B)", BinarySummary(0))
	assert.Equal(t, "binary (1.5 MB)", BinarySummary(1_500_000))
}

package ini

import (
	"strings"
	"testing"

	"github.com/gaetschwartz/nuformats/internal/registry"
	"github.com/gaetschwartz/nuformats/internal/types"
)

func str(s string) types.Value { return types.String(s) }

func field(name string, v types.Value) types.Field {
	return types.Field{Name: name, Value: v}
}

func parse(t *testing.T, text string, opts *types.Options) *types.Document {
	t.Helper()
	doc, err := (&parser{}).Parse(text, opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Format != types.FormatINI {
		t.Errorf("Format = %v, want ini", doc.Format)
	}
	return doc
}

func TestParse_LastWriteWins(t *testing.T) {
	doc := parse(t, "[a]\nx=1\nx=2\n", nil)

	want := types.RecordOf(field("a", types.RecordOf(field("x", str("2")))))
	if !doc.Value.Equal(want) {
		t.Errorf("Parse() = %s, want %s", doc.Value, want)
	}
}

func TestParse_SectionsAndGlobals(t *testing.T) {
	input := `; leading comment
name = demo
version: 2

[server]
host = localhost
  port=8080

# another comment
[database]
url = postgres://db:5432/app
`
	doc := parse(t, input, nil)

	want := types.RecordOf(
		field("name", str("demo")),
		field("version", str("2")),
		field("server", types.RecordOf(
			field("host", str("localhost")),
			field("port", str("8080")),
		)),
		field("database", types.RecordOf(
			field("url", str("postgres://db:5432/app")),
		)),
	)
	if !doc.Value.Equal(want) {
		t.Errorf("Parse() = %s\nwant %s", doc.Value, want)
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", doc.Warnings)
	}
}

func TestParse_ReopenedSectionMerges(t *testing.T) {
	doc := parse(t, "[a]\nx=1\n[b]\ny=2\n[a]\nz=3\nx=4\n", nil)

	want := types.RecordOf(
		field("a", types.RecordOf(field("x", str("4")), field("z", str("3")))),
		field("b", types.RecordOf(field("y", str("2")))),
	)
	if !doc.Value.Equal(want) {
		t.Errorf("Parse() = %s, want %s", doc.Value, want)
	}
}

func TestParse_SectionReplacesGlobalKey(t *testing.T) {
	doc := parse(t, "a = 1\nb = 2\n[a]\nx = 3\n", nil)

	want := types.RecordOf(
		field("a", types.RecordOf(field("x", str("3")))),
		field("b", str("2")),
	)
	if !doc.Value.Equal(want) {
		t.Errorf("Parse() = %s, want %s", doc.Value, want)
	}
}

func TestParse_MalformedLinesSkipped(t *testing.T) {
	doc := parse(t, "[a]\nx=1\nthis is not valid\n= novalue\ny=2\n", nil)

	want := types.RecordOf(field("a", types.RecordOf(field("x", str("1")), field("y", str("2")))))
	if !doc.Value.Equal(want) {
		t.Errorf("Parse() = %s, want %s", doc.Value, want)
	}

	if len(doc.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(doc.Warnings), doc.Warnings)
	}
	if doc.Warnings[0].Line != 3 || doc.Warnings[1].Line != 4 {
		t.Errorf("warning lines = %d, %d; want 3, 4", doc.Warnings[0].Line, doc.Warnings[1].Line)
	}
	if doc.Warnings[0].Stage != "ini" {
		t.Errorf("Stage = %q, want ini", doc.Warnings[0].Stage)
	}
}

func TestParse_QuoteStripping(t *testing.T) {
	input := "a = \"double\"\nb = 'single'\nc = \"mismatched'\nd = \"\ne = plain\n"

	tests := []struct {
		name  string
		strip bool
		want  map[string]string
	}{
		{
			name:  "enabled",
			strip: true,
			want:  map[string]string{"a": "double", "b": "single", "c": `"mismatched'`, "d": `"`, "e": "plain"},
		},
		{
			name:  "disabled",
			strip: false,
			want:  map[string]string{"a": `"double"`, "b": "'single'", "c": `"mismatched'`, "d": `"`, "e": "plain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, input, &types.Options{QuoteStripping: tt.strip})
			rec, _ := doc.Value.Record()
			for key, want := range tt.want {
				got, ok := rec.Get(key)
				if !ok {
					t.Fatalf("missing key %q", key)
				}
				if !got.Equal(str(want)) {
					t.Errorf("%s = %s, want %q", key, got, want)
				}
			}
		})
	}
}

func TestParse_SeparatorAndWhitespace(t *testing.T) {
	doc := parse(t, "url = http://example.com\r\ntime: 10:30\r\n  spaced   =   out  \r\nempty =\r\n", nil)

	want := types.RecordOf(
		field("url", str("http://example.com")),
		field("time", str("10:30")),
		field("spaced", str("out")),
		field("empty", str("")),
	)
	if !doc.Value.Equal(want) {
		t.Errorf("Parse() = %s, want %s", doc.Value, want)
	}
}

func TestParse_Deterministic(t *testing.T) {
	input := "g=1\n[s1]\na=1\nb=2\n[s2]\nc=3\n"
	first := parse(t, input, nil)
	second := parse(t, input, nil)
	if !first.Value.Equal(second.Value) {
		t.Errorf("parsing twice differs: %s vs %s", first.Value, second.Value)
	}
}

func TestParse_Empty(t *testing.T) {
	doc := parse(t, "", nil)
	rec, ok := doc.Value.Record()
	if !ok || rec.Len() != 0 {
		t.Errorf("Parse(\"\") = %s, want empty record", doc.Value)
	}
}

func TestRegistered(t *testing.T) {
	p := registry.Get(types.FormatINI)
	if p == nil {
		t.Fatal("INI parser not registered")
	}
	if !p.Policy().Lenient {
		t.Error("INI policy must be lenient")
	}
	if p.Policy().Duplicates != types.LastWriteWins {
		t.Errorf("Duplicates = %v, want last write wins", p.Policy().Duplicates)
	}
}

func BenchmarkParse(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("[section]\nkey = value\nother: 'quoted'\n; comment\n")
	}
	input := sb.String()
	opts := &types.Options{QuoteStripping: true}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := (&parser{}).Parse(input, opts); err != nil {
			b.Fatal(err)
		}
	}
}

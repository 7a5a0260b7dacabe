package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes nufmt with args and returns stdout and the exit code set
// through cli.Exit (0 when none).
func run(t *testing.T, stdin string, args ...string) (string, int, error) {
	t.Helper()

	code := 0
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = &bytes.Buffer{}
	t.Cleanup(func() {
		cli.OsExiter = os.Exit
		cli.ErrWriter = os.Stderr
	})

	var out bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run(append([]string{"nufmt"}, args...))
	return out.String(), code, err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestINI_JSONFromStdin(t *testing.T) {
	out, _, err := run(t, "[a]\nx=1\nx=2\n", "--output", "json", "ini")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {\n    \"x\": \"2\"\n  }\n}\n", out)
}

func TestAuto_DetectsStdin(t *testing.T) {
	out, _, err := run(t, "BEGIN:VCARD\nFN:Jane\nEND:VCARD\n", "-o", "json", "--no-color", "auto")
	require.NoError(t, err)
	assert.Contains(t, out, `"FN": "Jane"`)
}

func TestVCF_Tree(t *testing.T) {
	path := writeFile(t, "jane.vcf", "BEGIN:VCARD\nFN:Jane\nEND:VCARD\n")

	out, _, err := run(t, "", "--no-color", "vcf", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "FN: Jane")
}

func TestMultipleFiles_JSONArray(t *testing.T) {
	a := writeFile(t, "a.ini", "x=1\n")
	b := writeFile(t, "b.eml", "Subject: hi\n\nbody\n")

	out, _, err := run(t, "", "-o", "json", "auto", a, b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "["), out)
	assert.Less(t, strings.Index(out, "a.ini"), strings.Index(out, "b.eml"))
	assert.Contains(t, out, `"format": "eml"`)
}

func TestEML_PreviewBody(t *testing.T) {
	out, _, err := run(t, "Subject: x\n\nHello world\n", "-o", "json", "-b", "5", "eml")
	require.NoError(t, err)
	assert.Contains(t, out, `"body": "Hello"`)
}

func TestStrict_ExitCode(t *testing.T) {
	_, code, err := run(t, "[a]\nbroken\n", "--strict", "ini")
	require.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestOutputFlag_CaseInsensitive(t *testing.T) {
	out, _, err := run(t, "x=1\n", "-o", "JSON", "ini")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"x\": \"1\"\n}\n", out)
}

func TestBadOutput_ExitCode(t *testing.T) {
	_, code, err := run(t, "x=1\n", "-o", "xml", "ini")
	require.Error(t, err)
	assert.Equal(t, 2, code)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "nufmt.yaml", "output: json\nstrip_quotes: true\n")

	out, _, err := run(t, "name = \"demo\"\n", "--config", cfg, "ini")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "demo"`)
}

func TestFormatsCommand(t *testing.T) {
	out, _, err := run(t, "", "--no-color", "formats")
	require.NoError(t, err)
	for _, name := range []string{"eml", "ics", "ini", "vcf", "promote to list", "last write wins"} {
		assert.Contains(t, out, name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "nufmt v0.1.0\n"), out)
}

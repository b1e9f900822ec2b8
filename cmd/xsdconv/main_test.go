package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var recs []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %q: %v", line, err)
		}
		recs = append(recs, m)
	}
	return recs
}

func TestRun_Convert(t *testing.T) {
	code, out, _ := runCLI(t, "", "convert", "-type", "xs:int", "42")
	if code != exitOK {
		t.Fatalf("exit %d", code)
	}
	want := `{"input":"42","type":"xs:int","result":{"type":"int","kind":"integer","value":42}}` + "\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestRun_ConvertFailureIsLocalized(t *testing.T) {
	code, out, errOut := runCLI(t, "", "convert", "-lang", "ja", "-type", "xs:int", "99999999999")
	if code != exitFailed {
		t.Fatalf("exit %d", code)
	}
	recs := decodeLines(t, out)
	e, ok := recs[0]["error"].(map[string]any)
	if !ok {
		t.Fatalf("missing error in %v", recs[0])
	}
	if e["kind"] != "InvalidLexicalValue" || e["code"] != "overflow" {
		t.Fatalf("unexpected error %v", e)
	}
	if msg, _ := e["message"].(string); !strings.Contains(msg, "値が範囲外です") {
		t.Fatalf("expected Japanese message, got %q", msg)
	}
	if !strings.Contains(errOut, "WRN") {
		t.Fatalf("expected a warning log, got %q", errOut)
	}

	code, out, _ = runCLI(t, "", "convert", "-type", "xs:nope", "1")
	if code != exitFailed || !strings.Contains(out, `"kind":"UnsupportedType"`) {
		t.Fatalf("unsupported type: exit %d, %s", code, out)
	}
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"frobnicate"},
		{"convert", "42"},
		{"convert", "-type", "int"},
		{"convert", "-type", "int", "1", "2"},
		{"convert", "-unknown-flag"},
		{"batch"},
		{"schema"},
	} {
		if code, _, _ := runCLI(t, "", args...); code != exitUsage {
			t.Fatalf("%v: exit %d, want %d", args, code, exitUsage)
		}
	}
	if code, out, _ := runCLI(t, "", "help"); code != exitOK || !strings.Contains(out, "Usage:") {
		t.Fatalf("help: exit %d", code)
	}
}

func TestRun_BatchYAML(t *testing.T) {
	in := writeFile(t, "cases.yaml", `
- {value: "42", type: "xs:int"}
- {value: "42.0", type: "xs:double"}
- {value: "nope", type: "xs:boolean"}
- value: "2009-04-17"
  type: xs:date
`)
	code, out, errOut := runCLI(t, "", "batch", "-f", in)
	if code != exitFailed {
		t.Fatalf("exit %d (stderr %s)", code, errOut)
	}
	recs := decodeLines(t, out)
	if len(recs) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(recs))
	}
	for i, r := range recs {
		if r["index"] != float64(i) {
			t.Fatalf("line %d has index %v", i, r["index"])
		}
		_, failed := r["error"]
		if failed != (i == 2) {
			t.Fatalf("line %d: unexpected record %v", i, r)
		}
	}
	res := recs[3]["result"].(map[string]any)
	if res["type"] != "date" || res["value"] != "2009-04-17" {
		t.Fatalf("unexpected date result %v", res)
	}
}

func TestRun_BatchJSONFromStdin(t *testing.T) {
	stdin := `[{"value":"true","type":"boolean"},{"value":" 7 ","type":"xs:byte"}]`
	code, out, _ := runCLI(t, stdin, "batch", "-f", "-", "-format", "json")
	if code != exitOK {
		t.Fatalf("exit %d", code)
	}
	recs := decodeLines(t, out)
	if len(recs) != 2 || recs[1]["result"].(map[string]any)["value"] != float64(7) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestRun_BatchDecodeErrors(t *testing.T) {
	bad := writeFile(t, "bad.json", `{"value":"1"}`)
	if code, _, _ := runCLI(t, "", "batch", "-f", bad); code != exitUsage {
		t.Fatalf("expected usage exit for malformed input, got %d", code)
	}
	untyped := writeFile(t, "untyped.yaml", "- value: x\n")
	if code, _, errOut := runCLI(t, "", "batch", "-f", untyped); code != exitUsage || !strings.Contains(errOut, "no type") {
		t.Fatalf("expected missing type error, got %d %q", code, errOut)
	}
	if code, _, _ := runCLI(t, "", "batch", "-f", filepath.Join(t.TempDir(), "missing.yaml")); code != exitUsage {
		t.Fatalf("expected usage exit for missing file, got %d", code)
	}
	if code, _, _ := runCLI(t, "[]", "batch", "-f", "-", "-format", "toml"); code != exitUsage {
		t.Fatalf("expected usage exit for unknown format, got %d", code)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "xsdconv.yaml", "language: ja\nlog_level: debug\n")
	code, out, errOut := runCLI(t, "", "convert", "-config", cfg, "-type", "date", "2009-02-29")
	if code != exitFailed || !strings.Contains(out, "存在しない日付です") {
		t.Fatalf("exit %d, out %s", code, out)
	}
	if !strings.Contains(errOut, "configuration loaded") {
		t.Fatalf("expected debug log, got %q", errOut)
	}

	// -lang overrides the file.
	_, out, _ = runCLI(t, "", "convert", "-config", cfg, "-lang", "en", "-type", "date", "2009-02-29")
	if strings.Contains(out, "存在しない日付です") {
		t.Fatalf("flag must override config: %s", out)
	}

	wrong := writeFile(t, "wrong.yaml", "language: fr\nlog_level: chatty\n")
	if code, _, errOut := runCLI(t, "", "convert", "-config", wrong, "-type", "int", "1"); code != exitUsage || !strings.Contains(errOut, "unknown language") {
		t.Fatalf("expected config error, got %d %q", code, errOut)
	}
	// Flags replace invalid file values before validation.
	if code, out, errOut := runCLI(t, "", "convert", "-config", wrong, "-lang", "en", "-v", "-type", "int", "1"); code != exitOK || !strings.Contains(out, `"value":1`) {
		t.Fatalf("flags must override invalid config values, got %d %s %q", code, out, errOut)
	}
}

func TestRun_Types(t *testing.T) {
	code, out, _ := runCLI(t, "", "types")
	if code != exitOK {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"int\tinteger\n", "date\tdate\n", "string\ttext\n", "decimal\tdecimal\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestRun_Schema(t *testing.T) {
	code, out, _ := runCLI(t, "", "schema", "-type", "xs:date")
	if code != exitOK || !strings.Contains(out, `"format": "date"`) {
		t.Fatalf("exit %d, %s", code, out)
	}
	if code, _, _ := runCLI(t, "", "schema", "-type", "xs:nope"); code != exitFailed {
		t.Fatalf("unknown type: exit %d", code)
	}
}

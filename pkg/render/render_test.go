package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/rusty-ast/pkg/parser"
	"github.com/spicery/rusty-ast/pkg/syntax"
)

const addSource = `fn add(a: i32, b: i32) -> i32 { a + b }`

func mustParse(t *testing.T, source string) *syntax.File {
	t.Helper()
	file, err := parser.ParseString(source)
	require.NoError(t, err)
	return file
}

func text(t *testing.T, file *syntax.File, options *Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderText(file, &buf, options))
	return buf.String()
}

func decode(t *testing.T, file *syntax.File) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(RenderJSON(file, nil)), &doc))
	return doc
}

func items(t *testing.T, doc map[string]any) []map[string]any {
	t.Helper()
	raw, ok := doc["items"].([]any)
	require.True(t, ok, "items missing: %v", doc)
	var out []map[string]any
	for _, it := range raw {
		out = append(out, it.(map[string]any))
	}
	return out
}

func TestRenderTextFunction(t *testing.T) {
	assert.Equal(t, `Function: add
  Parameters:
    Parameter: a - Type: i32
    Parameter: b - Type: i32
  Return type: i32
  Body:
    Expression statement:
      Binary expression: +
        Left:
          Identifier: a
        Right:
          Identifier: b
`, text(t, mustParse(t, addSource), nil))
}

func TestRenderTextIndentOption(t *testing.T) {
	out := text(t, mustParse(t, `struct P(f64);`), &Options{Indent: 4})
	assert.Equal(t, "Struct: P\n    Fields:\n        Tuple field: f64\n", out)
}

func TestRenderTextEnumAndUnitStruct(t *testing.T) {
	out := text(t, mustParse(t, "enum Color { Red, Green, Blue }\nstruct Unit;"), nil)
	assert.Equal(t, `Enum: Color
  Variants:
    Variant: Red
    Variant: Green
    Variant: Blue
Struct: Unit
`, out)
}

func TestRenderTextVariableAndCall(t *testing.T) {
	out := text(t, mustParse(t, `fn main() { let x = 5; println!("{}", x); foo(x, "hi", true); }`), nil)
	assert.Equal(t, `Function: main
  Body:
    Variable declaration:
      Name: x
      Initializer:
        Integer literal: 5
    Other statement: println!("{}", x);
    Expression statement:
      Function call:
        Function:
          Identifier: foo
        Arguments:
          Identifier: x
          String literal: "hi"
          Boolean literal: true
`, out)
}

func TestRenderTextIfIndentation(t *testing.T) {
	source := `fn f(x: i32) -> i32 {
    if x > 10 { return x; } else { 0 }
}`
	out := text(t, mustParse(t, source), nil)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	indentOf := func(label string) int {
		for _, line := range lines {
			if strings.TrimSpace(line) == label {
				return len(line) - len(strings.TrimLeft(line, " "))
			}
		}
		t.Fatalf("no line %q in\n%s", label, out)
		return -1
	}
	ifIndent := indentOf("If statement:")
	assert.Equal(t, ifIndent+2, indentOf("Condition:"))
	assert.Equal(t, ifIndent+2, indentOf("Then branch:"))
	assert.Equal(t, ifIndent+2, indentOf("Else branch:"))
	assert.Equal(t, ifIndent+4, indentOf("Binary expression: >"))
	assert.Equal(t, ifIndent+4, indentOf("Other expression: { 0 }"))
	assert.Equal(t, ifIndent+6, indentOf("Return statement:"))
}

func TestRenderTextOtherConstructs(t *testing.T) {
	out := text(t, mustParse(t, `impl Point { fn origin() -> Self { Point { x: 0 } } }
fn g(v: i32) { match v { _ => {} } }`), nil)
	assert.Contains(t, out, "Other item: impl Point { fn origin() -> Self { Point { x: 0 } } }\n")
	assert.Contains(t, out, "      Other expression: match v { _ => {} }\n")
}

func TestRenderTextTrim(t *testing.T) {
	out := text(t, mustParse(t, `use std::collections::HashMap;`), &Options{TrimTokenOnOutput: 10})
	assert.Equal(t, "Other item: use std::…\n", out)
}

func TestRenderTextIdempotent(t *testing.T) {
	sources := []string{
		addSource,
		`use std::fmt;
impl P { fn new() -> Self { P } }
fn f(self: Box<Self>, x: i32) -> i32 {
    struct Inner { v: u8 }
    fn helper() {}
    let y = 1f32;
    if x > 10 { return x; } else if x < 0 { -x } else { 0 }
    match x { _ => {} }
}`,
	}
	for _, source := range sources {
		file := mustParse(t, source)
		first := text(t, file, nil)
		assert.Equal(t, first, text(t, file, nil))
		assert.Equal(t, RenderJSON(file, nil), RenderJSON(file, nil))
		assert.Equal(t, RenderYAML(file, nil), RenderYAML(file, nil))
	}
}

func TestRenderTextTypedReceiverAndSuffixedFloat(t *testing.T) {
	out := text(t, mustParse(t, `fn f(self: Box<Self>) { let y = 1f32; }`), nil)
	assert.Equal(t, `Function: f
  Parameters:
    Self receiver: self: Box<Self>
  Body:
    Variable declaration:
      Name: y
      Initializer:
        Float literal: 1
`, out)
}

func TestRenderTextEmptyFile(t *testing.T) {
	assert.Equal(t, "", text(t, mustParse(t, ""), nil))
	assert.Equal(t, "{}", RenderJSON(mustParse(t, ""), nil))
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, os.ErrClosed
}

func TestRenderTextKeepsFirstError(t *testing.T) {
	w := &failingWriter{}
	err := RenderText(mustParse(t, addSource), w, nil)
	require.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, 1, w.writes)
}

func TestRenderJSONFunction(t *testing.T) {
	doc := decode(t, mustParse(t, addSource))
	fn := items(t, doc)[0]
	assert.Equal(t, "Function", fn["type"])
	assert.Equal(t, "add", fn["name"])
	assert.Equal(t, "i32", fn["return_type"])
	assert.Equal(t, []any{
		map[string]any{"name": "a", "type_info": "i32"},
		map[string]any{"name": "b", "type_info": "i32"},
	}, fn["parameters"])
	body := fn["body"].([]any)
	require.Len(t, body, 1)
	stmt := body[0].(map[string]any)
	assert.Equal(t, "Expression", stmt["type"])
	bin := stmt["expr"].(map[string]any)
	assert.Equal(t, "Binary", bin["type"])
	assert.Equal(t, "+", bin["operator"])
	assert.Equal(t, map[string]any{"type": "Identifier", "name": "a"}, bin["left"])
	assert.Equal(t, map[string]any{"type": "Identifier", "name": "b"}, bin["right"])
}

func TestRenderJSONDiscriminatorComesFirst(t *testing.T) {
	out := RenderJSON(mustParse(t, addSource), nil)
	assert.True(t, strings.HasPrefix(out, "{\n  \"items\": [\n    {\n      \"type\": \"Function\",\n      \"name\": \"add\""), out)
	assert.Contains(t, out, `"operator": "+"`)
}

func TestRenderJSONEnumOrder(t *testing.T) {
	doc := decode(t, mustParse(t, "enum Color { Red, Green, Blue }"))
	assert.Equal(t, []any{
		map[string]any{"name": "Red"},
		map[string]any{"name": "Green"},
		map[string]any{"name": "Blue"},
	}, items(t, doc)[0]["variants"])
}

func TestRenderJSONOmitsEmpty(t *testing.T) {
	doc := decode(t, mustParse(t, "fn noop() {}\nstruct Unit;"))
	got := items(t, doc)
	assert.Equal(t, map[string]any{"type": "Function", "name": "noop"}, got[0])
	assert.Equal(t, map[string]any{"type": "Struct", "name": "Unit"}, got[1])
}

func TestRenderJSONStatementsAndLiterals(t *testing.T) {
	doc := decode(t, mustParse(t, `fn main() { let ok = true; let s = "a<b"; let n; loop { break; } }`))
	body := items(t, doc)[0]["body"].([]any)
	require.Len(t, body, 4)
	assert.Equal(t, map[string]any{
		"type":        "VariableDeclaration",
		"name":        "ok",
		"initializer": map[string]any{"type": "BoolLiteral", "value": true},
	}, body[0])
	assert.Equal(t, map[string]any{"type": "StringLiteral", "value": "a<b"}, body[1].(map[string]any)["initializer"])
	assert.Equal(t, map[string]any{"type": "VariableDeclaration", "name": "n"}, body[2])
	loop := body[3].(map[string]any)["expr"].(map[string]any)
	assert.Equal(t, "Loop", loop["type"])
	assert.Equal(t, []any{map[string]any{
		"type": "Expression",
		"expr": map[string]any{"type": "Other", "description": "break"},
	}}, loop["body"])
}

func TestRenderJSONCallAndIf(t *testing.T) {
	doc := decode(t, mustParse(t, `fn f() { if ready() { go(1) } else if x { } }`))
	stmt := items(t, doc)[0]["body"].([]any)[0].(map[string]any)
	ifExpr := stmt["expr"].(map[string]any)
	assert.Equal(t, "If", ifExpr["type"])
	assert.Equal(t, map[string]any{
		"type":     "Call",
		"function": map[string]any{"type": "Identifier", "name": "ready"},
	}, ifExpr["condition"])
	then := ifExpr["then_branch"].([]any)
	call := then[0].(map[string]any)["expr"].(map[string]any)
	assert.Equal(t, []any{map[string]any{"type": "IntLiteral", "value": "1"}}, call["arguments"])
	elseIf := ifExpr["else_branch"].(map[string]any)
	assert.Equal(t, "If", elseIf["type"])
	assert.NotContains(t, elseIf, "then_branch")
}

func TestRenderJSONSpans(t *testing.T) {
	file := mustParse(t, "\nfn one() {}")
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(RenderJSON(file, &Options{IncludeSpans: true})), &doc))
	fn := items(t, doc)[0]
	assert.Equal(t, []any{2.0, 1.0, 2.0, 12.0}, fn["span"])
	assert.NotContains(t, decode(t, file)["items"].([]any)[0], "span")
}

func TestRenderYAML(t *testing.T) {
	out := RenderYAML(mustParse(t, addSource), nil)
	assert.True(t, strings.HasPrefix(out, "items:\n"), out)
	assert.Contains(t, out, "type: Function")
	assert.Contains(t, out, "return_type: i32")
}

func TestRenderAsciiTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderAsciiTree(mustParse(t, addSource), &buf, nil))
	out := buf.String()
	assert.Contains(t, out, "file")
	for _, label := range []string{"Function: add", "Parameters", "Parameter: a - Type: i32", "Return type: i32", "Binary expression: +", "Identifier: b"} {
		assert.Contains(t, out, label)
	}
}

func TestRenderDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDOT(mustParse(t, `fn say(s: &str) { print("a \"q\""); }`), &buf, nil))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `"node_0" [label="file"`)
	assert.Contains(t, out, `"node_0" -> "node_1" [label="items"];`)
	assert.Contains(t, out, `[label="parameters"]`)
	assert.Contains(t, out, `String literal: \"a \\\"q\\\"\"`)
}

func TestPickRenderer(t *testing.T) {
	for _, format := range append(Formats, "json", "") {
		f, err := PickRenderer(format)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}
	_, err := PickRenderer("XML")
	assert.ErrorContains(t, err, `unknown format "XML"`)

	var buf bytes.Buffer
	f, err := PickRenderer("json")
	require.NoError(t, err)
	require.NoError(t, f(mustParse(t, addSource), &buf, nil))
	assert.Equal(t, RenderJSON(mustParse(t, addSource), nil)+"\n", buf.String())
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("option-format: JSON\noption-include-spans: true\noption-trim-token-on-output: 20\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, &Options{Format: "JSON", Indent: DefaultIndent, IncludeSpans: true, TrimTokenOnOutput: 20}, opts)

	require.NoError(t, os.WriteFile(path, []byte("option-indent: -1\n"), 0o644))
	_, err = LoadOptions(path)
	assert.Error(t, err)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTrimValue(t *testing.T) {
	assert.Equal(t, "abcdef", TrimValue("abcdef", 0))
	assert.Equal(t, "abcdef", TrimValue("abcdef", 6))
	assert.Equal(t, "abc…", TrimValue("abcdef", 4))
	assert.Equal(t, "a", TrimValue("abcdef", 1))
	assert.Equal(t, "é…", TrimValue("ééé", 2))
}

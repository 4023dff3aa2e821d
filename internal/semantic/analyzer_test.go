package semantic

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/tangzhangming/wyvern/internal/i18n"
	"github.com/tangzhangming/wyvern/internal/parser"
	"github.com/tangzhangming/wyvern/internal/symbol"
)

func TestMain(m *testing.M) {
	i18n.SetLanguage(i18n.LangEnglish)
	os.Exit(m.Run())
}

func analyze(t *testing.T, src string) (*Analyzer, error) {
	t.Helper()
	program, err := parser.Parse(src)
	be.Err(t, err, nil)
	a := New(nil)
	return a, a.Analyze(program)
}

func semanticError(t *testing.T, err error) *SemanticError {
	t.Helper()
	var semErr *SemanticError
	be.True(t, errors.As(err, &semErr))
	return semErr
}

func TestAnalyzeValidProgram(t *testing.T) {
	a, err := analyze(t, `
var x, y;
f(a, b) {
	var t;
	t = a + b;
	return t;
}
g() {
	printi(x);
}
main() {
	var x, i;
	x = f(1, 2);
	i = 0;
	while (i < 3) { i++; if (i == 2) { break; } }
	g();
	y = [1, 2, readi()];
}`)
	be.Err(t, err, nil)

	be.Equal(t, a.Globals.Names(), []string{"x", "y"})

	f, ok := a.Functions.Lookup("f")
	be.True(t, ok)
	be.Equal(t, f.Arity, 2)
	be.Equal(t, f.Params(), []string{"a", "b"})
	be.Equal(t, f.Locals(), []string{"t"})
	be.True(t, f.ReturnsValue)

	g, _ := a.Functions.Lookup("g")
	be.True(t, !g.ReturnsValue)

	main, _ := a.Functions.Lookup("main")
	be.Equal(t, main.Locals(), []string{"x", "i"})
	be.Equal(t, len(a.Functions.UserFunctions()), 3)
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind Kind
		msg  string
	}{
		{"no main", "f() {}", KindMainNotFound, "function main was not found"},
		{"empty program", "", KindMainNotFound, "function main was not found"},
		{"main with params", "main(a) {}", KindMainHasParams, "line 1:1: function main does not expect to receive parameters"},
		{"duplicated function", "f() {} f() {} main() {}", KindDuplicated, "line 1:8: duplicated function: f"},
		{"builtin redefined", "printi(a) {} main() {}", KindDuplicated, "duplicated function: printi"},
		{"duplicated global", "var x; var y, x; main() {}", KindDuplicated, "line 1:15: duplicated variable: x"},
		{"duplicated param", "f(a, a) {} main() {}", KindDuplicated, "duplicated variable: a"},
		{"local shadows param", "f(a) { var a; } main() {}", KindDuplicated, "duplicated variable: a"},
		{"undeclared assign", "main() { x = 1; }", KindUndeclared, "line 1:10: undeclared variable: x"},
		{"undeclared incr", "main() { x++; }", KindUndeclared, "undeclared variable: x"},
		{"undeclared decr", "main() { x--; }", KindUndeclared, "undeclared variable: x"},
		{"undeclared read", "main() { printi(x); }", KindUndeclared, "undeclared variable: x"},
		{"local of other function", "f() { var t; } main() { t = 1; }", KindUndeclared, "undeclared variable: t"},
		{"undeclared function", "main() { h(); }", KindUndeclared, "function call to undeclared function: h"},
		{"call before definition", "main() { f(); } f() {}", KindUndeclared, "undeclared function: f"},
		{"arity", "main() { printi(1, 2); }", KindArity, "function printi expects 1 argument(s), got 2"},
		{"arity user", "f(a) {} main() { var x; x = f(); }", KindArity, "function f expects 1 argument(s), got 0"},
		{"break outside loop", "main() { break; }", KindBreakOutsideLoop, "line 1:10: break not in while loop"},
		{"break in if outside loop", "main() { if (true) { break; } }", KindBreakOutsideLoop, "break not in while loop"},
		{"overflow", "main() { printi(2147483648); }", KindIntegerOverflow, "integer 2147483648 exceeds 32 bits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.src)
			semErr := semanticError(t, err)
			be.Equal(t, semErr.Kind, tt.kind)
			be.True(t, strings.Contains(err.Error(), tt.msg))
		})
	}
}

func TestAnalyzeShadowingAllowed(t *testing.T) {
	_, err := analyze(t, "var x; f(x) { x = 1; } main() { var x; x = 2; }")
	be.Err(t, err, nil)
}

func TestAnalyzeIntegerBoundary(t *testing.T) {
	_, err := analyze(t, "main() { printi(2147483647); printi(-2147483647); }")
	be.Err(t, err, nil)
}

func TestAnalyzeDuplicateRegardlessOfOrder(t *testing.T) {
	for _, src := range []string{
		"var a; var a; main() {}",
		"main() {} var a; var a;",
		"main() { var b; var b; }",
	} {
		_, err := analyze(t, src)
		be.Equal(t, semanticError(t, err).Kind, KindDuplicated)
	}
}

func TestAnalyzeWarnsOnVoidValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	program, err := parser.Parse("g() {} f() { return 1; } main() { var x; x = g(); x = f(); x = printi(1); g(); }")
	be.Err(t, err, nil)
	be.Err(t, New(logger).Analyze(program), nil)

	out := buf.String()
	be.True(t, strings.Contains(out, "level=WARN"))
	be.True(t, strings.Contains(out, "value of g is used"))
	be.True(t, strings.Contains(out, "value of printi is used"))
	be.True(t, !strings.Contains(out, "value of f"))
	be.Equal(t, strings.Count(out, "\n"), 2)
}

func TestAnalyzeMarksValueFunctions(t *testing.T) {
	a, err := analyze(t, "f(a) { return a + 1; } main() { printi(f(5)); }")
	be.Err(t, err, nil)
	f, _ := a.Functions.Lookup("f")
	be.True(t, f.ReturnsValue)
}

func TestAnalyzeGlobalsTaggedIdentifier(t *testing.T) {
	a, err := analyze(t, "var n, s; main() { n = 1; s = \"hi\"; }")
	be.Err(t, err, nil)
	for _, name := range []string{"n", "s"} {
		tag, ok := a.Globals.Lookup(name)
		be.True(t, ok)
		be.Equal(t, tag, symbol.TagIdentifier)
	}
}

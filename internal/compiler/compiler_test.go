package compiler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/tangzhangming/wyvern/internal/casebook"
	"github.com/tangzhangming/wyvern/internal/codegen"
	"github.com/tangzhangming/wyvern/internal/config"
	"github.com/tangzhangming/wyvern/internal/i18n"
	"github.com/tangzhangming/wyvern/internal/logs"
	"github.com/tangzhangming/wyvern/internal/parser"
	"github.com/tangzhangming/wyvern/internal/semantic"
)

func TestMain(m *testing.M) {
	i18n.SetLanguage(i18n.LangEnglish)
	os.Exit(m.Run())
}

func TestCasebook(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		markdown, err := os.ReadFile(file)
		be.Err(t, err, nil)
		cases, err := casebook.Extract(markdown)
		be.Err(t, err, nil)

		for _, tc := range cases {
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				runCase(t, file, tc)
			})
		}
	}
}

func runCase(t *testing.T, file string, tc casebook.TestCase) {
	c := New(codegen.DefaultOptions(), nil)
	result, err := c.Compile(context.Background(), file, tc.Input)

	for _, a := range tc.Assertions {
		switch a.Type {
		case casebook.AssertionAST:
			program, perr := parser.Parse(tc.Input)
			if perr != nil {
				t.Fatalf("%s:%d: parse: %v", file, a.Line, perr)
			}
			want := strings.Join(strings.Fields(a.Content), " ")
			if got := program.String(); got != want {
				t.Errorf("%s:%d: ast\n got: %s\nwant: %s", file, a.Line, got, want)
			}

		case casebook.AssertionCIL:
			if err != nil {
				t.Fatalf("%s:%d: compile: %v", file, a.Line, err)
			}
			if missing, ok := inOrder(assemblyLines(result.Assembly), a.Lines()); !ok {
				t.Errorf("%s:%d: cil line %q not found in order in\n%s", file, a.Line, missing, result.Assembly)
			}

		case casebook.AssertionCompileError:
			if err == nil {
				t.Fatalf("%s:%d: expected compile error %q", file, a.Line, a.Content)
			}
			if !strings.Contains(err.Error(), a.Content) {
				t.Errorf("%s:%d: error %q does not contain %q", file, a.Line, err.Error(), a.Content)
			}
		}
	}
}

func assemblyLines(assembly string) []string {
	var lines []string
	for _, line := range strings.Split(assembly, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// inOrder 检查 want 中的每一行按顺序出现在 got 中，返回第一个找不到的行
func inOrder(got, want []string) (string, bool) {
	i := 0
	for _, line := range want {
		for i < len(got) && got[i] != line {
			i++
		}
		if i == len(got) {
			return line, false
		}
		i++
	}
	return "", true
}

func TestInOrder(t *testing.T) {
	got := []string{"a", "b", "c", "d"}
	_, ok := inOrder(got, []string{"a", "c", "d"})
	be.True(t, ok)
	missing, ok := inOrder(got, []string{"c", "b"})
	be.True(t, !ok)
	be.Equal(t, missing, "b")
}

func TestCompileResult(t *testing.T) {
	c := New(codegen.DefaultOptions(), nil)
	result, err := c.Compile(context.Background(), "loop.wyv", `
var total;
main() {
  var i;
  while (i < 3) { total = total + i; i++; }
  printi(total);
}`)
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(result.Assembly, "// Code generated by the wyvern compiler."))
	be.Equal(t, result.Labels, 2)
	be.Equal(t, result.Globals.Names(), []string{"total"})
	var names []string
	for _, record := range result.Functions.UserFunctions() {
		names = append(names, record.Name)
	}
	be.Equal(t, names, []string{"main"})
	be.Equal(t, result.Program.Kind, parser.Program)
}

func TestCheckSkipsCodegen(t *testing.T) {
	c := New(codegen.DefaultOptions(), nil)
	result, err := c.Check(context.Background(), "a.wyv", "main() { printi(1); }")
	be.Err(t, err, nil)
	be.Equal(t, result.Assembly, "")
	be.True(t, result.Functions.Contains("main"))
}

func TestCompileErrorStages(t *testing.T) {
	c := New(codegen.DefaultOptions(), nil)

	_, err := c.Compile(context.Background(), "bad.wyv", "main() { x = ; }")
	var compileErr *Error
	be.True(t, errors.As(err, &compileErr))
	be.Equal(t, compileErr.Stage, StageParse)
	be.Equal(t, compileErr.Unit, "bad.wyv")
	var syntaxErr *parser.SyntaxError
	be.True(t, errors.As(err, &syntaxErr))
	be.True(t, strings.HasPrefix(err.Error(), "bad.wyv: line 1:14: "))

	result, err := c.Compile(context.Background(), "sem.wyv", "main() { y = 1; }")
	be.True(t, errors.As(err, &compileErr))
	be.Equal(t, compileErr.Stage, StageSemantic)
	var semanticErr *semantic.SemanticError
	be.True(t, errors.As(err, &semanticErr))
	be.Equal(t, semanticErr.Kind, semantic.KindUndeclared)
	be.True(t, result != nil && result.Program != nil)
	be.Equal(t, err.Error(), "sem.wyv: line 1:10: undeclared variable: y")
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(codegen.DefaultOptions(), nil)
	_, err := c.Compile(ctx, "a.wyv", "main() { }")
	be.True(t, errors.Is(err, context.Canceled))
}

func TestCompileCustomOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Assembly.Class = "Prog"
	cfg.Runtime.Library = "rt"
	opts := OptionsFromConfig(cfg)
	be.Equal(t, opts.Class, "Prog")
	be.Equal(t, opts.Library, "rt")
	be.Equal(t, opts.Utils, "Utils")

	result, err := New(opts, nil).Compile(context.Background(), "a.wyv", "main() { println(); }")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(result.Assembly, ".class public 'Prog'"))
	be.True(t, strings.Contains(result.Assembly, "call int32 class ['rt']'Wyvern'.'Utils'::'Println'()"))
}

func TestCompileLogsStages(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(&logs.Handler{Handler: handler})

	_, err := New(codegen.DefaultOptions(), logger).Compile(context.Background(), "demo.wyv", `
f() { }
main() { var x; x = f(); }`)
	be.Err(t, err, nil)

	out := buf.String()
	be.True(t, strings.Contains(out, "stage=parse"))
	be.True(t, strings.Contains(out, "stage=semantic"))
	be.True(t, strings.Contains(out, "stage=codegen"))
	be.True(t, strings.Contains(out, "unit=demo.wyv"))
	// f 没有 return，作为值使用时给出警告
	be.True(t, strings.Contains(out, "level=WARN"))
}

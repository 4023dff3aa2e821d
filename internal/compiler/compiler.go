// Package compiler 串联词法、语法、语义分析和代码生成，编译一个 wyvern 源文件
package compiler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tangzhangming/wyvern/internal/codegen"
	"github.com/tangzhangming/wyvern/internal/config"
	"github.com/tangzhangming/wyvern/internal/i18n"
	"github.com/tangzhangming/wyvern/internal/logs"
	"github.com/tangzhangming/wyvern/internal/parser"
	"github.com/tangzhangming/wyvern/internal/semantic"
	"github.com/tangzhangming/wyvern/internal/symbol"
)

// Stage 编译阶段
type Stage string

const (
	StageParse    Stage = "parse"
	StageSemantic Stage = "semantic"
	StageCodegen  Stage = "codegen"
)

// Error 编译错误，记录出错的编译单元和阶段
type Error struct {
	Unit  string
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return i18n.T(i18n.ErrCompileError, e.Unit, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result 编译结果。只做检查时 Assembly 为空。
type Result struct {
	Program   *parser.Node
	Globals   *symbol.GlobalTable
	Functions *symbol.FunctionTable
	Assembly  string
	Labels    int
}

// Compiler 编译器
type Compiler struct {
	options codegen.Options
	logger  *slog.Logger
}

// New 创建编译器，logger 为 nil 时丢弃日志
func New(options codegen.Options, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compiler{options: options, logger: logger}
}

// OptionsFromConfig 把项目配置中的名字转换为代码生成选项
func OptionsFromConfig(cfg *config.Config) codegen.Options {
	return codegen.Options{
		Assembly:  cfg.Assembly.Name,
		Class:     cfg.Assembly.Class,
		Library:   cfg.Runtime.Library,
		Namespace: cfg.Runtime.Namespace,
		Utils:     cfg.Runtime.Class,
	}
}

// Check 只运行前端：语法分析和语义分析
func (c *Compiler) Check(ctx context.Context, unit, source string) (*Result, error) {
	ctx = logs.WithUnit(ctx, unit)

	start := time.Now()
	program, err := parser.Parse(source)
	if err != nil {
		return nil, c.fail(ctx, unit, StageParse, err)
	}
	c.logger.DebugContext(ctx, "stage complete", "stage", StageParse, "elapsed", time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	analyzer := semantic.New(c.logger.With("unit", unit))
	if err := analyzer.Analyze(program); err != nil {
		return &Result{Program: program}, c.fail(ctx, unit, StageSemantic, err)
	}
	c.logger.DebugContext(ctx, "stage complete", "stage", StageSemantic, "elapsed", time.Since(start),
		"globals", analyzer.Globals.Len(), "functions", len(analyzer.Functions.UserFunctions()))

	return &Result{
		Program:   program,
		Globals:   analyzer.Globals,
		Functions: analyzer.Functions,
	}, nil
}

// Compile 编译一个源文件，返回 CIL 汇编文本。
// 语义错误时返回的 Result 仍带有语法树。
func (c *Compiler) Compile(ctx context.Context, unit, source string) (*Result, error) {
	result, err := c.Check(ctx, unit, source)
	if err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx = logs.WithUnit(ctx, unit)
	start := time.Now()
	gen := codegen.New(result.Globals, result.Functions, c.options)
	result.Assembly = gen.Generate(result.Program)
	result.Labels = gen.Labels()
	c.logger.DebugContext(ctx, "stage complete", "stage", StageCodegen, "elapsed", time.Since(start),
		"labels", result.Labels, "bytes", len(result.Assembly))

	return result, nil
}

func (c *Compiler) fail(ctx context.Context, unit string, stage Stage, err error) error {
	attrs := []any{"stage", stage}
	var syntaxErr *parser.SyntaxError
	var semanticErr *semantic.SemanticError
	switch {
	case errors.As(err, &syntaxErr):
		attrs = append(attrs, "line", syntaxErr.Got.Line, "column", syntaxErr.Got.Column)
	case errors.As(err, &semanticErr) && semanticErr.Token.Line > 0:
		attrs = append(attrs, "line", semanticErr.Token.Line, "column", semanticErr.Token.Column)
	}
	c.logger.DebugContext(ctx, "compile failed", attrs...)
	return &Error{Unit: unit, Stage: stage, Err: err}
}

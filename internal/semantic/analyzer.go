// Package semantic 语义分析：登记全局变量和函数，检查声明、作用域、调用参数个数、
// break 位置和整数范围。
package semantic

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tangzhangming/wyvern/internal/i18n"
	"github.com/tangzhangming/wyvern/internal/lexer"
	"github.com/tangzhangming/wyvern/internal/parser"
	"github.com/tangzhangming/wyvern/internal/symbol"
)

// Kind 语义错误种类
type Kind int

const (
	KindMainNotFound Kind = iota
	KindMainHasParams
	KindDuplicated
	KindUndeclared
	KindArity
	KindBreakOutsideLoop
	KindIntegerOverflow
)

// SemanticError 语义错误。Token 为出错位置，Line 为 0 表示没有位置信息。
type SemanticError struct {
	Kind    Kind
	Message string
	Token   lexer.Token
}

func (e *SemanticError) Error() string {
	if e.Token.Line == 0 {
		return e.Message
	}
	return i18n.T(i18n.ErrSemantic, e.Token.Line, e.Token.Column, e.Message)
}

// valueUse 表达式中的函数调用，分析结束后检查被调函数是否有返回值
type valueUse struct {
	name string
	tok  lexer.Token
}

// Analyzer 语义分析器。一次分析对应一个编译单元。
type Analyzer struct {
	Globals   *symbol.GlobalTable
	Functions *symbol.FunctionTable

	logger *slog.Logger

	current *symbol.FunctionRecord // 顶层时为 nil
	isDef   bool
	isParam bool
	loops   int

	valueUses []valueUse
}

// New 创建语义分析器，符号表预先登记内置函数
func New(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{
		Globals:   symbol.NewGlobalTable(),
		Functions: symbol.NewFunctionTable(),
		logger:    logger,
	}
}

// Analyze 检查整个程序。遇到第一个错误即返回 *SemanticError。
func (a *Analyzer) Analyze(program *parser.Node) error {
	if program.Kind != parser.Program {
		panic(fmt.Sprintf("semantic: expected Program node, got %s", program.Kind))
	}
	if err := a.visitChildren(program.Child(0)); err != nil {
		return err
	}

	main, ok := a.Functions.Lookup("main")
	if !ok || main.Predefined {
		return &SemanticError{Kind: KindMainNotFound, Message: i18n.T(i18n.ErrMainNotFound)}
	}

	for _, use := range a.valueUses {
		if record, _ := a.Functions.Lookup(use.name); !record.ReturnsValue {
			a.logger.Warn(i18n.T(i18n.WarnNoReturnValue, use.name),
				"line", use.tok.Line, "column", use.tok.Column)
		}
	}
	return nil
}

func (a *Analyzer) visitChildren(node *parser.Node) error {
	for _, child := range node.Children() {
		if err := a.visit(child); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visit(node *parser.Node) error {
	switch node.Kind {
	case parser.VarDef:
		a.isDef = true
		err := a.visitChildren(node.Child(0))
		a.isDef = false
		return err

	case parser.FunDef:
		return a.funDef(node)

	case parser.StmtAssign:
		if err := a.resolveVariable(node.Token); err != nil {
			return err
		}
		return a.visit(node.Child(0))

	case parser.StmtIncr, parser.StmtDecr:
		return a.resolveVariable(node.Token)

	case parser.StmtFunCall:
		return a.funCall(node.Child(0), false)

	case parser.FunCall:
		return a.funCall(node, true)

	case parser.StmtWhile:
		a.loops++
		err := a.visitChildren(node)
		a.loops--
		return err

	case parser.StmtBreak:
		if a.loops <= 0 {
			return a.errorf(KindBreakOutsideLoop, node.Token, i18n.ErrBreakOutsideLoop)
		}
		return nil

	case parser.StmtReturn:
		a.current.ReturnsValue = true
		return a.visit(node.Child(0))

	case parser.Identifier:
		if a.isDef {
			return a.define(node.Token)
		}
		return a.resolveVariable(node.Token)

	case parser.IntLiteral:
		if _, err := strconv.ParseInt(node.Token.Literal, 10, 32); err != nil {
			return a.errorf(KindIntegerOverflow, node.Token, i18n.ErrIntegerOverflow, node.Token.Literal)
		}
		return nil

	case parser.CharLiteral, parser.StrLiteral, parser.True, parser.False, parser.StmtEmpty:
		return nil

	case parser.StmtList, parser.StmtIf, parser.ElseIfList, parser.ElseIf, parser.Else,
		parser.ExprList, parser.ArrayLiteral,
		parser.Or, parser.And, parser.Equal, parser.Dif,
		parser.Less, parser.LessEqual, parser.Greater, parser.GreaterEqual,
		parser.Plus, parser.Neg, parser.Mul, parser.Div, parser.Mod, parser.Not:
		return a.visitChildren(node)
	}
	panic(fmt.Sprintf("semantic: unexpected node %s", node.Kind))
}

func (a *Analyzer) funDef(node *parser.Node) error {
	name := node.Token
	params := node.Child(0)

	if name.Literal == "main" && params.Len() > 0 {
		return a.errorf(KindMainHasParams, name, i18n.ErrMainHasParams)
	}
	record, ok := a.Functions.Define(name.Literal, params.Len())
	if !ok {
		return a.errorf(KindDuplicated, name, i18n.ErrDuplicateFunction, name.Literal)
	}

	a.current = record
	defer func() { a.current = nil }()

	a.isDef, a.isParam = true, true
	err := a.visitChildren(params)
	a.isDef, a.isParam = false, false
	if err != nil {
		return err
	}

	if err := a.visitChildren(node.Child(1)); err != nil {
		return err
	}
	return a.visitChildren(node.Child(2))
}

// define 登记声明中的标识符：顶层登记到全局表，函数内登记到该函数的局部表
func (a *Analyzer) define(tok lexer.Token) error {
	var ok bool
	if a.current == nil {
		ok = a.Globals.Define(tok.Literal, symbol.TagIdentifier)
	} else {
		ok = a.current.Define(tok.Literal, a.isParam)
	}
	if !ok {
		return a.errorf(KindDuplicated, tok, i18n.ErrDuplicateVariable, tok.Literal)
	}
	return nil
}

// resolveVariable 变量必须在全局表或当前函数的局部表中
func (a *Analyzer) resolveVariable(tok lexer.Token) error {
	if a.Globals.Contains(tok.Literal) {
		return nil
	}
	if a.current != nil && a.current.Contains(tok.Literal) {
		return nil
	}
	return a.errorf(KindUndeclared, tok, i18n.ErrUndeclaredVar, tok.Literal)
}

func (a *Analyzer) funCall(node *parser.Node, asValue bool) error {
	name := node.Token
	args := node.Child(0)

	record, ok := a.Functions.Lookup(name.Literal)
	if !ok {
		return a.errorf(KindUndeclared, name, i18n.ErrUndeclaredFunc, name.Literal)
	}
	if record.Arity != args.Len() {
		return a.errorf(KindArity, name, i18n.ErrArityMismatch, name.Literal, record.Arity, args.Len())
	}
	if asValue {
		a.valueUses = append(a.valueUses, valueUse{name: name.Literal, tok: name})
	}
	return a.visitChildren(args)
}

func (a *Analyzer) errorf(kind Kind, tok lexer.Token, key string, args ...any) *SemanticError {
	return &SemanticError{Kind: kind, Message: i18n.T(key, args...), Token: tok}
}

// Package codegen 把经过语义检查的 AST 翻译为 CIL 汇编文本
package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tangzhangming/wyvern/internal/lexer"
	"github.com/tangzhangming/wyvern/internal/parser"
	"github.com/tangzhangming/wyvern/internal/symbol"
)

// Options 程序集和运行时库的名字
type Options struct {
	Assembly  string // .assembly 名
	Class     string // 包含全部函数的类
	Library   string // 运行时库程序集
	Namespace string // 运行时库命名空间
	Utils     string // 运行时库中提供内置函数的类
}

// DefaultOptions 默认名字，与 wyvernlib 运行时库对应
func DefaultOptions() Options {
	return Options{
		Assembly:  "wyvern",
		Class:     "Wyvern",
		Library:   "wyvernlib",
		Namespace: "Wyvern",
		Utils:     "Utils",
	}
}

// labelAllocator 单调递增的标签计数器，同一次编译内标签互不相同
type labelAllocator struct {
	next int
}

func (a *labelAllocator) allocate() string {
	label := fmt.Sprintf("$%06d", a.next)
	a.next++
	return label
}

// labelStack 标签栈
type labelStack []string

func (s *labelStack) push(label string) {
	*s = append(*s, label)
}

func (s *labelStack) peek() string {
	if len(*s) == 0 {
		panic("codegen: label stack is empty")
	}
	return (*s)[len(*s)-1]
}

func (s *labelStack) pop() string {
	label := s.peek()
	*s = (*s)[:len(*s)-1]
	return label
}

// CodeGen 代码生成器。符号表由语义分析产生，生成过程中只读。
type CodeGen struct {
	globals   *symbol.GlobalTable
	functions *symbol.FunctionTable
	opts      Options

	builder strings.Builder
	labels  labelAllocator
	loops   labelStack // 循环出口
	ifExits labelStack // if 链出口，由 elseif 共享
	current *symbol.FunctionRecord
}

// New 创建代码生成器
func New(globals *symbol.GlobalTable, functions *symbol.FunctionTable, opts Options) *CodeGen {
	return &CodeGen{
		globals:   globals,
		functions: functions,
		opts:      opts,
	}
}

// Generate 生成整个程序的汇编文本
func (g *CodeGen) Generate(program *parser.Node) string {
	g.builder.Reset()
	g.labels = labelAllocator{}
	g.loops = nil
	g.ifExits = nil
	g.current = nil

	fmt.Fprintf(&g.builder, "// Code generated by the wyvern compiler.\n\n")
	fmt.Fprintf(&g.builder, ".assembly '%s' {}\n\n", g.opts.Assembly)
	fmt.Fprintf(&g.builder, ".assembly extern '%s' {}\n\n", g.opts.Library)
	fmt.Fprintf(&g.builder, ".class public '%s' extends ['mscorlib']'System'.'Object'\n\t{\n", g.opts.Class)

	for _, name := range g.globals.Names() {
		fmt.Fprintf(&g.builder, "\t\t.field public static int32 '%s'\n", name)
	}

	for _, def := range program.Child(0).Children() {
		if def.Kind == parser.FunDef {
			g.funDef(def)
		}
	}

	g.builder.WriteString("}\n")
	return g.builder.String()
}

// Labels 返回上一次生成分配的标签数量
func (g *CodeGen) Labels() int {
	return g.labels.next
}

func (g *CodeGen) funDef(node *parser.Node) {
	name := node.Name()
	record, ok := g.functions.Lookup(name)
	if !ok || record.Predefined {
		panic(fmt.Sprintf("codegen: function %s is not in the function table", name))
	}
	g.current = record
	defer func() { g.current = nil }()

	g.builder.WriteString("\t.method public static hidebysig\n")
	fmt.Fprintf(&g.builder, "\t\tdefault int32 '%s' (%s) cil managed\n\t{\n", name, declList(record.Params()))
	if name == "main" {
		g.builder.WriteString("\t\t.entrypoint\n")
	}
	g.builder.WriteString("\t\t.maxstack 8\n")
	if locals := record.Locals(); len(locals) > 0 {
		fmt.Fprintf(&g.builder, "\t\t.locals init (%s)\n", declList(locals))
	}

	g.stmtList(node.Child(2))

	// 函数末尾总是返回 0
	g.emit("ldc.i4.0")
	g.emit("ret")
	g.builder.WriteString("\t}\n")
}

// declList int32 'a', int32 'b'
func declList(names []string) string {
	decls := make([]string, len(names))
	for i, name := range names {
		decls[i] = "int32 '" + name + "'"
	}
	return strings.Join(decls, ", ")
}

// emit 写出一条指令
func (g *CodeGen) emit(instr string) {
	g.builder.WriteString("\t\t" + instr + "\n")
}

func (g *CodeGen) emitf(format string, args ...any) {
	g.emit(fmt.Sprintf(format, args...))
}

func (g *CodeGen) placeLabel(label string) {
	g.builder.WriteString("\t" + label + ":\n")
}

func (g *CodeGen) stmtList(node *parser.Node) {
	for _, stmt := range node.Children() {
		g.stmt(stmt)
	}
}

func (g *CodeGen) stmt(node *parser.Node) {
	switch node.Kind {
	case parser.StmtAssign:
		g.expr(node.Child(0))
		g.store(node.Name())

	case parser.StmtIncr, parser.StmtDecr:
		op := "add.ovf"
		if node.Kind == parser.StmtDecr {
			op = "sub.ovf"
		}
		g.load(node.Name())
		g.emit("ldc.i4.1")
		g.emit(op)
		g.store(node.Name())

	case parser.StmtFunCall:
		// 每个方法都返回一个 int32，语句中的调用结果总要丢弃
		g.funCall(node.Child(0))
		g.emit("pop")

	case parser.StmtIf:
		g.ifStmt(node)

	case parser.StmtWhile:
		start := g.labels.allocate()
		exit := g.labels.allocate()
		g.loops.push(exit)
		g.placeLabel(start)
		g.expr(node.Child(0))
		g.emitf("brfalse %s", exit)
		g.stmtList(node.Child(1))
		g.emitf("br %s", start)
		g.placeLabel(exit)
		g.loops.pop()

	case parser.StmtBreak:
		g.emitf("br %s", g.loops.peek())

	case parser.StmtReturn:
		g.expr(node.Child(0))
		g.emit("ret")

	case parser.StmtEmpty:

	default:
		panic(fmt.Sprintf("codegen: unexpected statement %s", node.Kind))
	}
}

// ifStmt 每个分支条件不成立时跳过分支体，分支体结束后跳到整条链共享的出口
func (g *CodeGen) ifStmt(node *parser.Node) {
	skip := g.labels.allocate()
	g.ifExits.push(g.labels.allocate())

	g.branch(node.Child(0), node.Child(1), skip)
	for _, arm := range node.Child(2).Children() {
		g.branch(arm.Child(0), arm.Child(1), g.labels.allocate())
	}

	g.stmtList(node.Child(3).Child(0))
	g.placeLabel(g.ifExits.pop())
}

func (g *CodeGen) branch(cond, body *parser.Node, skip string) {
	g.expr(cond)
	g.emitf("brfalse %s", skip)
	g.stmtList(body)
	g.emitf("br %s", g.ifExits.peek())
	g.placeLabel(skip)
}

var binaryOps = map[parser.NodeKind]string{
	parser.Or:      "or",
	parser.And:     "and",
	parser.Equal:   "ceq",
	parser.Less:    "clt",
	parser.Greater: "cgt",
	parser.Plus:    "add.ovf",
	parser.Neg:     "sub.ovf",
	parser.Mul:     "mul.ovf",
	parser.Div:     "div",
	parser.Mod:     "rem",
}

// 取反形式的比较：a != b 即 !(a == b)，a <= b 即 !(a > b)，a >= b 即 !(a < b)
var negatedOps = map[parser.NodeKind]string{
	parser.Dif:          "ceq",
	parser.LessEqual:    "cgt",
	parser.GreaterEqual: "clt",
}

func (g *CodeGen) expr(node *parser.Node) {
	switch node.Kind {
	case parser.Identifier:
		g.load(node.Name())

	case parser.IntLiteral:
		value, err := strconv.ParseInt(node.Name(), 10, 32)
		if err != nil {
			panic(fmt.Sprintf("codegen: integer literal %s: %v", node.Name(), err))
		}
		g.pushInt(int32(value))

	case parser.CharLiteral:
		g.emitf("ldc.i4 %d", lexer.CharValue(node.Name()))

	case parser.StrLiteral:
		g.newHandle()
		for _, value := range lexer.StringValues(node.Name()) {
			g.emit("dup")
			g.emitf("ldc.i4 %d", value)
			g.appendElement()
		}

	case parser.ArrayLiteral:
		g.newHandle()
		for _, element := range node.Child(0).Children() {
			g.emit("dup")
			g.expr(element)
			g.appendElement()
		}

	case parser.True:
		g.emit("ldc.i4.1")

	case parser.False:
		g.emit("ldc.i4.0")

	case parser.FunCall:
		g.funCall(node)

	case parser.Not:
		g.emit("ldc.i4.0")
		g.expr(node.Child(0))
		g.emit("ceq")

	case parser.Plus, parser.Neg:
		if node.Len() == 1 {
			g.expr(node.Child(0))
			if node.Kind == parser.Neg {
				g.emit("neg")
			}
			return
		}
		g.binary(node, binaryOps[node.Kind])

	case parser.Dif, parser.LessEqual, parser.GreaterEqual:
		g.binary(node, negatedOps[node.Kind])
		g.emit("ldc.i4.0")
		g.emit("ceq")

	default:
		op, ok := binaryOps[node.Kind]
		if !ok {
			panic(fmt.Sprintf("codegen: unexpected expression %s", node.Kind))
		}
		g.binary(node, op)
	}
}

func (g *CodeGen) binary(node *parser.Node, op string) {
	g.expr(node.Child(0))
	g.expr(node.Child(1))
	g.emit(op)
}

func (g *CodeGen) pushInt(value int32) {
	if value >= 0 && value <= 8 {
		g.emitf("ldc.i4.%d", value)
		return
	}
	g.emitf("ldc.i4 %d", value)
}

func (g *CodeGen) funCall(node *parser.Node) {
	name := node.Name()
	record, ok := g.functions.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("codegen: call to unknown function %s", name))
	}
	for _, arg := range node.Child(0).Children() {
		g.expr(arg)
	}
	if record.Predefined {
		g.callUtils(capitalize(name), record.Arity)
		return
	}
	g.emitf("call int32 class '%s'::'%s'(%s)", g.opts.Class, name, signature(record.Arity))
}

func (g *CodeGen) callUtils(method string, arity int) {
	g.emitf("call int32 class ['%s']'%s'.'%s'::'%s'(%s)",
		g.opts.Library, g.opts.Namespace, g.opts.Utils, method, signature(arity))
}

// newHandle 创建一个空的数组句柄并留在栈上
func (g *CodeGen) newHandle() {
	g.emit("ldc.i4.0")
	g.callUtils("New", 1)
}

// appendElement 栈上为 句柄 句柄 值，追加后只剩一个句柄
func (g *CodeGen) appendElement() {
	g.callUtils("Add", 2)
	g.emit("pop")
}

func signature(arity int) string {
	return strings.TrimSuffix(strings.Repeat("int32, ", arity), ", ")
}

func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// storage 标识符的存储类别，与语义分析相同的查找顺序：先全局，再当前函数
type storage int

const (
	storageField storage = iota
	storageLocal
	storageParam
)

func (g *CodeGen) resolve(name string) storage {
	if g.globals.Contains(name) {
		return storageField
	}
	if g.current != nil {
		if isParam, ok := g.current.IsParam(name); ok {
			if isParam {
				return storageParam
			}
			return storageLocal
		}
	}
	panic(fmt.Sprintf("codegen: unresolved identifier %s", name))
}

func (g *CodeGen) load(name string) {
	switch g.resolve(name) {
	case storageField:
		g.emitf("ldsfld int32 '%s'::'%s'", g.opts.Class, name)
	case storageLocal:
		g.emitf("ldloc '%s'", name)
	case storageParam:
		g.emitf("ldarg '%s'", name)
	}
}

func (g *CodeGen) store(name string) {
	switch g.resolve(name) {
	case storageField:
		g.emitf("stsfld int32 '%s'::'%s'", g.opts.Class, name)
	case storageLocal:
		g.emitf("stloc '%s'", name)
	case storageParam:
		g.emitf("starg '%s'", name)
	}
}

package parser

import (
	"strings"

	"github.com/tangzhangming/wyvern/internal/lexer"
)

// NodeKind AST 节点种类，每个文法产生式对应一种
type NodeKind int

const (
	// 定义
	Program    NodeKind = iota // [DefList]
	DefList                    // [VarDef | FunDef]*
	VarDef                     // [IdList]
	IdList                     // [Identifier]*
	FunDef                     // 锚点为函数名 [ParamList, VarDefList, StmtList]
	ParamList                  // [Identifier]*
	VarDefList                 // [VarDef]*
	StmtList                   // [语句]*

	// 语句
	StmtAssign  // 锚点为变量名 [表达式]
	StmtIncr    // 锚点为变量名
	StmtDecr    // 锚点为变量名
	StmtFunCall // [FunCall]
	StmtIf      // [条件, StmtList, ElseIfList, Else]
	ElseIfList  // [ElseIf]*
	ElseIf      // [条件, StmtList]
	Else        // [StmtList]
	StmtWhile   // [条件, StmtList]
	StmtBreak
	StmtReturn // [表达式]
	StmtEmpty

	// 表达式
	FunCall      // 锚点为函数名 [ExprList]
	ExprList     // [表达式]*
	Or           // [左, 右]
	And          // [左, 右]
	Equal        // [左, 右]
	Dif          // [左, 右]
	Less         // [左, 右]
	LessEqual    // [左, 右]
	Greater      // [左, 右]
	GreaterEqual // [左, 右]
	Plus         // 二元 [左, 右]，一元 [操作数]
	Neg          // 二元 [左, 右]，一元 [操作数]
	Mul          // [左, 右]
	Div          // [左, 右]
	Mod          // [左, 右]
	Not          // [操作数]
	ArrayLiteral // [ExprList]

	// 字面量和标识符
	Identifier
	IntLiteral
	CharLiteral
	StrLiteral
	True
	False
)

var kindNames = [...]string{
	Program:      "Program",
	DefList:      "DefList",
	VarDef:       "VarDef",
	IdList:       "IdList",
	FunDef:       "FunDef",
	ParamList:    "ParamList",
	VarDefList:   "VarDefList",
	StmtList:     "StmtList",
	StmtAssign:   "StmtAssign",
	StmtIncr:     "StmtIncr",
	StmtDecr:     "StmtDecr",
	StmtFunCall:  "StmtFunCall",
	StmtIf:       "StmtIf",
	ElseIfList:   "ElseIfList",
	ElseIf:       "ElseIf",
	Else:         "Else",
	StmtWhile:    "StmtWhile",
	StmtBreak:    "StmtBreak",
	StmtReturn:   "StmtReturn",
	StmtEmpty:    "StmtEmpty",
	FunCall:      "FunCall",
	ExprList:     "ExprList",
	Or:           "Or",
	And:          "And",
	Equal:        "Equal",
	Dif:          "Dif",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	Plus:         "Plus",
	Neg:          "Neg",
	Mul:          "Mul",
	Div:          "Div",
	Mod:          "Mod",
	Not:          "Not",
	ArrayLiteral: "ArrayLiteral",
	Identifier:   "Identifier",
	IntLiteral:   "IntLiteral",
	CharLiteral:  "CharLiteral",
	StrLiteral:   "StrLiteral",
	True:         "True",
	False:        "False",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node AST 节点。子节点按顺序排列，数量由节点种类决定。
// Token 是锚点 token，携带源码位置；标识符和字面量的拼写也在其中。
type Node struct {
	Kind     NodeKind
	Token    lexer.Token
	children []*Node
}

// NewNode 创建一个节点
func NewNode(kind NodeKind, tok lexer.Token, children ...*Node) *Node {
	return &Node{Kind: kind, Token: tok, children: children}
}

// Add 追加子节点
func (n *Node) Add(child *Node) {
	n.children = append(n.children, child)
}

// Children 返回子节点
func (n *Node) Children() []*Node {
	return n.children
}

// Child 返回第 i 个子节点
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Len 返回子节点数量
func (n *Node) Len() int {
	return len(n.children)
}

// Name 返回锚点 token 的拼写
func (n *Node) Name() string {
	return n.Token.Literal
}

// String 以 S 表达式输出整棵树，例如 (StmtAssign x (IntLiteral 3))
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	if n.anchored() {
		sb.WriteByte(' ')
		sb.WriteString(n.Token.Literal)
	}
	for _, child := range n.children {
		sb.WriteByte(' ')
		child.write(sb)
	}
	sb.WriteByte(')')
}

// 结构性节点的锚点只用于定位，不参与输出
func (n *Node) anchored() bool {
	switch n.Kind {
	case FunDef, StmtAssign, StmtIncr, StmtDecr, FunCall,
		Identifier, IntLiteral, CharLiteral, StrLiteral:
		return true
	}
	return false
}

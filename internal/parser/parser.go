package parser

import (
	"iter"
	"slices"
	"strings"

	"github.com/tangzhangming/wyvern/internal/i18n"
	"github.com/tangzhangming/wyvern/internal/lexer"
)

var (
	firstOfDef = []lexer.TokenType{lexer.TOKEN_VAR, lexer.TOKEN_IDENT}

	firstOfStmt = []lexer.TokenType{
		lexer.TOKEN_IDENT,
		lexer.TOKEN_IF,
		lexer.TOKEN_WHILE,
		lexer.TOKEN_BREAK,
		lexer.TOKEN_RETURN,
		lexer.TOKEN_SEMICOLON,
	}

	firstOfAfterIdent = []lexer.TokenType{
		lexer.TOKEN_ASSIGN,
		lexer.TOKEN_INC,
		lexer.TOKEN_DEC,
		lexer.TOKEN_LPAREN,
	}

	firstOfPrimary = []lexer.TokenType{
		lexer.TOKEN_IDENT,
		lexer.TOKEN_LBRACKET,
		lexer.TOKEN_TRUE,
		lexer.TOKEN_FALSE,
		lexer.TOKEN_INT,
		lexer.TOKEN_CHAR,
		lexer.TOKEN_STRING,
		lexer.TOKEN_LPAREN,
	}

	unaryOps = map[lexer.TokenType]NodeKind{
		lexer.TOKEN_PLUS:  Plus,
		lexer.TOKEN_MINUS: Neg,
		lexer.TOKEN_NOT:   Not,
	}

	firstOfExpr = slices.Concat(firstOfPrimary, []lexer.TokenType{
		lexer.TOKEN_PLUS, lexer.TOKEN_MINUS, lexer.TOKEN_NOT,
	})
)

// 二元运算层，从低到高
var (
	orOps  = map[lexer.TokenType]NodeKind{lexer.TOKEN_OR: Or}
	andOps = map[lexer.TokenType]NodeKind{lexer.TOKEN_AND: And}
	eqOps  = map[lexer.TokenType]NodeKind{lexer.TOKEN_EQ: Equal, lexer.TOKEN_NOT_EQ: Dif}
	relOps = map[lexer.TokenType]NodeKind{
		lexer.TOKEN_LT:    Less,
		lexer.TOKEN_LT_EQ: LessEqual,
		lexer.TOKEN_GT:    Greater,
		lexer.TOKEN_GT_EQ: GreaterEqual,
	}
	addOps = map[lexer.TokenType]NodeKind{lexer.TOKEN_PLUS: Plus, lexer.TOKEN_MINUS: Neg}
	mulOps = map[lexer.TokenType]NodeKind{
		lexer.TOKEN_ASTERISK: Mul,
		lexer.TOKEN_SLASH:    Div,
		lexer.TOKEN_PERCENT:  Mod,
	}
)

// SyntaxError 语法错误，记录期望的 token 类别和实际遇到的 token
type SyntaxError struct {
	Expected []lexer.TokenType
	Got      lexer.Token
}

func (e *SyntaxError) Error() string {
	got := lexer.TokenTypeName(e.Got.Type)
	if len(e.Expected) == 1 {
		return i18n.T(i18n.ErrExpectedToken,
			e.Got.Line, e.Got.Column, lexer.TokenTypeName(e.Expected[0]), got, e.Got.Literal)
	}
	names := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		names[i] = lexer.TokenTypeName(t)
	}
	return i18n.T(i18n.ErrExpectedOneOf,
		e.Got.Line, e.Got.Column, strings.Join(names, ", "), got, e.Got.Literal)
}

// bailout 用于从递归下降中展开，只在 Parse 中恢复
type bailout struct {
	err *SyntaxError
}

// Parser 语法分析器，只向前看一个 token
type Parser struct {
	next func() (lexer.Token, bool)
	cur  lexer.Token
}

// Parse 解析源码，返回 Program 节点
func Parse(input string) (*Node, error) {
	return ParseTokens(lexer.New(input).Tokens())
}

// ParseTokens 从 token 序列解析出 Program 节点。
// 第一个语法错误即终止解析。
func ParseTokens(tokens iter.Seq[lexer.Token]) (program *Node, err error) {
	next, stop := iter.Pull(tokens)
	defer stop()

	p := &Parser{next: next}
	p.advance()

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			program = nil
			err = b.err
		}
	}()

	return p.program(), nil
}

// advance 前进到下一个 token，序列耗尽后停留在 EOF
func (p *Parser) advance() {
	tok, ok := p.next()
	if !ok {
		if p.cur.Type != lexer.TOKEN_EOF {
			p.cur = lexer.Token{Type: lexer.TOKEN_EOF, Line: p.cur.Line, Column: p.cur.Column}
		}
		return
	}
	p.cur = tok
}

// curIs 检查当前 token 是否属于给定类别之一
func (p *Parser) curIs(types ...lexer.TokenType) bool {
	return slices.Contains(types, p.cur.Type)
}

// expect 当前 token 类型匹配时消费并返回它，否则报告语法错误
func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if p.cur.Type != t {
		p.fail(t)
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *Parser) fail(expected ...lexer.TokenType) {
	panic(bailout{err: &SyntaxError{Expected: expected, Got: p.cur}})
}

// program → def-list EOF
func (p *Parser) program() *Node {
	defs := NewNode(DefList, p.cur)
	for p.curIs(firstOfDef...) {
		defs.Add(p.def())
	}
	p.expect(lexer.TOKEN_EOF)
	return NewNode(Program, defs.Token, defs)
}

func (p *Parser) def() *Node {
	switch p.cur.Type {
	case lexer.TOKEN_VAR:
		return p.varDef()
	case lexer.TOKEN_IDENT:
		return p.funDef()
	default:
		p.fail(firstOfDef...)
		return nil
	}
}

// var-def → var id-list ;
func (p *Parser) varDef() *Node {
	tok := p.expect(lexer.TOKEN_VAR)
	ids := p.idList(NewNode(IdList, p.cur))
	p.expect(lexer.TOKEN_SEMICOLON)
	return NewNode(VarDef, tok, ids)
}

// id-list → id { , id }
func (p *Parser) idList(list *Node) *Node {
	list.Add(p.identifier())
	for p.curIs(lexer.TOKEN_COMMA) {
		p.advance()
		list.Add(p.identifier())
	}
	return list
}

func (p *Parser) identifier() *Node {
	return NewNode(Identifier, p.expect(lexer.TOKEN_IDENT))
}

// fun-def → id ( [id-list] ) { var-def* stmt* }
func (p *Parser) funDef() *Node {
	name := p.expect(lexer.TOKEN_IDENT)
	params := NewNode(ParamList, p.expect(lexer.TOKEN_LPAREN))
	if p.curIs(lexer.TOKEN_IDENT) {
		p.idList(params)
	}
	p.expect(lexer.TOKEN_RPAREN)
	p.expect(lexer.TOKEN_LBRACE)

	vars := NewNode(VarDefList, p.cur)
	for p.curIs(lexer.TOKEN_VAR) {
		vars.Add(p.varDef())
	}
	body := p.stmtList()
	p.expect(lexer.TOKEN_RBRACE)

	return NewNode(FunDef, name, params, vars, body)
}

func (p *Parser) stmtList() *Node {
	list := NewNode(StmtList, p.cur)
	for p.curIs(firstOfStmt...) {
		list.Add(p.stmt())
	}
	return list
}

func (p *Parser) block() *Node {
	p.expect(lexer.TOKEN_LBRACE)
	body := p.stmtList()
	p.expect(lexer.TOKEN_RBRACE)
	return body
}

func (p *Parser) stmt() *Node {
	switch p.cur.Type {
	case lexer.TOKEN_IDENT:
		return p.identStmt()
	case lexer.TOKEN_IF:
		return p.ifStmt()
	case lexer.TOKEN_WHILE:
		return p.whileStmt()
	case lexer.TOKEN_BREAK:
		tok := p.expect(lexer.TOKEN_BREAK)
		p.expect(lexer.TOKEN_SEMICOLON)
		return NewNode(StmtBreak, tok)
	case lexer.TOKEN_RETURN:
		tok := p.expect(lexer.TOKEN_RETURN)
		value := p.expr()
		p.expect(lexer.TOKEN_SEMICOLON)
		return NewNode(StmtReturn, tok, value)
	case lexer.TOKEN_SEMICOLON:
		return NewNode(StmtEmpty, p.expect(lexer.TOKEN_SEMICOLON))
	default:
		p.fail(firstOfStmt...)
		return nil
	}
}

// 以标识符开头的语句：赋值、自增、自减、函数调用
func (p *Parser) identStmt() *Node {
	name := p.expect(lexer.TOKEN_IDENT)
	var stmt *Node
	switch p.cur.Type {
	case lexer.TOKEN_ASSIGN:
		p.advance()
		stmt = NewNode(StmtAssign, name, p.expr())
	case lexer.TOKEN_INC:
		p.advance()
		stmt = NewNode(StmtIncr, name)
	case lexer.TOKEN_DEC:
		p.advance()
		stmt = NewNode(StmtDecr, name)
	case lexer.TOKEN_LPAREN:
		stmt = NewNode(StmtFunCall, name, p.funCall(name))
	default:
		p.fail(firstOfAfterIdent...)
	}
	p.expect(lexer.TOKEN_SEMICOLON)
	return stmt
}

// fun-call → id ( expr-list )，函数名已被消费
func (p *Parser) funCall(name lexer.Token) *Node {
	p.expect(lexer.TOKEN_LPAREN)
	args := p.exprList(lexer.TOKEN_RPAREN)
	return NewNode(FunCall, name, args)
}

// expr-list → [ expr { , expr } ]，消费结束符
func (p *Parser) exprList(closing lexer.TokenType) *Node {
	list := NewNode(ExprList, p.cur)
	if p.curIs(firstOfExpr...) {
		list.Add(p.expr())
		for p.curIs(lexer.TOKEN_COMMA) {
			p.advance()
			list.Add(p.expr())
		}
	}
	p.expect(closing)
	return list
}

// if ( expr ) { stmt* } { elseif ( expr ) { stmt* } } [ else { stmt* } ]
func (p *Parser) ifStmt() *Node {
	tok := p.expect(lexer.TOKEN_IF)
	cond := p.condition()
	then := p.block()

	elseIfs := NewNode(ElseIfList, p.cur)
	for p.curIs(lexer.TOKEN_ELSEIF) {
		arm := p.expect(lexer.TOKEN_ELSEIF)
		armCond := p.condition()
		elseIfs.Add(NewNode(ElseIf, arm, armCond, p.block()))
	}

	// 没有 else 时补一个空的 else，供代码生成放置出口标签
	elseNode := NewNode(Else, p.cur)
	if p.curIs(lexer.TOKEN_ELSE) {
		p.advance()
		elseNode.Add(p.block())
	} else {
		elseNode.Add(NewNode(StmtList, p.cur))
	}

	return NewNode(StmtIf, tok, cond, then, elseIfs, elseNode)
}

func (p *Parser) whileStmt() *Node {
	tok := p.expect(lexer.TOKEN_WHILE)
	cond := p.condition()
	return NewNode(StmtWhile, tok, cond, p.block())
}

func (p *Parser) condition() *Node {
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.expr()
	p.expect(lexer.TOKEN_RPAREN)
	return cond
}

func (p *Parser) expr() *Node {
	return p.binary(orOps, func() *Node {
		return p.binary(andOps, func() *Node {
			return p.binary(eqOps, func() *Node {
				return p.binary(relOps, func() *Node {
					return p.binary(addOps, func() *Node {
						return p.binary(mulOps, p.unary)
					})
				})
			})
		})
	})
}

// binary 左结合的二元运算层
func (p *Parser) binary(ops map[lexer.TokenType]NodeKind, operand func() *Node) *Node {
	left := operand()
	for {
		kind, ok := ops[p.cur.Type]
		if !ok {
			return left
		}
		tok := p.cur
		p.advance()
		left = NewNode(kind, tok, left, operand())
	}
}

// unary 前缀运算符可以任意重复，最外层运算符在前
func (p *Parser) unary() *Node {
	var prefix []*Node
	for {
		kind, ok := unaryOps[p.cur.Type]
		if !ok {
			break
		}
		prefix = append(prefix, NewNode(kind, p.cur))
		p.advance()
	}

	node := p.primary()
	for i := len(prefix) - 1; i >= 0; i-- {
		prefix[i].Add(node)
		node = prefix[i]
	}
	return node
}

func (p *Parser) primary() *Node {
	switch p.cur.Type {
	case lexer.TOKEN_IDENT:
		name := p.expect(lexer.TOKEN_IDENT)
		if p.curIs(lexer.TOKEN_LPAREN) {
			return p.funCall(name)
		}
		return NewNode(Identifier, name)
	case lexer.TOKEN_LBRACKET:
		tok := p.expect(lexer.TOKEN_LBRACKET)
		return NewNode(ArrayLiteral, tok, p.exprList(lexer.TOKEN_RBRACKET))
	case lexer.TOKEN_TRUE:
		return NewNode(True, p.expect(lexer.TOKEN_TRUE))
	case lexer.TOKEN_FALSE:
		return NewNode(False, p.expect(lexer.TOKEN_FALSE))
	case lexer.TOKEN_INT:
		return NewNode(IntLiteral, p.expect(lexer.TOKEN_INT))
	case lexer.TOKEN_CHAR:
		return NewNode(CharLiteral, p.expect(lexer.TOKEN_CHAR))
	case lexer.TOKEN_STRING:
		return NewNode(StrLiteral, p.expect(lexer.TOKEN_STRING))
	case lexer.TOKEN_LPAREN:
		p.advance()
		inner := p.expr()
		p.expect(lexer.TOKEN_RPAREN)
		return inner
	default:
		p.fail(firstOfPrimary...)
		return nil
	}
}

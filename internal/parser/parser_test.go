package parser

import (
	"errors"
	"os"
	"testing"

	"github.com/nalgeon/be"
	"github.com/tangzhangming/wyvern/internal/i18n"
	"github.com/tangzhangming/wyvern/internal/lexer"
)

func TestMain(m *testing.M) {
	i18n.SetLanguage(i18n.LangEnglish)
	os.Exit(m.Run())
}

func mustParse(t *testing.T, src string) *Node {
	t.Helper()
	program, err := Parse(src)
	be.Err(t, err, nil)
	return program
}

// parseExpr 把表达式包进 main 的赋值语句里解析，返回表达式节点
func parseExpr(t *testing.T, expr string) string {
	t.Helper()
	program := mustParse(t, "main() { x = "+expr+"; }")
	fun := program.Child(0).Child(0)
	return fun.Child(2).Child(0).Child(0).String()
}

func TestParseProgramShape(t *testing.T) {
	program := mustParse(t, "var x, y; main() { var a; x = 3; printi(x); }")
	be.Equal(t, program.String(),
		"(Program (DefList"+
			" (VarDef (IdList (Identifier x) (Identifier y)))"+
			" (FunDef main (ParamList) (VarDefList (VarDef (IdList (Identifier a))))"+
			" (StmtList (StmtAssign x (IntLiteral 3))"+
			" (StmtFunCall (FunCall printi (ExprList (Identifier x))))))))")
}

func TestParseEmptyProgram(t *testing.T) {
	program := mustParse(t, "")
	be.Equal(t, program.String(), "(Program (DefList))")
}

func TestParseFunctionParameters(t *testing.T) {
	program := mustParse(t, "f(a, b, c) { return a; }")
	fun := program.Child(0).Child(0)
	be.Equal(t, fun.Kind, FunDef)
	be.Equal(t, fun.Name(), "f")
	be.Equal(t, fun.Child(0).String(), "(ParamList (Identifier a) (Identifier b) (Identifier c))")
	be.Equal(t, fun.Child(2).String(), "(StmtList (StmtReturn (Identifier a)))")
}

func TestParseStatements(t *testing.T) {
	program := mustParse(t, `main() {
		i++;
		i--;
		;
		while (true) { break; }
		f();
	}`)
	body := program.Child(0).Child(0).Child(2)
	be.Equal(t, body.String(),
		"(StmtList (StmtIncr i) (StmtDecr i) (StmtEmpty)"+
			" (StmtWhile (True) (StmtList (StmtBreak)))"+
			" (StmtFunCall (FunCall f (ExprList))))")
}

func TestParseIfChain(t *testing.T) {
	program := mustParse(t, `main() {
		if (a) { x = 1; } elseif (b) { x = 2; } elseif (c) { } else { x = 3; }
		if (a) { }
	}`)
	body := program.Child(0).Child(0).Child(2)

	full := body.Child(0)
	be.Equal(t, full.Kind, StmtIf)
	be.Equal(t, full.Len(), 4)
	be.Equal(t, full.String(),
		"(StmtIf (Identifier a) (StmtList (StmtAssign x (IntLiteral 1)))"+
			" (ElseIfList"+
			" (ElseIf (Identifier b) (StmtList (StmtAssign x (IntLiteral 2))))"+
			" (ElseIf (Identifier c) (StmtList)))"+
			" (Else (StmtList (StmtAssign x (IntLiteral 3)))))")

	bare := body.Child(1)
	be.Equal(t, bare.Len(), 4)
	be.Equal(t, bare.String(), "(StmtIf (Identifier a) (StmtList) (ElseIfList) (Else (StmtList)))")
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 * 3", "(Plus (IntLiteral 1) (Mul (IntLiteral 2) (IntLiteral 3)))"},
		{"1 - 2 - 3", "(Neg (Neg (IntLiteral 1) (IntLiteral 2)) (IntLiteral 3))"},
		{"a || b && c", "(Or (Identifier a) (And (Identifier b) (Identifier c)))"},
		{"a == b < c", "(Equal (Identifier a) (Less (Identifier b) (Identifier c)))"},
		{"a != b", "(Dif (Identifier a) (Identifier b))"},
		{"a <= b", "(LessEqual (Identifier a) (Identifier b))"},
		{"a >= b", "(GreaterEqual (Identifier a) (Identifier b))"},
		{"a > b + 1", "(Greater (Identifier a) (Plus (Identifier b) (IntLiteral 1)))"},
		{"(1 + 2) * 3", "(Mul (Plus (IntLiteral 1) (IntLiteral 2)) (IntLiteral 3))"},
		{"a / b % c", "(Mod (Div (Identifier a) (Identifier b)) (Identifier c))"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			be.Equal(t, parseExpr(t, tt.expr), tt.want)
		})
	}
}

func TestParseUnaryChain(t *testing.T) {
	be.Equal(t, parseExpr(t, "- + ! x"), "(Neg (Plus (Not (Identifier x))))")
	be.Equal(t, parseExpr(t, "!!true"), "(Not (Not (True)))")
	be.Equal(t, parseExpr(t, "-a * b"), "(Mul (Neg (Identifier a)) (Identifier b))")
}

func TestParsePrimaries(t *testing.T) {
	be.Equal(t, parseExpr(t, "[1, 'a', \"s\"]"),
		`(ArrayLiteral (ExprList (IntLiteral 1) (CharLiteral 'a') (StrLiteral "s")))`)
	be.Equal(t, parseExpr(t, "[]"), "(ArrayLiteral (ExprList))")
	be.Equal(t, parseExpr(t, "get(a, size(a) - 1)"),
		"(FunCall get (ExprList (Identifier a) (Neg (FunCall size (ExprList (Identifier a))) (IntLiteral 1))))")
	be.Equal(t, parseExpr(t, "false"), "(False)")
}

func TestParseAnchorPositions(t *testing.T) {
	program := mustParse(t, "main() {\n  x = 1 + 2;\n}")
	assign := program.Child(0).Child(0).Child(2).Child(0)
	be.Equal(t, assign.Token.Line, 2)
	be.Equal(t, assign.Token.Column, 3)
	plus := assign.Child(0)
	be.Equal(t, plus.Token.Type, lexer.TOKEN_PLUS)
	be.Equal(t, plus.Token.Column, 9)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []lexer.TokenType
		got      lexer.TokenType
	}{
		{"missing semicolon", "var x main() {}", []lexer.TokenType{lexer.TOKEN_SEMICOLON}, lexer.TOKEN_IDENT},
		{"illegal char", "main() { x = 3 @ 4; }", []lexer.TokenType{lexer.TOKEN_SEMICOLON}, lexer.TOKEN_ILLEGAL},
		{"bad definition", "42", []lexer.TokenType{lexer.TOKEN_EOF}, lexer.TOKEN_INT},
		{"bad statement", "main() { x; }", firstOfAfterIdent, lexer.TOKEN_SEMICOLON},
		{"bad primary", "main() { x = ; }", firstOfPrimary, lexer.TOKEN_SEMICOLON},
		{"var after statement", "main() { x = 1; var y; }", []lexer.TokenType{lexer.TOKEN_RBRACE}, lexer.TOKEN_VAR},
		{"return without value", "main() { return; }", firstOfPrimary, lexer.TOKEN_SEMICOLON},
		{"unclosed body", "main() {", []lexer.TokenType{lexer.TOKEN_RBRACE}, lexer.TOKEN_EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := Parse(tt.src)
			be.True(t, program == nil)
			var syntaxErr *SyntaxError
			be.True(t, errors.As(err, &syntaxErr))
			be.Equal(t, syntaxErr.Expected, tt.expected)
			be.Equal(t, syntaxErr.Got.Type, tt.got)
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := Parse("main() {\n  x = 3 @ 4;\n}")
	be.Equal(t, err.Error(), "line 2:9: expected ;, got ILLEGAL_CHAR \"@\"")

	_, err = Parse("main() { x; }")
	be.Equal(t, err.Error(), "line 1:11: expected one of =, ++, --, (, got ; \";\"")
}

func TestParseInternalPanicPropagates(t *testing.T) {
	boom := func(yield func(lexer.Token) bool) {
		panic("boom")
	}
	defer func() {
		be.Equal(t, recover(), any("boom"))
	}()
	_, _ = ParseTokens(boom)
	t.Fatal("expected panic")
}

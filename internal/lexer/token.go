package lexer

import "fmt"

// TokenType 表示 token 的类别
type TokenType int

const (
	// 特殊 token
	TOKEN_ILLEGAL TokenType = iota // 无法识别的字符
	TOKEN_EOF

	// 标识符和字面量
	TOKEN_IDENT  // 标识符
	TOKEN_INT    // 整数
	TOKEN_CHAR   // 字符
	TOKEN_STRING // 字符串

	// 运算符
	TOKEN_ASSIGN   // =
	TOKEN_PLUS     // +
	TOKEN_MINUS    // -
	TOKEN_ASTERISK // *
	TOKEN_SLASH    // /
	TOKEN_PERCENT  // %

	TOKEN_EQ     // ==
	TOKEN_NOT_EQ // !=
	TOKEN_LT     // <
	TOKEN_GT     // >
	TOKEN_LT_EQ  // <=
	TOKEN_GT_EQ  // >=

	TOKEN_AND // &&
	TOKEN_OR  // ||
	TOKEN_NOT // !

	TOKEN_INC // ++
	TOKEN_DEC // --

	// 分隔符
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;

	TOKEN_LPAREN   // (
	TOKEN_RPAREN   // )
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
	TOKEN_LBRACE   // {
	TOKEN_RBRACE   // }

	// 关键字
	TOKEN_BREAK  // break
	TOKEN_ELSE   // else
	TOKEN_ELSEIF // elseif
	TOKEN_FALSE  // false
	TOKEN_IF     // if
	TOKEN_RETURN // return
	TOKEN_TRUE   // true
	TOKEN_VAR    // var
	TOKEN_WHILE  // while
)

// Token 表示一个词法单元，生成后不可修改
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String 以 token 转储格式输出
func (t Token) String() string {
	return fmt.Sprintf("{%s, %s, @(%d, %d)}", t.Literal, t.Type, t.Line, t.Column)
}

var keywords = map[string]TokenType{
	"break":  TOKEN_BREAK,
	"else":   TOKEN_ELSE,
	"elseif": TOKEN_ELSEIF,
	"false":  TOKEN_FALSE,
	"if":     TOKEN_IF,
	"return": TOKEN_RETURN,
	"true":   TOKEN_TRUE,
	"var":    TOKEN_VAR,
	"while":  TOKEN_WHILE,
}

// LookupIdent 查找标识符是否为关键字
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENT
}

var tokenNames = [...]string{
	TOKEN_ILLEGAL:   "ILLEGAL_CHAR",
	TOKEN_EOF:       "EOF",
	TOKEN_IDENT:     "IDENTIFIER",
	TOKEN_INT:       "INT_LITERAL",
	TOKEN_CHAR:      "CHAR_LITERAL",
	TOKEN_STRING:    "STR_LITERAL",
	TOKEN_ASSIGN:    "=",
	TOKEN_PLUS:      "+",
	TOKEN_MINUS:     "-",
	TOKEN_ASTERISK:  "*",
	TOKEN_SLASH:     "/",
	TOKEN_PERCENT:   "%",
	TOKEN_EQ:        "==",
	TOKEN_NOT_EQ:    "!=",
	TOKEN_LT:        "<",
	TOKEN_GT:        ">",
	TOKEN_LT_EQ:     "<=",
	TOKEN_GT_EQ:     ">=",
	TOKEN_AND:       "&&",
	TOKEN_OR:        "||",
	TOKEN_NOT:       "!",
	TOKEN_INC:       "++",
	TOKEN_DEC:       "--",
	TOKEN_COMMA:     ",",
	TOKEN_SEMICOLON: ";",
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",
	TOKEN_LBRACKET:  "[",
	TOKEN_RBRACKET:  "]",
	TOKEN_LBRACE:    "{",
	TOKEN_RBRACE:    "}",
	TOKEN_BREAK:     "break",
	TOKEN_ELSE:      "else",
	TOKEN_ELSEIF:    "elseif",
	TOKEN_FALSE:     "false",
	TOKEN_IF:        "if",
	TOKEN_RETURN:    "return",
	TOKEN_TRUE:      "true",
	TOKEN_VAR:       "var",
	TOKEN_WHILE:     "while",
}

func (t TokenType) String() string {
	return TokenTypeName(t)
}

// TokenTypeName 返回 token 类型的名称
func TokenTypeName(t TokenType) string {
	if int(t) >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return "UNKNOWN"
}

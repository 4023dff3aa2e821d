package lexer

import (
	"iter"
	"regexp"
	"unicode/utf8"
)

// action 描述一条词法规则匹配后的处理方式
type action int

const (
	actEmit        action = iota // 产生 token
	actNewline                   // 换行，只更新行列
	actSkip                      // 空白和行注释
	actCommentOpen               // 块注释开始
)

// rule 一条词法规则
type rule struct {
	re     *regexp.Regexp
	action action
	typ    TokenType
}

func emit(pattern string, typ TokenType) rule {
	return rule{re: anchored(pattern), action: actEmit, typ: typ}
}

func anchored(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)`)
}

const escape = `\\(?:[nrt\\'"]|u[0-9a-fA-F]{6})`

// rules 按优先级排列，扫描时取第一条匹配的规则（不是最长匹配）。
// 多字符运算符必须排在它们包含的单字符前缀之前。
var rules = []rule{
	{re: anchored(`\n`), action: actNewline},
	{re: anchored(`[ \t\r\f\v]+`), action: actSkip},
	{re: anchored(`//[^\n]*`), action: actSkip},
	{re: anchored(`/\*`), action: actCommentOpen},

	emit(`'(?:`+escape+`|[^\\\n'])'`, TOKEN_CHAR),
	emit(`"(?:`+escape+`|[^\\\n"])*"`, TOKEN_STRING),

	emit(`&&`, TOKEN_AND),
	emit(`\|\|`, TOKEN_OR),
	emit(`\+\+`, TOKEN_INC),
	emit(`--`, TOKEN_DEC),
	emit(`==`, TOKEN_EQ),
	emit(`!=`, TOKEN_NOT_EQ),
	emit(`<=`, TOKEN_LT_EQ),
	emit(`>=`, TOKEN_GT_EQ),

	emit(`=`, TOKEN_ASSIGN),
	emit(`<`, TOKEN_LT),
	emit(`>`, TOKEN_GT),
	emit(`\+`, TOKEN_PLUS),
	emit(`-`, TOKEN_MINUS),
	emit(`\*`, TOKEN_ASTERISK),
	emit(`/`, TOKEN_SLASH),
	emit(`%`, TOKEN_PERCENT),
	emit(`!`, TOKEN_NOT),
	emit(`,`, TOKEN_COMMA),
	emit(`;`, TOKEN_SEMICOLON),
	emit(`\(`, TOKEN_LPAREN),
	emit(`\)`, TOKEN_RPAREN),
	emit(`\[`, TOKEN_LBRACKET),
	emit(`\]`, TOKEN_RBRACKET),
	emit(`\{`, TOKEN_LBRACE),
	emit(`\}`, TOKEN_RBRACE),

	emit(`[0-9]+`, TOKEN_INT),
	emit(`[a-zA-Z][a-zA-Z0-9_]*`, TOKEN_IDENT),
}

var (
	commentClose = anchored(`[^\n]*?\*/`)
	commentBody  = anchored(`[^\n]+`)
)

// Lexer 词法分析器
type Lexer struct {
	input string
}

// New 创建一个新的词法分析器
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokens 返回惰性产生的 token 序列，以 EOF 结束。
// 每次迭代都从头重新扫描。
func (l *Lexer) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		input := l.input
		pos := 0
		line := 1
		lineStart := 0 // 当前行第一个字符的位置
		inComment := false

		column := func(at int) int {
			return utf8.RuneCountInString(input[lineStart:at]) + 1
		}

		for pos < len(input) {
			rest := input[pos:]

			if inComment {
				switch {
				case rest[0] == '\n':
					pos++
					line++
					lineStart = pos
				case commentClose.MatchString(rest):
					pos += len(commentClose.FindString(rest))
					inComment = false
				default:
					pos += len(commentBody.FindString(rest))
				}
				continue
			}

			matched := false
			for _, r := range rules {
				loc := r.re.FindStringIndex(rest)
				if loc == nil {
					continue
				}
				matched = true
				lexeme := rest[:loc[1]]
				start := pos
				pos += loc[1]

				switch r.action {
				case actNewline:
					line++
					lineStart = pos
				case actCommentOpen:
					inComment = true
				case actEmit:
					typ := r.typ
					if typ == TOKEN_IDENT {
						typ = LookupIdent(lexeme)
					}
					if !yield(Token{Type: typ, Literal: lexeme, Line: line, Column: column(start)}) {
						return
					}
				}
				break
			}

			if !matched {
				// 非法字符交给语法分析器报告
				_, size := utf8.DecodeRuneInString(rest)
				start := pos
				pos += size
				if !yield(Token{Type: TOKEN_ILLEGAL, Literal: rest[:size], Line: line, Column: column(start)}) {
					return
				}
			}
		}

		yield(Token{Type: TOKEN_EOF, Literal: "", Line: line, Column: column(len(input))})
	}
}

// Tokenize 扫描全部输入并返回 token 切片
func Tokenize(input string) []Token {
	var tokens []Token
	for tok := range New(input).Tokens() {
		tokens = append(tokens, tok)
	}
	return tokens
}

package lexer

import (
	"strconv"
	"unicode/utf8"
)

var simpleEscapes = map[byte]int32{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// DecodeString 把字符串或字符字面量的内容（不含引号）解码为码点序列。
// \u 后跟六位十六进制数字表示对应的码点；其余字符按原码点输出。
func DecodeString(body string) []int32 {
	values := make([]int32, 0, len(body))
	for i := 0; i < len(body); {
		if body[i] == '\\' && i+1 < len(body) {
			if v, ok := simpleEscapes[body[i+1]]; ok {
				values = append(values, v)
				i += 2
				continue
			}
			if body[i+1] == 'u' && i+8 <= len(body) {
				if v, err := strconv.ParseInt(body[i+2:i+8], 16, 32); err == nil {
					values = append(values, int32(v))
					i += 8
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(body[i:])
		values = append(values, int32(r))
		i += size
	}
	return values
}

// CharValue 返回字符字面量（含引号）的码点
func CharValue(lexeme string) int32 {
	values := DecodeString(unquote(lexeme))
	if len(values) == 0 {
		return 0
	}
	return values[0]
}

// StringValues 返回字符串字面量（含引号）的码点序列
func StringValues(lexeme string) []int32 {
	return DecodeString(unquote(lexeme))
}

func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	return lexeme[1 : len(lexeme)-1]
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tangzhangming/wyvern/internal/i18n"
	"github.com/tangzhangming/wyvern/internal/lexer"
)

// tokensCmd 输出源文件的 token 序列
func tokensCmd(args []string) int {
	fs := newFlagSet("tokens", i18n.MsgTokensUsage, i18n.MsgTokensDescription)

	input, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}

	source, err := os.ReadFile(input)
	if err != nil {
		printError((&readFileError{path: input, err: err}).Error())
		return 1
	}

	dumpTokens(os.Stdout, input, string(source))
	return 0
}

// dumpTokens 每行一个 token，从 1 开始编号
func dumpTokens(w io.Writer, name, source string) {
	fmt.Fprintln(w, i18n.T(i18n.MsgTokensFrom, name))
	for i, tok := range lexer.Tokenize(source) {
		fmt.Fprintf(w, "[%d] %s\n", i+1, tok)
	}
}

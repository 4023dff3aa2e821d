package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tangzhangming/wyvern/internal/i18n"
)

// newFlagSet 创建子命令的参数集，Usage 输出用法、说明和选项
func newFlagSet(name, usageKey, descriptionKey string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Println(i18n.T(usageKey))
		fmt.Println()
		fmt.Println(i18n.T(descriptionKey))
		fmt.Println()
		fmt.Println("Options:")
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags 解析参数并要求一个输入路径。ok 为 false 时命令应以 code 退出。
func parseFlags(fs *flag.FlagSet, args []string) (input string, code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", 0, false
		}
		return "", 2, false
	}
	if fs.NArg() < 1 {
		printError(i18n.T(i18n.ErrInputRequired))
		fs.Usage()
		return "", 1, false
	}
	return fs.Arg(0), 0, true
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tangzhangming/wyvern/internal/compiler"
	"github.com/tangzhangming/wyvern/internal/i18n"
)

// checkCmd 只运行前端，-v 时输出符号表
func checkCmd(ctx context.Context, args []string) int {
	fs := newFlagSet("check", i18n.MsgCheckUsage, i18n.MsgCheckDescription)
	verbose := fs.Bool("v", false, i18n.T(i18n.MsgOptVerbose))
	configFile := fs.String("config", "", i18n.T(i18n.MsgOptConfig))

	input, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}

	s, err := openSession(input, *configFile, *verbose)
	if err != nil {
		printError(err.Error())
		return 1
	}
	defer s.close()

	source, err := os.ReadFile(input)
	if err != nil {
		printError((&readFileError{path: input, err: err}).Error())
		return 1
	}

	result, err := s.compiler.Check(ctx, input, string(source))
	if err != nil {
		var compileErr *compiler.Error
		if errors.As(err, &compileErr) && compileErr.Stage == compiler.StageSemantic {
			fmt.Println(i18n.T(i18n.MsgSyntaxOK))
		}
		printError(err.Error())
		return 1
	}

	fmt.Println(i18n.T(i18n.MsgSyntaxOK))
	if *verbose {
		fmt.Println()
		fmt.Print(result.Globals.String())
		fmt.Println()
		fmt.Print(result.Functions.String())
		fmt.Println()
	}
	fmt.Println(i18n.T(i18n.MsgSemanticsOK))
	return 0
}

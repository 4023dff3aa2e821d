package main

import (
	"context"
	"fmt"

	"github.com/tangzhangming/wyvern/internal/i18n"
)

// buildCmd 把 wyvern 源码编译为 CIL 汇编文件
func buildCmd(ctx context.Context, args []string) int {
	fs := newFlagSet("build", i18n.MsgBuildUsage, i18n.MsgBuildDescription)
	outputDir := fs.String("o", "", i18n.T(i18n.MsgBuildOptOutput))
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

	output := *outputDir
	if output == "" {
		output = s.cfg.OutputDir(s.configPath, s.baseDir)
	}

	count, err := s.buildInput(ctx, input, output)
	if err != nil {
		printError(err.Error())
		return 1
	}

	fmt.Println(i18n.T(i18n.MsgBuildCompleted, count, output))
	return 0
}

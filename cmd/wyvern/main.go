package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/tangzhangming/wyvern/internal/i18n"
)

const version = "0.1.0"

func main() {
	// 初始化国际化
	i18n.Init()

	os.Exit(run(os.Args[1:]))
}

// run 执行命令行并返回退出码，os.Exit 之前先完成 defer
func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return dispatch(ctx, args[0], args[1:])
}

// dispatch 执行子命令并返回退出码
func dispatch(ctx context.Context, command string, args []string) int {
	switch command {
	case "build":
		return buildCmd(ctx, args)
	case "run":
		return runCmd(ctx, args)
	case "check":
		return checkCmd(ctx, args)
	case "tokens":
		return tokensCmd(args)
	case "version":
		fmt.Println("wyvern version", version)
		return 0
	case "help":
		if len(args) > 0 && args[0] != "help" {
			return dispatch(ctx, args[0], []string{"-h"})
		}
		printUsage()
		return 0
	default:
		printError(i18n.T(i18n.MsgUnknownCommand, command))
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Print(i18n.T(i18n.MsgUsage))
	fmt.Println(i18n.T(i18n.MsgCommands))
	commands := []struct {
		name string
		key  string
	}{
		{"build", i18n.MsgCmdBuild},
		{"run", i18n.MsgCmdRun},
		{"check", i18n.MsgCmdCheck},
		{"tokens", i18n.MsgCmdTokens},
		{"version", i18n.MsgCmdVersion},
		{"help", i18n.MsgCmdHelp},
	}
	for _, c := range commands {
		fmt.Printf("  %-8s %s\n", c.name, i18n.T(c.key))
	}
	fmt.Println()
	fmt.Println(i18n.T(i18n.MsgUseHelp))
}

// 辅助打印函数
func printError(msg string) {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
}

func printInfo(msg string) {
	fmt.Println(msg)
}

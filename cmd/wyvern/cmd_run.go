package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tangzhangming/wyvern/internal/config"
	"github.com/tangzhangming/wyvern/internal/i18n"
)

// runCmd 编译、汇编并运行一个 wyvern 程序
func runCmd(ctx context.Context, args []string) int {
	fs := newFlagSet("run", i18n.MsgRunUsage, i18n.MsgRunDescription)
	verbose := fs.Bool("v", false, i18n.T(i18n.MsgOptVerbose))
	configFile := fs.String("config", "", i18n.T(i18n.MsgOptConfig))

	input, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}

	if info, err := os.Stat(input); err == nil && info.IsDir() {
		printError(i18n.T(i18n.ErrRunSingleFile))
		return 1
	}

	s, err := openSession(input, *configFile, *verbose)
	if err != nil {
		printError(err.Error())
		return 1
	}
	defer s.close()

	// 中间文件放在临时目录，运行结束后删除
	workDir, err := os.MkdirTemp("", "wyvern-run-")
	if err != nil {
		printError(i18n.T(i18n.ErrCannotCreateDir, os.TempDir(), err))
		return 1
	}
	defer os.RemoveAll(workDir)

	base := strings.TrimSuffix(filepath.Base(input), sourceExt)
	ilFile := filepath.Join(workDir, base+assemblyExt)
	exeFile := filepath.Join(workDir, base+".exe")

	if err := s.compileFile(ctx, input, ilFile); err != nil {
		printError(err.Error())
		return 1
	}

	if err := s.assemble(ctx, ilFile, exeFile); err != nil {
		printError(err.Error())
		return 1
	}

	exitCode, err := s.execute(ctx, exeFile)
	if err != nil {
		printError(err.Error())
		return 1
	}
	return exitCode
}

// assemble 调用汇编器生成可执行文件
func (s *session) assemble(ctx context.Context, ilFile, exeFile string) error {
	tool := s.cfg.Build.Ilasm
	if s.verbose {
		printInfo(i18n.T(i18n.MsgAssembling, tool, ilFile))
	}

	cmd := exec.CommandContext(ctx, tool, "/output:"+exeFile, ilFile)
	cmd.Stdout = io.Discard
	if s.verbose {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr

	s.logger.DebugContext(ctx, "exec", "tool", tool, "args", cmd.Args[1:])
	if err := cmd.Run(); err != nil {
		return &toolError{tool: tool, err: err}
	}
	return nil
}

// execute 在虚拟机上运行程序，返回程序的退出码。
// 运行时库从项目根目录（没有配置文件时为源文件所在目录）加载。
func (s *session) execute(ctx context.Context, exeFile string) (int, error) {
	vm := s.cfg.Build.VM
	if s.verbose {
		printInfo(i18n.T(i18n.MsgRunning, vm, exeFile))
	}

	libDir := s.baseDir
	if root := config.GetProjectRoot(s.configPath); root != "" {
		libDir = root
	}

	cmd := exec.CommandContext(ctx, vm, exeFile)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "MONO_PATH="+absPath(libDir))

	s.logger.DebugContext(ctx, "exec", "tool", vm, "args", cmd.Args[1:])
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, &toolError{tool: vm, err: err}
	}
	return 0, nil
}

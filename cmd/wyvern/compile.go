package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tangzhangming/wyvern/internal/compiler"
	"github.com/tangzhangming/wyvern/internal/config"
	"github.com/tangzhangming/wyvern/internal/i18n"
	"github.com/tangzhangming/wyvern/internal/logs"
)

const (
	sourceExt   = ".wyv"
	assemblyExt = ".il"
)

// session 一次命令执行共享的配置、日志和编译器
type session struct {
	cfg        *config.Config
	configPath string
	baseDir    string // 没有配置文件时输出目录的基准
	logger     *slog.Logger
	closeLog   func() error
	compiler   *compiler.Compiler
	verbose    bool
}

// openSession 查找配置并创建日志和编译器。configFile 为空时从输入所在目录向上查找 wyvern.toml。
func openSession(input, configFile string, verbose bool) (*session, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, &accessError{err: err}
	}

	baseDir := input
	if !info.IsDir() {
		baseDir = filepath.Dir(input)
	}

	var cfg *config.Config
	configPath := configFile
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, configPath, err = config.FindAndLoad(baseDir)
	}
	if err != nil {
		return nil, &configError{err: err}
	}

	level := new(slog.LevelVar)
	parsed, err := logs.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, &configError{err: err}
	}
	level.Set(parsed)
	if verbose {
		level.Set(slog.LevelDebug)
	}

	logger, closeLog, err := logs.New(logs.Options{
		Level:   level,
		File:    cfg.Log.File,
		Journal: cfg.Log.Journal,
	})
	if err != nil {
		return nil, &logError{path: cfg.Log.File, err: err}
	}

	if verbose && configPath != "" {
		printInfo(i18n.T(i18n.MsgUsingConfig, configPath))
	}

	return &session{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    baseDir,
		logger:     logger,
		closeLog:   closeLog,
		compiler:   compiler.New(compiler.OptionsFromConfig(cfg), logger),
		verbose:    verbose,
	}, nil
}

func (s *session) close() {
	if err := s.closeLog(); err != nil {
		printError(err.Error())
	}
}

// compileFile 编译单个源文件并写出 .il 文件
func (s *session) compileFile(ctx context.Context, inputFile, outputFile string) error {
	source, err := os.ReadFile(inputFile)
	if err != nil {
		return &readFileError{path: inputFile, err: err}
	}

	if s.verbose {
		printInfo(i18n.T(i18n.MsgCompiling, inputFile, outputFile))
	}

	result, err := s.compiler.Compile(ctx, inputFile, string(source))
	if err != nil {
		return err
	}

	// 确保输出目录存在
	outputDir := filepath.Dir(outputFile)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return &createDirError{path: outputDir, err: err}
	}

	if err := os.WriteFile(outputFile, []byte(result.Assembly), 0644); err != nil {
		return &writeFileError{path: outputFile, err: err}
	}
	return nil
}

// buildInput 编译输入文件或目录，返回写出的文件数
func (s *session) buildInput(ctx context.Context, input, outputDir string) (int, error) {
	info, err := os.Stat(input)
	if err != nil {
		return 0, &accessError{err: err}
	}

	if !info.IsDir() {
		outputFile := filepath.Join(outputDir, assemblyName(filepath.Base(input)))
		if err := s.compileFile(ctx, input, outputFile); err != nil {
			return 0, err
		}
		return 1, nil
	}

	skip := absPath(outputDir)
	count := 0
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// 不进入输出目录
			if absPath(path) == skip {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, sourceExt) {
			return nil
		}

		relPath, err := filepath.Rel(input, path)
		if err != nil {
			return err
		}

		if err := s.compileFile(ctx, path, filepath.Join(outputDir, assemblyName(relPath))); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}

	if count == 0 {
		return 0, &noFilesError{dir: input}
	}
	return count, nil
}

// assemblyName hello.wyv -> hello.il
func assemblyName(path string) string {
	return strings.TrimSuffix(path, sourceExt) + assemblyExt
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// 错误类型定义
type accessError struct {
	err error
}

func (e *accessError) Error() string {
	return i18n.T(i18n.ErrCannotAccessInput, e.err)
}

type configError struct {
	err error
}

func (e *configError) Error() string {
	return i18n.T(i18n.ErrCannotLoadConfig, e.err)
}

type logError struct {
	path string
	err  error
}

func (e *logError) Error() string {
	return i18n.T(i18n.ErrCannotOpenLog, e.path, e.err)
}

type readFileError struct {
	path string
	err  error
}

func (e *readFileError) Error() string {
	return i18n.T(i18n.ErrCannotReadFile, e.path, e.err)
}

type createDirError struct {
	path string
	err  error
}

func (e *createDirError) Error() string {
	return i18n.T(i18n.ErrCannotCreateDir, e.path, e.err)
}

type writeFileError struct {
	path string
	err  error
}

func (e *writeFileError) Error() string {
	return i18n.T(i18n.ErrCannotWriteFile, e.path, e.err)
}

type noFilesError struct {
	dir string
}

func (e *noFilesError) Error() string {
	return i18n.T(i18n.ErrNoSourceFiles, e.dir)
}

type toolError struct {
	tool string
	err  error
}

func (e *toolError) Error() string {
	return i18n.T(i18n.ErrToolFailed, e.tool, e.err)
}

func (e *toolError) Unwrap() error {
	return e.err
}

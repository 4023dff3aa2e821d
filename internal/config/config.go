package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName 配置文件名
const FileName = "wyvern.toml"

// Config wyvern 项目配置
type Config struct {
	Assembly AssemblyConfig `toml:"assembly"`
	Runtime  RuntimeConfig  `toml:"runtime"`
	Build    BuildConfig    `toml:"build"`
	Log      LogConfig      `toml:"log"`
}

// AssemblyConfig 生成的程序集
type AssemblyConfig struct {
	Name  string `toml:"name"`  // .assembly 名
	Class string `toml:"class"` // 包含全部函数的类
}

// RuntimeConfig 内置函数所在的运行时库
type RuntimeConfig struct {
	Library   string `toml:"library"`
	Namespace string `toml:"namespace"`
	Class     string `toml:"class"`
}

// BuildConfig 构建和运行
type BuildConfig struct {
	Output string `toml:"output"` // 输出目录，相对于配置文件所在目录
	Ilasm  string `toml:"ilasm"`  // 汇编器命令
	VM     string `toml:"vm"`     // 虚拟机命令
}

// LogConfig 日志
type LogConfig struct {
	Level   string `toml:"level"`
	File    string `toml:"file"`
	Journal bool   `toml:"journal"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Assembly: AssemblyConfig{
			Name:  "wyvern",
			Class: "Wyvern",
		},
		Runtime: RuntimeConfig{
			Library:   "wyvernlib",
			Namespace: "Wyvern",
			Class:     "Utils",
		},
		Build: BuildConfig{
			Output: "output",
			Ilasm:  "ilasm",
			VM:     "mono",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// FindAndLoad 从指定目录向上查找 wyvern.toml 并加载
func FindAndLoad(startDir string) (*Config, string, error) {
	configPath := FindConfigFile(startDir)
	if configPath == "" {
		// 没找到配置文件，返回默认配置
		return DefaultConfig(), "", nil
	}

	config, err := Load(configPath)
	if err != nil {
		return nil, "", err
	}

	return config, configPath, nil
}

// FindConfigFile 从指定目录向上查找 wyvern.toml
func FindConfigFile(startDir string) string {
	dir := startDir

	for {
		configPath := filepath.Join(dir, FileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到根目录
			return ""
		}
		dir = parent
	}
}

// Load 加载配置文件，未出现的键保留默认值
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	meta, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// validate 名字会原样写进汇编文本，不能为空也不能含单引号
func (c *Config) validate() error {
	names := []struct {
		key   string
		value string
	}{
		{"assembly.name", c.Assembly.Name},
		{"assembly.class", c.Assembly.Class},
		{"runtime.library", c.Runtime.Library},
		{"runtime.namespace", c.Runtime.Namespace},
		{"runtime.class", c.Runtime.Class},
	}
	for _, n := range names {
		if n.value == "" || strings.ContainsAny(n.value, "'\n") {
			return fmt.Errorf("invalid %s %q", n.key, n.value)
		}
	}
	return nil
}

// GetProjectRoot 获取项目根目录（wyvern.toml 所在目录）
func GetProjectRoot(configPath string) string {
	if configPath == "" {
		return ""
	}
	return filepath.Dir(configPath)
}

// OutputDir 返回输出目录。相对路径以项目根目录为基准，没有配置文件时以 baseDir 为基准。
func (c *Config) OutputDir(configPath, baseDir string) string {
	if filepath.IsAbs(c.Build.Output) {
		return c.Build.Output
	}
	if root := GetProjectRoot(configPath); root != "" {
		baseDir = root
	}
	return filepath.Join(baseDir, c.Build.Output)
}

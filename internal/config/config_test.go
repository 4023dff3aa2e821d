package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)
	return path
}

func TestFindAndLoadDefaults(t *testing.T) {
	cfg, path, err := FindAndLoad(t.TempDir())
	be.Err(t, err, nil)
	// 临时目录的上层可能存在配置文件，只在没找到时检查默认值
	if path == "" {
		be.Equal(t, cfg, DefaultConfig())
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `
[assembly]
name = "demo"

[build]
vm = "dotnet"

[log]
level = "debug"
journal = true
`)
	nested := filepath.Join(root, "src", "lib")
	be.Err(t, os.MkdirAll(nested, 0o755), nil)

	cfg, found, err := FindAndLoad(nested)
	be.Err(t, err, nil)
	be.Equal(t, found, path)
	be.Equal(t, cfg.Assembly.Name, "demo")
	be.Equal(t, cfg.Assembly.Class, "Wyvern")
	be.Equal(t, cfg.Runtime.Library, "wyvernlib")
	be.Equal(t, cfg.Build.VM, "dotnet")
	be.Equal(t, cfg.Build.Ilasm, "ilasm")
	be.Equal(t, cfg.Log.Level, "debug")
	be.True(t, cfg.Log.Journal)
	be.Equal(t, GetProjectRoot(found), root)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[assembly]
nmae = "typo"
`)
	_, err := Load(path)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "assembly.nmae"))
}

func TestLoadRejectsBadNames(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[runtime]
class = "Ut'ils"
`)
	_, err := Load(path)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "runtime.class"))
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[assembly\n")
	_, err := Load(path)
	be.True(t, err != nil)
}

func TestOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	be.Equal(t, cfg.OutputDir("", "/work"), filepath.Join("/work", "output"))
	be.Equal(t, cfg.OutputDir("/proj/wyvern.toml", "/work"), filepath.Join("/proj", "output"))

	cfg.Build.Output = "/abs/out"
	be.Equal(t, cfg.OutputDir("/proj/wyvern.toml", "/work"), "/abs/out")
}

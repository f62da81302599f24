package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gypsumplanner/internal/storage"
)

// TestLoadConfigDefaults 测试无配置文件时使用默认配置
func TestLoadConfigDefaults(t *testing.T) {
	cfg, info, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, storage.DefaultKey, cfg.Storage.Key)
}

// TestLoadConfigFromToml 测试 toml 覆盖默认值
func TestLoadConfigFromToml(t *testing.T) {
	dir := t.TempDir()
	content := `
[server]
port = 9000

[storage]
driver = "file"

[editor]
debounce_ms = 250

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, info, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce())
	assert.Equal(t, "debug", cfg.Log.Level)
	// 未出现的字段保持默认
	assert.Equal(t, "planner.db", cfg.Storage.SQLiteFile)
}

// TestLoadConfigEnvOverrides 测试 PLANNER_* 与 .env
func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PLANNER_STORAGE_DRIVER=memory\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("PLANNER_STORAGE_DRIVER") })
	t.Setenv("PLANNER_PORT", "7001")
	t.Setenv("PLANNER_DEBOUNCE_MS", "not-a-number")

	cfg, info, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.True(t, info.PortSpecified)
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 500, cfg.Editor.DebounceMS)
}

// TestLoadConfigInvalid 测试非法配置
func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[storage]\ndriver = \"mongo\"\n"), 0644))
	_, _, err := LoadConfigFrom(dir)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not toml ["), 0644))
	_, _, err = LoadConfigFrom(dir)
	assert.Error(t, err)
}

// TestStorageOptions 测试相对路径基于数据目录解析
func TestStorageOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "SQLite"
	opts := cfg.StorageOptions("/srv/data")

	assert.Equal(t, storage.DriverSQLite, opts.Driver)
	assert.Equal(t, filepath.Join("/srv/data", "planner.db"), opts.SQLitePath)
	assert.Equal(t, filepath.Join("/srv/data", "store"), opts.FileDir)

	cfg.Export.Dir = "/tmp/out"
	assert.Equal(t, "/tmp/out", cfg.ExportDir("/srv/data"))
}

// TestEnsureDataDir 测试创建数据目录
func TestEnsureDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")

	dir, err := EnsureDataDir(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Data.DataDir, dir)
	assert.DirExists(t, filepath.Join(dir, "exports"))
}

// TestSaveConfigRoundTrip 测试保存后可重新加载
func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Server.Port = 8123
	require.NoError(t, SaveConfig(cfg, filepath.Join(dir, FileName)))

	loaded, _, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"gypsumplanner/internal/logger"
	"gypsumplanner/internal/storage"
)

// FileName 配置文件名
const FileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Storage StorageConfig `toml:"storage"`
	Editor  EditorConfig  `toml:"editor"`
	Log     LogConfig     `toml:"log"`
	Export  ExportConfig  `toml:"export"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Driver        string `toml:"driver"`
	Key           string `toml:"key"`
	SQLiteFile    string `toml:"sqlite_file"`
	JSONDir       string `toml:"json_dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// EditorConfig 编辑器配置
type EditorConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Storage: StorageConfig{
			Driver:     string(storage.DriverSQLite),
			Key:        storage.DefaultKey,
			SQLiteFile: "planner.db",
			JSONDir:    "store",
			RedisAddr:  "localhost:6379",
		},
		Editor: EditorConfig{
			DebounceMS: 500,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Export: ExportConfig{
			Dir: "exports",
		},
	}
}

// Debounce 输入框编辑静默期
func (c *AppConfig) Debounce() time.Duration {
	return time.Duration(c.Editor.DebounceMS) * time.Millisecond
}

// LoggerOptions 日志参数
func (c *AppConfig) LoggerOptions() logger.Options {
	return logger.Options{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
}

// StorageOptions 按数据目录生成存储参数
func (c *AppConfig) StorageOptions(dataDir string) storage.Options {
	return storage.Options{
		Driver:        storage.Driver(strings.ToLower(c.Storage.Driver)),
		SQLitePath:    resolve(dataDir, c.Storage.SQLiteFile),
		FileDir:       resolve(dataDir, c.Storage.JSONDir),
		RedisAddr:     c.Storage.RedisAddr,
		RedisPassword: c.Storage.RedisPassword,
		RedisDB:       c.Storage.RedisDB,
	}
}

// ExportDir 导出目录
func (c *AppConfig) ExportDir(dataDir string) string {
	return resolve(dataDir, c.Export.Dir)
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch storage.Driver(strings.ToLower(c.Storage.Driver)) {
	case storage.DriverSQLite, storage.DriverFile, storage.DriverRedis, storage.DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage key is required")
	}
	if c.Editor.DebounceMS < 0 {
		return fmt.Errorf("invalid editor debounce: %d", c.Editor.DebounceMS)
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func baseDir() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		return "."
	}
	return exeDir
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFrom(baseDir())
}

// LoadConfigFrom 从 dir 下的 .env 与 config.toml 加载配置；环境变量 PLANNER_* 最后覆盖
func LoadConfigFrom(dir string) (*AppConfig, LoadConfigInfo, error) {
	configPath := filepath.Join(dir, FileName)
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	// .env 不存在时忽略；已存在的环境变量不会被覆盖
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	if applyEnv(config) {
		info.PortSpecified = true
	}
	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// applyEnv 用环境变量覆盖配置，返回端口是否被显式指定
func applyEnv(c *AppConfig) bool {
	portSet := false
	if v, ok := getEnvInt("PLANNER_PORT"); ok {
		c.Server.Port = v
		portSet = true
	}
	if v, ok := getEnvBool("PLANNER_DEV_MODE"); ok {
		c.Server.DevMode = v
	}
	if v, ok := getEnvBool("PLANNER_OPEN_BROWSER"); ok {
		c.Server.OpenBrowser = v
	}
	if v := os.Getenv("PLANNER_DATA_DIR"); v != "" {
		c.Data.DataDir = v
	}
	if v := os.Getenv("PLANNER_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("PLANNER_STORAGE_KEY"); v != "" {
		c.Storage.Key = v
	}
	if v := os.Getenv("PLANNER_REDIS_ADDR"); v != "" {
		c.Storage.RedisAddr = v
	}
	if v := os.Getenv("PLANNER_REDIS_PASSWORD"); v != "" {
		c.Storage.RedisPassword = v
	}
	if v, ok := getEnvInt("PLANNER_REDIS_DB"); ok {
		c.Storage.RedisDB = v
	}
	if v, ok := getEnvInt("PLANNER_DEBOUNCE_MS"); ok {
		c.Editor.DebounceMS = v
	}
	if v := os.Getenv("PLANNER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PLANNER_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("PLANNER_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return portSet
}

func getEnvInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warnf("忽略无效的环境变量 %s=%q", key, v)
		return 0, false
	}
	return n, true
}

func getEnvBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warnf("忽略无效的环境变量 %s=%q", key, v)
		return false, false
	}
	return b, true
}

// LoadConfig 从 config.toml 加载配置
// 配置文件位于可执行文件同目录下
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 path
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DataDirPath 数据目录的绝对位置；相对路径基于可执行文件目录
func DataDirPath(config *AppConfig) string {
	return resolve(baseDir(), config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及导出子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := DataDirPath(config)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(config.ExportDir(dataDir), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

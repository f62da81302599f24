// Package storage 提供单 key 的键值存储适配器：项目列表整体序列化为一个 blob 保存在固定 key 下。
package storage

import (
	"context"
	"errors"
	"fmt"
)

// DefaultKey 项目数据在存储中的固定 key
const DefaultKey = "gypsumProjectPlannerData"

// ErrNotFound key 不存在
var ErrNotFound = errors.New("storage: key not found")

// Adapter 键值存储适配器
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Driver 存储驱动名称
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverFile   Driver = "file"
	DriverRedis  Driver = "redis"
	DriverMemory Driver = "memory"
)

// Options 打开存储所需参数
type Options struct {
	Driver        Driver
	SQLitePath    string
	FileDir       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open 按驱动创建适配器
func Open(ctx context.Context, opts Options) (Adapter, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return NewSQLite(opts.SQLitePath)
	case DriverFile:
		return NewFile(opts.FileDir)
	case DriverRedis:
		return NewRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", opts.Driver)
	}
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gypsumplanner/internal/config"
	"gypsumplanner/internal/logger"
	"gypsumplanner/internal/service/project"
	"gypsumplanner/internal/storage"
)

// flag names
const (
	flagConfigDir = "config-dir"
	flagDataDir   = "data-dir"
	flagStorage   = "storage"
	flagJSON      = "json"
)

// app 命令之间共享的运行时状态
type app struct {
	configDir string
	dataDir   string
	driver    string

	cfg  *config.AppConfig
	info config.LoadConfigInfo
	now  func() time.Time
}

// NewRootCmd 构建命令树；不带子命令时等同于 serve
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	a := &app{now: now}

	root := &cobra.Command{
		Use:   "planner",
		Short: "Gypsum Project Planner",
		Long: `Gypsum Project Planner schedules trade teams (Gypsum, AC, Wiring, Plumbing)
across the areas of a construction project and shows a per-team monthly calendar.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd, serveOptions{})
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, flagConfigDir, "", "config.toml 与 .env 所在目录 (默认可执行文件目录)")
	root.PersistentFlags().StringVar(&a.dataDir, flagDataDir, "", "数据目录 (覆盖配置文件)")
	root.PersistentFlags().StringVar(&a.driver, flagStorage, "", "存储驱动 sqlite|file|redis|memory (覆盖配置文件)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newDashboardCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newProjectsCmd(a))
	return root
}

func (a *app) loadConfig() error {
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if a.configDir != "" {
		cfg, info, err = config.LoadConfigFrom(a.configDir)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 命令行参数覆盖配置
	if a.dataDir != "" {
		cfg.Data.DataDir = a.dataDir
	}
	if a.driver != "" {
		cfg.Storage.Driver = a.driver
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger.Configure(cfg.LoggerOptions())
	a.cfg = cfg
	a.info = info
	return nil
}

// openStore 打开存储并加载项目；调用方负责关闭返回的适配器
func (a *app) openStore() (storage.Adapter, *project.Store, error) {
	dataDir, err := config.EnsureDataDir(a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	adapter, err := storage.Open(context.Background(), a.cfg.StorageOptions(dataDir))
	if err != nil {
		return nil, nil, err
	}
	st := project.NewStore(adapter, project.WithKey(a.cfg.Storage.Key))
	if err := st.Load(); err != nil {
		_ = adapter.Close()
		return nil, nil, err
	}
	return adapter, st, nil
}

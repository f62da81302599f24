package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gypsumplanner/internal/logger"
	"gypsumplanner/internal/server"
	"gypsumplanner/internal/util"
)

type serveOptions struct {
	port      int
	dev       bool
	noBrowser bool
}

func newServeCmd(a *app) *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the planner web UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "开发模式")
	cmd.Flags().BoolVar(&opts.noBrowser, "no-browser", false, "不自动打开浏览器")
	return cmd
}

func (a *app) serve(cmd *cobra.Command, opts serveOptions) error {
	cfg := a.cfg
	if opts.port > 0 && !a.info.PortSpecified {
		cfg.Server.Port = opts.port
	}
	if opts.dev {
		cfg.Server.DevMode = true
	}
	if opts.noBrowser {
		cfg.Server.OpenBrowser = false
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "==========================================")
	fmt.Fprintln(out, "  Gypsum Project Planner")
	fmt.Fprintln(out, "==========================================")

	srv, err := server.NewServer(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("服务启动中，监听端口 %d ...", cfg.Server.Port)
		errCh <- srv.Run()
	}()

	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		fmt.Fprintf(out, "正在打开浏览器: %s\n", url)
		if err := util.OpenBrowser(url); err != nil {
			fmt.Fprintf(out, "无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Fprintf(out, "请访问 %s\n", url)
	}

	fmt.Fprintln(out, "\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("服务启动失败: %w", err)
		}
	case <-quit:
	}

	fmt.Fprintln(out, "\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warnf("关闭服务失败: %v", err)
	}
	if err := srv.SaveNow(); err != nil {
		logger.Errorf("退出前保存失败: %v", err)
		return err
	}
	return nil
}

package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gypsumplanner/internal/config"
	"gypsumplanner/internal/logger"
	"gypsumplanner/internal/server/handlers"
	"gypsumplanner/internal/service/editor"
	"gypsumplanner/internal/service/project"
	"gypsumplanner/internal/storage"
)

//go:embed web/templates/*.html web/static
var webFiles embed.FS

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	http    *http.Server
	adapter storage.Adapter
	store   *project.Store
	editor  *editor.Editor
	handler *handlers.Handler
}

// NewServer 按配置打开存储并创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data dir: %w", err)
	}

	adapter, err := storage.Open(context.Background(), cfg.StorageOptions(dataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	logger.WithField("driver", cfg.Storage.Driver).Infof("数据目录: %s", dataDir)

	s, err := New(adapter, Options{
		Addr:      fmt.Sprintf(":%d", cfg.Server.Port),
		Key:       cfg.Storage.Key,
		Debounce:  cfg.Debounce(),
		ExportDir: cfg.ExportDir(dataDir),
	})
	if err != nil {
		_ = adapter.Close()
		return nil, err
	}
	return s, nil
}

// Options 组装服务器所需参数
type Options struct {
	Addr      string
	Key       string
	Debounce  time.Duration
	ExportDir string
	Now       func() time.Time
}

// New 基于已打开的存储创建服务器：加载项目数据并注册路由
func New(adapter storage.Adapter, opts Options) (*Server, error) {
	var storeOpts []project.Option
	if opts.Key != "" {
		storeOpts = append(storeOpts, project.WithKey(opts.Key))
	}
	store := project.NewStore(adapter, storeOpts...)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	ed := editor.New(store, opts.Debounce)
	h := handlers.NewHandler(ed, opts.ExportDir, handlers.WithClock(opts.Now))

	// 访问日志与 panic 恢复统一走 logrus
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.L().Writer()), gin.Recovery())

	s := &Server{
		router:  router,
		http:    &http.Server{Addr: opts.Addr, Handler: router},
		adapter: adapter,
		store:   store,
		editor:  ed,
		handler: h,
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() error {
	s.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	tmpl, err := template.ParseFS(webFiles, "web/templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(webFiles, "web/static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	s.router.StaticFS("/static", http.FS(static))

	api := s.router.Group("/api")
	{
		s.handler.RegisterRoutes(api)
	}
	s.handler.RegisterPages(s.router)
	return nil
}

// Handler 根 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr 监听地址
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run 启动服务器，Shutdown 后返回 nil
func (s *Server) Run() error {
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 停止接受请求；可与 Run 并发调用
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// SaveNow 提交待提交编辑并立即持久化
func (s *Server) SaveNow() error {
	if n := s.editor.Flush(); n > 0 {
		logger.Infof("已提交 %d 个待提交编辑", n)
	}
	return s.store.Save()
}

// Close 释放存储
func (s *Server) Close() error {
	return s.adapter.Close()
}

// GetStore 获取项目存储（用于测试）
func (s *Server) GetStore() *project.Store {
	return s.store
}

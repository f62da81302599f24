package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gypsumplanner/internal/logger"
	"gypsumplanner/internal/service/editor"
	"gypsumplanner/internal/service/excel"
	"gypsumplanner/internal/service/project"
)

// Handler 规划器 API 处理器
type Handler struct {
	editor    *editor.Editor
	store     *project.Store
	exporter  *excel.Exporter
	exportDir string
	exports   *exportTickets
	now       func() time.Time
}

// Option Handler 可选项
type Option func(*Handler)

// WithClock 注入时钟（看板按当前月份生成）
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler 创建处理器
func NewHandler(ed *editor.Editor, exportDir string, opts ...Option) *Handler {
	h := &Handler{
		editor:    ed,
		store:     ed.Store(),
		exporter:  excel.NewExporter(),
		exportDir: exportDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.exports = newExportTickets(exportTTL, h.now)
	return h
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 项目
	router.GET("/projects", h.ListProjects)
	router.POST("/projects", h.CreateProject)
	router.GET("/projects/current", h.CurrentProject)
	router.PATCH("/projects/:projectId", h.RenameProject)
	router.DELETE("/projects/:projectId", h.DeleteProject)
	router.POST("/projects/:projectId/select", h.SelectProject)

	// 区域与任务（按位置）
	router.POST("/areas", h.AddArea)
	router.DELETE("/areas/:areaIndex", h.DeleteArea)
	router.POST("/areas/:areaIndex/tasks", h.AddTask)
	router.DELETE("/areas/:areaIndex/tasks/:taskIndex", h.DeleteTask)
	router.PATCH("/fields", h.UpdateField)

	// 区域与任务（按 id）
	router.POST("/area-ids/:areaId/tasks", h.AddTaskToArea)
	router.DELETE("/tasks/:taskId", h.DeleteTaskByID)

	// 输入框编辑（防抖）
	router.POST("/edits", h.SubmitEdit)
	router.POST("/edits/flush", h.FlushEdits)

	// 视图
	router.GET("/views/editor", h.EditorView)
	router.GET("/views/report", h.ReportView)
	router.GET("/views/legend", h.LegendView)
	router.GET("/views/dashboard", h.DashboardView)
	router.GET("/views/dashboard/day", h.DayDetailView)

	// 导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// statusOf 把业务错误映射为 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrAreaNotFound),
		errors.Is(err, project.ErrTaskNotFound),
		errors.Is(err, project.ErrNoActiveProject):
		return http.StatusNotFound
	case errors.Is(err, project.ErrUnknownField),
		errors.Is(err, project.ErrInvalidTeam),
		errors.Is(err, editor.ErrInvalidEdit),
		errors.Is(err, excel.ErrUnknownKind):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.WithField("path", c.FullPath()).Errorf("请求处理失败: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

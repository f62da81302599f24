package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gypsumplanner/internal/service/view"
)

// 页面模板名称
const (
	EditorTemplate    = "editor.html"
	DashboardTemplate = "dashboard.html"
)

// editorPage 编辑页模板数据；View 取 editor/report/legend
type editorPage struct {
	View   string
	Editor view.Editor
	Report view.Report
	Legend []view.LegendEntry
}

// RegisterPages 注册页面路由；调用方需先设置 HTML 模板
func (h *Handler) RegisterPages(router gin.IRoutes) {
	router.GET("/", h.EditorPage)
	router.GET("/dashboard", h.DashboardPage)
}

// EditorPage 编辑页，?view=report|legend 切换到报表或图例
// GET /
func (h *Handler) EditorPage(c *gin.Context) {
	page := editorPage{View: "editor"}
	switch c.Query("view") {
	case "report":
		page.View = "report"
		page.Report = h.currentReport()
	case "legend":
		page.View = "legend"
		page.Legend = view.Legend()
	}
	page.Editor = view.DeriveEditor(h.store.Projects(), h.store.ActiveID())
	c.HTML(http.StatusOK, EditorTemplate, page)
}

// DashboardPage 班组月历看板页
// GET /dashboard
func (h *Handler) DashboardPage(c *gin.Context) {
	d, err := h.currentDashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, DashboardTemplate, d)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gypsumplanner/internal/model"
	"gypsumplanner/internal/service/view"
)

// EditorView 编辑页视图
// GET /api/views/editor
func (h *Handler) EditorView(c *gin.Context) {
	c.JSON(http.StatusOK, view.DeriveEditor(h.store.Projects(), h.store.ActiveID()))
}

func (h *Handler) currentReport() view.Report {
	p, ok := h.store.Active()
	if !ok {
		return view.DeriveReport(nil)
	}
	return view.DeriveReport(&p)
}

// ReportView 当前项目报表
// GET /api/views/report
func (h *Handler) ReportView(c *gin.Context) {
	c.JSON(http.StatusOK, h.currentReport())
}

// LegendView 班组图例
// GET /api/views/legend
func (h *Handler) LegendView(c *gin.Context) {
	c.JSON(http.StatusOK, view.Legend())
}

// currentDashboard 看板总是读取已持久化的数据
func (h *Handler) currentDashboard() (view.Dashboard, error) {
	projects, err := h.store.ReadPersisted()
	if err != nil {
		return view.Dashboard{}, err
	}
	return view.DeriveDashboard(projects, h.now()), nil
}

// DashboardView 班组月历看板
// GET /api/views/dashboard
func (h *Handler) DashboardView(c *gin.Context) {
	d, err := h.currentDashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DayDetailView 某班组某天的任务汇总
// GET /api/views/dashboard/day?team=AC&date=2024-03-05
func (h *Handler) DayDetailView(c *gin.Context) {
	team, ok := model.ParseTeam(c.Query("team"))
	if !ok {
		badRequest(c, "未知班组")
		return
	}
	date := c.Query("date")
	if _, err := view.ParseDate(date); err != nil {
		badRequest(c, "日期格式应为 YYYY-MM-DD")
		return
	}

	projects, err := h.store.ReadPersisted()
	if err != nil {
		respondError(c, err)
		return
	}
	d, found := view.DeriveDayDetail(projects, team, date)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "当天没有任务"})
		return
	}
	c.JSON(http.StatusOK, d)
}

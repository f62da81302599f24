package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type projectNameRequest struct {
	Name string `json:"name"`
}

// ListProjects 项目列表
// GET /api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListProjects())
}

// CreateProject 新建项目并设为当前项目
// POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req projectNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	p, err := h.editor.CreateProject(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// CurrentProject 当前项目
// GET /api/projects/current
func (h *Handler) CurrentProject(c *gin.Context) {
	p, ok := h.store.Active()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "没有选中的项目"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// RenameProject 修改项目名称
// PATCH /api/projects/:projectId
func (h *Handler) RenameProject(c *gin.Context) {
	var req projectNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	if err := h.editor.RenameProject(c.Param("projectId"), req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.ListProjects())
}

// DeleteProject 删除项目
// DELETE /api/projects/:projectId
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.editor.DeleteProject(c.Param("projectId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.ListProjects())
}

// SelectProject 切换当前项目
// POST /api/projects/:projectId/select
func (h *Handler) SelectProject(c *gin.Context) {
	if err := h.editor.SelectProject(c.Param("projectId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.ListProjects())
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gypsumplanner/internal/service/editor"
	"gypsumplanner/internal/service/project"
)

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, "参数 "+name+" 必须是整数")
		return 0, false
	}
	return v, true
}

// AddArea 当前项目新增区域
// POST /api/areas
func (h *Handler) AddArea(c *gin.Context) {
	a, err := h.editor.AddArea()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// DeleteArea 按下标删除区域；越界时不做任何修改
// DELETE /api/areas/:areaIndex
func (h *Handler) DeleteArea(c *gin.Context) {
	ai, ok := intParam(c, "areaIndex")
	if !ok {
		return
	}
	applied, err := h.editor.DeleteArea(ai)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

// AddTask 按区域下标新增任务
// POST /api/areas/:areaIndex/tasks
func (h *Handler) AddTask(c *gin.Context) {
	ai, ok := intParam(c, "areaIndex")
	if !ok {
		return
	}
	task, applied, err := h.editor.AddTask(ai)
	if err != nil {
		respondError(c, err)
		return
	}
	if !applied {
		c.JSON(http.StatusOK, gin.H{"applied": false})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"applied": true, "task": task})
}

// DeleteTask 按位置删除任务；越界时不做任何修改
// DELETE /api/areas/:areaIndex/tasks/:taskIndex
func (h *Handler) DeleteTask(c *gin.Context) {
	ai, ok := intParam(c, "areaIndex")
	if !ok {
		return
	}
	ti, ok := intParam(c, "taskIndex")
	if !ok {
		return
	}
	applied, err := h.editor.DeleteTask(ai, ti)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

type updateFieldRequest struct {
	AreaIndex *int          `json:"areaIndex"`
	TaskIndex *int          `json:"taskIndex"`
	Field     project.Field `json:"field"`
	Value     string        `json:"value"`
}

// UpdateField 按位置立即修改字段；taskIndex 缺省表示修改区域名称
// PATCH /api/fields
func (h *Handler) UpdateField(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AreaIndex == nil {
		badRequest(c, "请求格式错误")
		return
	}
	ti := -1
	if req.TaskIndex != nil {
		ti = *req.TaskIndex
	}
	applied, err := h.editor.UpdateField(*req.AreaIndex, ti, req.Field, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

// AddTaskToArea 按区域 id 新增任务
// POST /api/area-ids/:areaId/tasks
func (h *Handler) AddTaskToArea(c *gin.Context) {
	task, err := h.editor.AddTaskToArea(c.Param("areaId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// DeleteTaskByID 按 id 删除任务
// DELETE /api/tasks/:taskId
func (h *Handler) DeleteTaskByID(c *gin.Context) {
	if err := h.editor.DeleteTaskByID(c.Param("taskId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitEdit 登记输入框编辑，静默期后提交
// POST /api/edits
func (h *Handler) SubmitEdit(c *gin.Context) {
	var req editor.Edit
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	if err := h.editor.Submit(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"pending": h.editor.Pending()})
}

// FlushEdits 立即提交所有待提交编辑
// POST /api/edits/flush
func (h *Handler) FlushEdits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flushed": h.editor.Flush()})
}

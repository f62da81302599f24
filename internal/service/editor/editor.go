// Package editor 响应用户编辑：结构性操作立即写入项目存储，输入框编辑经防抖后再提交
package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gypsumplanner/internal/logger"
	"gypsumplanner/internal/model"
	"gypsumplanner/internal/service/project"
)

// DefaultDebounce 输入框编辑的静默期
const DefaultDebounce = 500 * time.Millisecond

// ErrInvalidEdit 编辑请求缺少目标或字段不匹配
var ErrInvalidEdit = errors.New("invalid edit")

// Edit 一次字段编辑，按稳定 id 寻址
type Edit struct {
	AreaID string        `json:"areaId,omitempty"`
	TaskID string        `json:"taskId,omitempty"`
	Field  project.Field `json:"field"`
	Value  string        `json:"value"`
}

func (e Edit) key() string {
	if e.TaskID != "" {
		return "task:" + e.TaskID + ":" + string(e.Field)
	}
	return "area:" + e.AreaID + ":" + string(e.Field)
}

func (e Edit) validate() error {
	if e.TaskID != "" {
		if !e.Field.IsTaskField() {
			return fmt.Errorf("%w: field %q is not a task field", ErrInvalidEdit, e.Field)
		}
		if e.Field == project.FieldTeam {
			if _, ok := model.ParseTeam(e.Value); !ok {
				return fmt.Errorf("%w: %q", project.ErrInvalidTeam, e.Value)
			}
		}
		return nil
	}
	if e.AreaID == "" {
		return fmt.Errorf("%w: areaId or taskId is required", ErrInvalidEdit)
	}
	if e.Field != project.FieldAreaName {
		return fmt.Errorf("%w: field %q is not an area field", ErrInvalidEdit, e.Field)
	}
	return nil
}

// Editor 编辑器
type Editor struct {
	store    *project.Store
	debounce *debouncer
}

// New 创建编辑器；delay <= 0 时使用默认静默期
func New(store *project.Store, delay time.Duration) *Editor {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Editor{
		store:    store,
		debounce: newDebouncer(delay),
	}
}

// Store 底层项目存储
func (e *Editor) Store() *project.Store {
	return e.store
}

// Submit 登记一次输入框编辑；同一字段在静默期内的连续编辑只提交最后一次
func (e *Editor) Submit(edit Edit) error {
	if err := edit.validate(); err != nil {
		return err
	}
	e.debounce.submit(edit.key(), func() {
		if err := e.commit(edit); err != nil {
			logger.WithFields(logrus.Fields{
				"areaId": edit.AreaID,
				"taskId": edit.TaskID,
				"field":  edit.Field,
			}).Warnf("提交编辑失败: %v", err)
			return
		}
		logger.Debugf("已提交编辑 %s", edit.key())
	})
	return nil
}

// Flush 立即提交所有待提交的编辑，返回提交数量
func (e *Editor) Flush() int {
	return e.debounce.flush()
}

// Pending 待提交的编辑数量
func (e *Editor) Pending() int {
	return e.debounce.pendingCount()
}

func (e *Editor) commit(edit Edit) error {
	if edit.TaskID != "" {
		return e.store.UpdateTaskField(edit.TaskID, edit.Field, edit.Value)
	}
	return e.store.RenameArea(edit.AreaID, edit.Value)
}

// 以下结构性操作先提交待提交编辑，保证写入顺序与用户操作顺序一致

// CreateProject 新建项目
func (e *Editor) CreateProject(name string) (model.Project, error) {
	e.Flush()
	return e.store.CreateProject(name)
}

// DeleteProject 删除项目
func (e *Editor) DeleteProject(projectID string) error {
	e.Flush()
	return e.store.DeleteProject(projectID)
}

// SelectProject 切换当前项目
func (e *Editor) SelectProject(projectID string) error {
	e.Flush()
	return e.store.SetActive(projectID)
}

// RenameProject 修改项目名称
func (e *Editor) RenameProject(projectID, name string) error {
	e.Flush()
	return e.store.RenameProject(projectID, name)
}

// AddArea 新增区域
func (e *Editor) AddArea() (model.Area, error) {
	e.Flush()
	return e.store.AddArea()
}

// DeleteArea 按下标删除区域
func (e *Editor) DeleteArea(areaIndex int) (bool, error) {
	e.Flush()
	return e.store.DeleteArea(areaIndex)
}

// AddTask 按区域下标新增任务
func (e *Editor) AddTask(areaIndex int) (model.Task, bool, error) {
	e.Flush()
	return e.store.AddTask(areaIndex)
}

// AddTaskToArea 按区域 id 新增任务
func (e *Editor) AddTaskToArea(areaID string) (model.Task, error) {
	e.Flush()
	return e.store.AddTaskToArea(areaID)
}

// DeleteTask 按位置删除任务
func (e *Editor) DeleteTask(areaIndex, taskIndex int) (bool, error) {
	e.Flush()
	return e.store.DeleteTask(areaIndex, taskIndex)
}

// DeleteTaskByID 按 id 删除任务
func (e *Editor) DeleteTaskByID(taskID string) error {
	e.Flush()
	return e.store.DeleteTaskByID(taskID)
}

// UpdateField 按位置立即修改字段（不防抖）
func (e *Editor) UpdateField(areaIndex, taskIndex int, field project.Field, value string) (bool, error) {
	e.Flush()
	return e.store.UpdateField(areaIndex, taskIndex, field, value)
}

package project

import "errors"

var (
	ErrNoActiveProject = errors.New("no active project")
	ErrProjectNotFound = errors.New("project not found")
	ErrAreaNotFound    = errors.New("area not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidTeam     = errors.New("invalid team")
)

// Field 可编辑字段
type Field string

const (
	FieldAreaName  Field = "name"      // Area.name
	FieldTeam      Field = "team"      // Task.team
	FieldStartDate Field = "startDate" // Task.startDate
	FieldEndDate   Field = "endDate"   // Task.endDate
)

// IsTaskField 是否为任务字段
func (f Field) IsTaskField() bool {
	return f == FieldTeam || f == FieldStartDate || f == FieldEndDate
}

// ProjectSummary 项目概要（下拉框/列表）
type ProjectSummary struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	AreaCount int    `json:"areaCount"`
	TaskCount int    `json:"taskCount"`
}

// ProjectsIndex 项目列表及当前项目
type ProjectsIndex struct {
	ActiveProjectID string           `json:"activeProjectId"`
	Items           []ProjectSummary `json:"items"`
}

package model

import "github.com/google/uuid"

const (
	// DefaultProjectName 空存储时自动创建的项目名称
	DefaultProjectName = "My First Project"
	// DefaultAreaName 新项目自带的区域名称
	DefaultAreaName = "Default Area"
	// NewAreaName 手动新增区域的默认名称
	NewAreaName = "New Area"
)

// Project 项目
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Areas []Area `json:"areas"`
}

// Area 项目下的区域（房间/阶段），顺序即展示与报表顺序
type Area struct {
	ID    string `json:"id,omitempty"` // 旧数据可能没有 id，只能按下标寻址
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Task 区域内的施工任务；日期为 YYYY-MM-DD 或空串
type Task struct {
	ID        string `json:"id"`
	Team      Team   `json:"team"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// IDGenerator 标识生成器
type IDGenerator func() string

// NewID 默认标识生成器（UUID v4）
func NewID() string {
	return uuid.New().String()
}

// NewProject 创建带一个默认区域的项目
func NewProject(gen IDGenerator, name string) Project {
	return Project{
		ID:    gen(),
		Name:  name,
		Areas: []Area{NewArea(gen, DefaultAreaName)},
	}
}

// NewArea 创建空区域
func NewArea(gen IDGenerator, name string) Area {
	return Area{
		ID:    gen(),
		Name:  name,
		Tasks: []Task{},
	}
}

// NewTask 创建默认任务：默认班组、日期为空
func NewTask(gen IDGenerator) Task {
	return Task{
		ID:   gen(),
		Team: DefaultTeam,
	}
}

// Clone 深拷贝，避免调用方修改内部状态
func (p Project) Clone() Project {
	out := Project{ID: p.ID, Name: p.Name, Areas: make([]Area, len(p.Areas))}
	for i, a := range p.Areas {
		out.Areas[i] = a.Clone()
	}
	return out
}

// Clone 深拷贝区域
func (a Area) Clone() Area {
	tasks := make([]Task, len(a.Tasks))
	copy(tasks, a.Tasks)
	return Area{ID: a.ID, Name: a.Name, Tasks: tasks}
}

// CloneProjects 深拷贝项目列表
func CloneProjects(projects []Project) []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}

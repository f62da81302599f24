package project

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gypsumplanner/internal/logger"
	"gypsumplanner/internal/model"
	"gypsumplanner/internal/storage"
)

// Store 项目存储：持有内存中的项目列表与当前项目，每次修改后整体写回存储适配器
type Store struct {
	adapter storage.Adapter
	key     string
	newID   model.IDGenerator
	ctx     context.Context

	mu       sync.Mutex
	projects []model.Project
	activeID string
}

// Option Store 可选项
type Option func(*Store)

// WithKey 指定存储 key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator 指定标识生成器
func WithIDGenerator(gen model.IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore 创建项目存储；需调用 Load 后才有当前项目
func NewStore(adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter:  adapter,
		key:      storage.DefaultKey,
		newID:    model.NewID,
		ctx:      context.Background(),
		projects: []model.Project{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load 从存储读取项目列表；为空时创建默认项目并立即保存；缺少 id 的区域与任务补 id 后保存；最后选中第一个项目
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.readLocked()
	if err != nil {
		return err
	}
	s.projects = projects

	var saveErr error
	if len(s.projects) == 0 {
		s.projects = append(s.projects, model.NewProject(s.newID, model.DefaultProjectName))
		saveErr = s.saveLocked()
	} else if s.backfillIDsLocked() {
		saveErr = s.saveLocked()
	}
	s.activeID = s.projects[0].ID
	return saveErr
}

// backfillIDsLocked 为缺少 id 的区域与任务补 id，返回是否有改动
func (s *Store) backfillIDsLocked() bool {
	changed := false
	for pi := range s.projects {
		p := &s.projects[pi]
		for ai := range p.Areas {
			a := &p.Areas[ai]
			if a.ID == "" {
				a.ID = s.newID()
				changed = true
			}
			if a.Tasks == nil {
				a.Tasks = []model.Task{}
			}
			for ti := range a.Tasks {
				if a.Tasks[ti].ID == "" {
					a.Tasks[ti].ID = s.newID()
					changed = true
				}
			}
		}
	}
	return changed
}

// ReadPersisted 直接读取已持久化的项目列表，不影响内存状态（看板页使用）
func (s *Store) ReadPersisted() ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// readLocked 读取并解析 blob；不存在或格式错误都视为无数据
func (s *Store) readLocked() ([]model.Project, error) {
	data, err := s.adapter.Get(s.ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []model.Project{}, nil
		}
		return nil, fmt.Errorf("load projects failed: %w", err)
	}
	projects, err := decodeProjects(data)
	if err != nil {
		logger.WithField("key", s.key).Warnf("项目数据格式错误，按空数据处理: %v", err)
		return []model.Project{}, nil
	}
	return projects, nil
}

func (s *Store) saveLocked() error {
	data, err := encodeProjects(s.projects)
	if err != nil {
		return fmt.Errorf("encode projects failed: %w", err)
	}
	if err := s.adapter.Set(s.ctx, s.key, data); err != nil {
		return fmt.Errorf("save projects failed: %w", err)
	}
	return nil
}

// Save 立即写回
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// Projects 项目列表（深拷贝）
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneProjects(s.projects)
}

// ActiveID 当前项目 id
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Active 当前项目（深拷贝）
func (s *Store) Active() (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.activeLocked()
	if p == nil {
		return model.Project{}, false
	}
	return p.Clone(), true
}

// ListProjects 项目概要列表
func (s *Store) ListProjects() ProjectsIndex {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := ProjectsIndex{
		ActiveProjectID: s.activeID,
		Items:           make([]ProjectSummary, 0, len(s.projects)),
	}
	for _, p := range s.projects {
		taskCount := 0
		for _, a := range p.Areas {
			taskCount += len(a.Tasks)
		}
		idx.Items = append(idx.Items, ProjectSummary{
			ProjectID: p.ID,
			Name:      p.Name,
			Active:    p.ID == s.activeID,
			AreaCount: len(p.Areas),
			TaskCount: taskCount,
		})
	}
	return idx
}

// CreateProject 新建项目（带一个默认区域），保存并设为当前项目
func (s *Store) CreateProject(name string) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.NewProject(s.newID, name)
	s.projects = append(s.projects, p)
	s.activeID = p.ID
	return p.Clone(), s.saveLocked()
}

// DeleteProject 删除项目；若删除的是当前项目则切换到第一个项目，全部删完则重建默认项目
func (s *Store) DeleteProject(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(projectID)
	if idx < 0 {
		return ErrProjectNotFound
	}

	next := make([]model.Project, 0, len(s.projects))
	next = append(next, s.projects[:idx]...)
	next = append(next, s.projects[idx+1:]...)
	s.projects = next

	if len(s.projects) == 0 {
		p := model.NewProject(s.newID, model.DefaultProjectName)
		s.projects = append(s.projects, p)
		s.activeID = p.ID
	} else if s.activeID == projectID {
		s.activeID = s.projects[0].ID
	}
	return s.saveLocked()
}

// SetActive 切换当前项目，不修改数据
func (s *Store) SetActive(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(projectID) < 0 {
		return ErrProjectNotFound
	}
	s.activeID = projectID
	return nil
}

// RenameProject 修改项目名称
func (s *Store) RenameProject(projectID string, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(projectID)
	if idx < 0 {
		return ErrProjectNotFound
	}
	s.projects[idx].Name = name
	return s.saveLocked()
}

// AddArea 在当前项目末尾追加空区域
func (s *Store) AddArea() (model.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.activeLocked()
	if p == nil {
		return model.Area{}, ErrNoActiveProject
	}
	area := model.NewArea(s.newID, model.NewAreaName)
	p.Areas = append(p.Areas, area)
	return area.Clone(), s.saveLocked()
}

// DeleteArea 删除当前项目中指定下标的区域；下标越界时不做任何事
func (s *Store) DeleteArea(areaIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.activeLocked()
	if p == nil || areaIndex < 0 || areaIndex >= len(p.Areas) {
		return false, nil
	}
	areas := make([]model.Area, 0, len(p.Areas)-1)
	areas = append(areas, p.Areas[:areaIndex]...)
	areas = append(areas, p.Areas[areaIndex+1:]...)
	p.Areas = areas
	return true, s.saveLocked()
}

// AddTask 在当前项目指定区域末尾追加默认任务；区域不存在时不做任何事
func (s *Store) AddTask(areaIndex int) (model.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	area := s.areaLocked(areaIndex)
	if area == nil {
		return model.Task{}, false, nil
	}
	task := model.NewTask(s.newID)
	area.Tasks = append(area.Tasks, task)
	return task, true, s.saveLocked()
}

// DeleteTask 删除指定位置的任务；位置不存在时不做任何事
func (s *Store) DeleteTask(areaIndex, taskIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	area := s.areaLocked(areaIndex)
	if area == nil || taskIndex < 0 || taskIndex >= len(area.Tasks) {
		return false, nil
	}
	removeTask(area, taskIndex)
	return true, s.saveLocked()
}

// UpdateField 修改区域名称（taskIndex < 0）或任务的 team/startDate/endDate；位置不存在时不做任何事
func (s *Store) UpdateField(areaIndex, taskIndex int, field Field, value string) (bool, error) {
	if err := validateField(taskIndex >= 0, field, value); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	area := s.areaLocked(areaIndex)
	if area == nil {
		return false, nil
	}
	if taskIndex < 0 {
		area.Name = value
		return true, s.saveLocked()
	}
	if taskIndex >= len(area.Tasks) {
		return false, nil
	}
	setTaskField(&area.Tasks[taskIndex], field, value)
	return true, s.saveLocked()
}

// AddTaskToArea 按区域 id 追加任务
func (s *Store) AddTaskToArea(areaID string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	area := s.areaByIDLocked(areaID)
	if area == nil {
		return model.Task{}, ErrAreaNotFound
	}
	task := model.NewTask(s.newID)
	area.Tasks = append(area.Tasks, task)
	return task, s.saveLocked()
}

// RenameArea 按区域 id 修改名称
func (s *Store) RenameArea(areaID string, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	area := s.areaByIDLocked(areaID)
	if area == nil {
		return ErrAreaNotFound
	}
	area.Name = name
	return s.saveLocked()
}

// UpdateTaskField 按任务 id 修改字段
func (s *Store) UpdateTaskField(taskID string, field Field, value string) error {
	if err := validateField(true, field, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	area, taskIndex := s.taskByIDLocked(taskID)
	if area == nil {
		return ErrTaskNotFound
	}
	setTaskField(&area.Tasks[taskIndex], field, value)
	return s.saveLocked()
}

// DeleteTaskByID 按任务 id 删除
func (s *Store) DeleteTaskByID(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	area, taskIndex := s.taskByIDLocked(taskID)
	if area == nil {
		return ErrTaskNotFound
	}
	removeTask(area, taskIndex)
	return s.saveLocked()
}

func validateField(isTask bool, field Field, value string) error {
	if !isTask {
		if field != FieldAreaName {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		return nil
	}
	if !field.IsTaskField() {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if field == FieldTeam {
		if _, ok := model.ParseTeam(value); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidTeam, value)
		}
	}
	return nil
}

func setTaskField(task *model.Task, field Field, value string) {
	switch field {
	case FieldTeam:
		task.Team = model.Team(value)
	case FieldStartDate:
		task.StartDate = value
	case FieldEndDate:
		task.EndDate = value
	}
}

func removeTask(area *model.Area, taskIndex int) {
	tasks := make([]model.Task, 0, len(area.Tasks)-1)
	tasks = append(tasks, area.Tasks[:taskIndex]...)
	tasks = append(tasks, area.Tasks[taskIndex+1:]...)
	area.Tasks = tasks
}

func (s *Store) indexLocked(projectID string) int {
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			return i
		}
	}
	return -1
}

func (s *Store) activeLocked() *model.Project {
	if idx := s.indexLocked(s.activeID); idx >= 0 {
		return &s.projects[idx]
	}
	return nil
}

func (s *Store) areaLocked(areaIndex int) *model.Area {
	p := s.activeLocked()
	if p == nil || areaIndex < 0 || areaIndex >= len(p.Areas) {
		return nil
	}
	return &p.Areas[areaIndex]
}

func (s *Store) areaByIDLocked(areaID string) *model.Area {
	p := s.activeLocked()
	if p == nil || areaID == "" {
		return nil
	}
	for i := range p.Areas {
		if p.Areas[i].ID == areaID {
			return &p.Areas[i]
		}
	}
	return nil
}

func (s *Store) taskByIDLocked(taskID string) (*model.Area, int) {
	p := s.activeLocked()
	if p == nil || taskID == "" {
		return nil, -1
	}
	for i := range p.Areas {
		for j := range p.Areas[i].Tasks {
			if p.Areas[i].Tasks[j].ID == taskID {
				return &p.Areas[i], j
			}
		}
	}
	return nil, -1
}

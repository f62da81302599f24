package view

import "gypsumplanner/internal/model"

// ProjectOption 项目下拉框选项
type ProjectOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// TeamOption 班组下拉框选项
type TeamOption struct {
	Value    model.Team `json:"value"`
	Selected bool       `json:"selected"`
}

// EditorTask 编辑页任务行
type EditorTask struct {
	Index       int          `json:"index"`
	ID          string       `json:"id"`
	Team        model.Team   `json:"team"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	TeamOptions []TeamOption `json:"teamOptions"`
}

// EditorArea 编辑页区域块
type EditorArea struct {
	Index int          `json:"index"`
	ID    string       `json:"id,omitempty"`
	Name  string       `json:"name"`
	Tasks []EditorTask `json:"tasks"`
}

// Editor 编辑页视图
type Editor struct {
	ActiveProjectID string          `json:"activeProjectId"`
	Projects        []ProjectOption `json:"projects"`
	Areas           []EditorArea    `json:"areas"`
}

// DeriveEditor 生成编辑页视图；activeID 找不到时区域为空
func DeriveEditor(projects []model.Project, activeID string) Editor {
	v := Editor{
		ActiveProjectID: activeID,
		Projects:        make([]ProjectOption, 0, len(projects)),
		Areas:           []EditorArea{},
	}
	for _, p := range projects {
		v.Projects = append(v.Projects, ProjectOption{ID: p.ID, Name: p.Name, Selected: p.ID == activeID})
		if p.ID != activeID {
			continue
		}
		for ai, a := range p.Areas {
			ea := EditorArea{Index: ai, ID: a.ID, Name: a.Name, Tasks: make([]EditorTask, 0, len(a.Tasks))}
			for ti, t := range a.Tasks {
				ea.Tasks = append(ea.Tasks, EditorTask{
					Index:       ti,
					ID:          t.ID,
					Team:        t.Team,
					StartDate:   t.StartDate,
					EndDate:     t.EndDate,
					TeamOptions: teamOptions(t.Team),
				})
			}
			v.Areas = append(v.Areas, ea)
		}
	}
	return v
}

func teamOptions(selected model.Team) []TeamOption {
	teams := model.AllTeams()
	out := make([]TeamOption, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamOption{Value: t, Selected: t == selected})
	}
	return out
}

// Package view 把项目数据映射为页面所需的视图模型（纯函数，无副作用）
package view

import "gypsumplanner/internal/model"

// NoTasksText 区域没有任务时的提示
const NoTasksText = "No tasks for this area."

// NoProjectText 没有选中项目时的提示
const NoProjectText = "No project selected."

// ReportRow 报表中的一行任务
type ReportRow struct {
	Team      model.Team `json:"team"`
	TeamClass string     `json:"teamClass"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
}

// ReportArea 报表中的一个区域
type ReportArea struct {
	Name  string      `json:"name"`
	Empty bool        `json:"empty"`
	Rows  []ReportRow `json:"rows"`
}

// Report 报表视图
type Report struct {
	NoProject   bool         `json:"noProject"`
	ProjectID   string       `json:"projectId,omitempty"`
	ProjectName string       `json:"projectName,omitempty"`
	Areas       []ReportArea `json:"areas"`
}

// DeriveReport 按区域顺序列出任务（保持原任务顺序）；空区域标记 Empty
func DeriveReport(p *model.Project) Report {
	if p == nil {
		return Report{NoProject: true, Areas: []ReportArea{}}
	}

	r := Report{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		Areas:       make([]ReportArea, 0, len(p.Areas)),
	}
	for _, a := range p.Areas {
		ra := ReportArea{
			Name:  a.Name,
			Empty: len(a.Tasks) == 0,
			Rows:  make([]ReportRow, 0, len(a.Tasks)),
		}
		for _, t := range a.Tasks {
			ra.Rows = append(ra.Rows, ReportRow{
				Team:      t.Team,
				TeamClass: t.Team.ColorClass(),
				StartDate: t.StartDate,
				EndDate:   t.EndDate,
			})
		}
		r.Areas = append(r.Areas, ra)
	}
	return r
}

package view

import "gypsumplanner/internal/model"

// LegendEntry 图例项
type LegendEntry struct {
	Team       model.Team `json:"team"`
	ColorClass string     `json:"colorClass"`
	Label      string     `json:"label"`
}

// Legend 固定图例，与项目数据无关
func Legend() []LegendEntry {
	teams := model.AllTeams()
	out := make([]LegendEntry, 0, len(teams))
	for _, t := range teams {
		out = append(out, LegendEntry{
			Team:       t,
			ColorClass: t.ColorClass(),
			Label:      t.Label(),
		})
	}
	return out
}

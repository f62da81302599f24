package model

import "strings"

// Team 施工班组
type Team string

const (
	TeamGypsum   Team = "Gypsum"   // 石膏板
	TeamAC       Team = "AC"       // 空调
	TeamWiring   Team = "Wiring"   // 电气布线
	TeamPlumbing Team = "Plumbing" // 水管
)

// DefaultTeam 新任务默认班组
const DefaultTeam = TeamGypsum

// AllTeams 班组枚举（顺序即下拉框与图例顺序）
func AllTeams() []Team {
	return []Team{TeamGypsum, TeamAC, TeamWiring, TeamPlumbing}
}

// ParseTeam 解析班组名称，仅接受枚举内的值（区分大小写）
func ParseTeam(value string) (Team, bool) {
	for _, t := range AllTeams() {
		if string(t) == value {
			return t, true
		}
	}
	return "", false
}

// Valid 是否为枚举内的班组
func (t Team) Valid() bool {
	_, ok := ParseTeam(string(t))
	return ok
}

// ColorClass 班组对应的颜色样式类，如 team-gypsum
func (t Team) ColorClass() string {
	if t == "" {
		return ""
	}
	return "team-" + strings.ToLower(string(t))
}

// Label 图例/日历标题中展示的名称
func (t Team) Label() string {
	return string(t) + " Team"
}

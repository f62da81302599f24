package view

import (
	"fmt"
	"strings"
	"time"

	"gypsumplanner/internal/model"
)

const (
	// NoCalendarTasksText 没有任何带班组任务时的提示
	NoCalendarTasksText = "No tasks found to display."
	// UnknownProject 任务找不到所属项目时的占位名称
	UnknownProject = "Unknown Project"
	// UnknownArea 任务找不到所属区域时的占位名称
	UnknownArea = "Unknown Area"

	dateLayout = "2006-01-02"
)

// WeekdayHeaders 日历表头，周日为第一列
var WeekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayCell 日历格子；Blank 为月初前的占位格
type DayCell struct {
	Blank   bool     `json:"blank"`
	Day     int      `json:"day,omitempty"`
	Date    string   `json:"date,omitempty"`
	HasTask bool     `json:"hasTask"`
	Today   bool     `json:"today"`
	TaskIDs []string `json:"taskIds,omitempty"`
	Class   string   `json:"class,omitempty"`
}

// TeamCalendar 单个班组的月历
type TeamCalendar struct {
	Team       model.Team `json:"team"`
	Title      string     `json:"title"`
	MonthLabel string     `json:"monthLabel"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	Weekdays   []string   `json:"weekdays"`
	Cells      []DayCell  `json:"cells"`
}

// Days 只返回日期格（不含占位格）
func (c TeamCalendar) Days() []DayCell {
	out := make([]DayCell, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Blank {
			out = append(out, cell)
		}
	}
	return out
}

// Dashboard 看板视图：每个出现过的班组一张本月日历
type Dashboard struct {
	Empty     bool           `json:"empty"`
	Message   string         `json:"message,omitempty"`
	Calendars []TeamCalendar `json:"calendars"`
}

// AllTasks 按项目/区域/任务顺序展开全部任务
func AllTasks(projects []model.Project) []model.Task {
	var out []model.Task
	for _, p := range projects {
		for _, a := range p.Areas {
			out = append(out, a.Tasks...)
		}
	}
	return out
}

// DistinctTeams 任务中实际出现的班组，按首次出现顺序，忽略空值
func DistinctTeams(tasks []model.Task) []model.Team {
	seen := make(map[model.Team]bool)
	var out []model.Team
	for _, t := range tasks {
		if t.Team == "" || seen[t.Team] {
			continue
		}
		seen[t.Team] = true
		out = append(out, t.Team)
	}
	return out
}

// TaskCoversDate 任务日期区间 [start, end] 是否包含 date（YYYY-MM-DD 字符串比较，两端闭区间）。
// 开始或结束日期为空的任务不匹配任何日期。
func TaskCoversDate(t model.Task, date string) bool {
	if t.StartDate == "" || t.EndDate == "" {
		return false
	}
	return t.StartDate <= date && date <= t.EndDate
}

// TasksOnDay 指定班组在某天的任务
func TasksOnDay(tasks []model.Task, team model.Team, date string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Team == team && TaskCoversDate(t, date) {
			out = append(out, t)
		}
	}
	return out
}

// MonthLabel 月份标题，如 March 2024
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

// BuildMonth 生成某班组某月的日历：7 列，月初前补周几个占位格
func BuildMonth(team model.Team, year int, month time.Month, tasks []model.Task, today time.Time) TeamCalendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// 下个月第 0 天即本月最后一天
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	leading := int(first.Weekday())
	todayStr := today.Format(dateLayout)

	cal := TeamCalendar{
		Team:       team,
		Title:      team.Label(),
		MonthLabel: MonthLabel(year, month),
		Year:       year,
		Month:      int(month),
		Weekdays:   WeekdayHeaders,
		Cells:      make([]DayCell, 0, leading+daysInMonth),
	}
	for i := 0; i < leading; i++ {
		cal.Cells = append(cal.Cells, DayCell{Blank: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		matched := TasksOnDay(tasks, team, date)

		cell := DayCell{
			Day:     day,
			Date:    date,
			HasTask: len(matched) > 0,
			Today:   date == todayStr,
		}
		for _, t := range matched {
			cell.TaskIDs = append(cell.TaskIDs, t.ID)
		}
		cell.Class = dayClass(team, cell)
		cal.Cells = append(cal.Cells, cell)
	}
	return cal
}

func dayClass(team model.Team, cell DayCell) string {
	classes := []string{"day"}
	if cell.HasTask {
		classes = append(classes, "has-task", team.ColorClass())
	}
	if cell.Today {
		classes = append(classes, "today")
	}
	return strings.Join(classes, " ")
}

// DeriveDashboard 按 now 所在月份为每个出现过的班组生成日历
func DeriveDashboard(projects []model.Project, now time.Time) Dashboard {
	return DeriveDashboardFor(projects, now.Year(), now.Month(), now)
}

// DeriveDashboardFor 生成指定月份的班组日历；today 只用于标记当天格子
func DeriveDashboardFor(projects []model.Project, year int, month time.Month, today time.Time) Dashboard {
	tasks := AllTasks(projects)
	teams := DistinctTeams(tasks)
	if len(teams) == 0 {
		return Dashboard{Empty: true, Message: NoCalendarTasksText, Calendars: []TeamCalendar{}}
	}

	d := Dashboard{Calendars: make([]TeamCalendar, 0, len(teams))}
	for _, team := range teams {
		d.Calendars = append(d.Calendars, BuildMonth(team, year, month, tasks, today))
	}
	return d
}

// DetailEntry 某天某任务的详情
type DetailEntry struct {
	TaskID      string     `json:"taskId"`
	ProjectName string     `json:"projectName"`
	AreaName    string     `json:"areaName"`
	Team        model.Team `json:"team"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
}

// DayDetail 点击日历格子时展示的汇总
type DayDetail struct {
	Team    model.Team    `json:"team"`
	Date    string        `json:"date"`
	Entries []DetailEntry `json:"entries"`
	Text    string        `json:"text"`
}

// DeriveDayDetail 汇总某班组某天的任务；当天没有任务时 ok 为 false
func DeriveDayDetail(projects []model.Project, team model.Team, date string) (DayDetail, bool) {
	matched := TasksOnDay(AllTasks(projects), team, date)
	if len(matched) == 0 {
		return DayDetail{}, false
	}

	d := DayDetail{Team: team, Date: date, Entries: make([]DetailEntry, 0, len(matched))}
	blocks := make([]string, 0, len(matched))
	for _, t := range matched {
		projectName, areaName := locateTask(projects, t.ID)
		e := DetailEntry{
			TaskID:      t.ID,
			ProjectName: projectName,
			AreaName:    areaName,
			Team:        t.Team,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
		}
		d.Entries = append(d.Entries, e)
		blocks = append(blocks, fmt.Sprintf("Project: %s\nArea: %s\nTeam: %s\nStart: %s\nEnd: %s",
			e.ProjectName, e.AreaName, e.Team, e.StartDate, e.EndDate))
	}
	d.Text = fmt.Sprintf("Tasks for %s on %s:\n\n%s", team, date, strings.Join(blocks, "\n\n"))
	return d, true
}

// locateTask 线性查找任务所属的项目与区域名称
func locateTask(projects []model.Project, taskID string) (string, string) {
	for _, p := range projects {
		for _, a := range p.Areas {
			for _, t := range a.Tasks {
				if t.ID == taskID {
					return p.Name, a.Name
				}
			}
		}
	}
	return UnknownProject, UnknownArea
}

// ParseDate 校验 YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

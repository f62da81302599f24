package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gypsumplanner/internal/model"
)

func daysWithTask(cal TeamCalendar) []int {
	var out []int
	for _, c := range cal.Days() {
		if c.HasTask {
			out = append(out, c.Day)
		}
	}
	return out
}

func TestCalendarContainment(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Team: model.TeamAC, StartDate: "2024-03-05", EndDate: "2024-03-08"},
	}
	now := time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)

	cal := BuildMonth(model.TeamAC, 2024, time.March, tasks, now)

	var marked []int
	for _, c := range cal.Days()[:10] {
		if c.HasTask {
			marked = append(marked, c.Day)
		}
	}
	assert.Equal(t, []int{5, 6, 7, 8}, marked)
	assert.Equal(t, []string{"t1"}, cal.Days()[4].TaskIDs)
	assert.Equal(t, "day has-task team-ac", cal.Days()[4].Class)
}

func TestCalendarOtherTeamNotMarked(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Team: model.TeamAC, StartDate: "2024-03-05", EndDate: "2024-03-08"},
	}
	cal := BuildMonth(model.TeamWiring, 2024, time.March, tasks, time.Time{})
	assert.Empty(t, daysWithTask(cal))
}

func TestCalendarEmptyDatesMatchNothing(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Team: model.TeamAC, StartDate: "", EndDate: "2024-03-08"},
		{ID: "t2", Team: model.TeamAC, StartDate: "2024-03-01", EndDate: ""},
		{ID: "t3", Team: model.TeamAC},
	}
	cal := BuildMonth(model.TeamAC, 2024, time.March, tasks, time.Time{})
	assert.Empty(t, daysWithTask(cal))
}

func TestCalendarReversedRangeMatchesNothing(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Team: model.TeamAC, StartDate: "2024-03-08", EndDate: "2024-03-05"},
	}
	cal := BuildMonth(model.TeamAC, 2024, time.March, tasks, time.Time{})
	assert.Empty(t, daysWithTask(cal))
}

func TestCalendarRangeSpanningMonths(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Team: model.TeamGypsum, StartDate: "2024-02-27", EndDate: "2024-03-02"},
	}
	cal := BuildMonth(model.TeamGypsum, 2024, time.March, tasks, time.Time{})
	assert.Equal(t, []int{1, 2}, daysWithTask(cal))
}

func TestCalendarGridLayout(t *testing.T) {
	// 2024-03-01 是周五
	cal := BuildMonth(model.TeamAC, 2024, time.March, nil, time.Time{})
	require.Len(t, cal.Cells, 5+31)
	for i := 0; i < 5; i++ {
		assert.True(t, cal.Cells[i].Blank)
	}
	assert.Equal(t, 1, cal.Cells[5].Day)
	assert.Equal(t, "2024-03-01", cal.Cells[5].Date)
	assert.Equal(t, "March 2024", cal.MonthLabel)
	assert.Equal(t, "AC Team", cal.Title)
	assert.Equal(t, WeekdayHeaders, cal.Weekdays)

	// 闰年二月 29 天，2024-02-01 是周四
	feb := BuildMonth(model.TeamAC, 2024, time.February, nil, time.Time{})
	assert.Len(t, feb.Days(), 29)
	assert.Len(t, feb.Cells, 4+29)

	// 2023-10-01 是周日，没有占位格
	oct := BuildMonth(model.TeamAC, 2023, time.October, nil, time.Time{})
	assert.False(t, oct.Cells[0].Blank)
	assert.Len(t, oct.Cells, 31)

	// 十二月跨年计算天数
	dec := BuildMonth(model.TeamAC, 2023, time.December, nil, time.Time{})
	assert.Len(t, dec.Days(), 31)
}

func TestCalendarToday(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Team: model.TeamAC, StartDate: "2024-03-10", EndDate: "2024-03-10"},
	}
	now := time.Date(2024, time.March, 10, 23, 30, 0, 0, time.UTC)
	cal := BuildMonth(model.TeamAC, 2024, time.March, tasks, now)

	var today []int
	for _, c := range cal.Days() {
		if c.Today {
			today = append(today, c.Day)
		}
	}
	assert.Equal(t, []int{10}, today)
	assert.Equal(t, "day has-task team-ac today", cal.Days()[9].Class)
	assert.Equal(t, "day", cal.Days()[10].Class)
}

func TestDistinctTeams(t *testing.T) {
	tasks := []model.Task{
		{Team: model.TeamAC},
		{Team: model.TeamAC},
		{Team: model.TeamWiring},
		{Team: ""},
	}
	assert.Equal(t, []model.Team{model.TeamAC, model.TeamWiring}, DistinctTeams(tasks))
	assert.Empty(t, DistinctTeams(nil))
}

func TestDeriveDashboard(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", Name: "Kitchen", Areas: []model.Area{
			{Name: "Walls", Tasks: []model.Task{
				{ID: "t1", Team: model.TeamWiring, StartDate: "2024-03-01", EndDate: "2024-03-03"},
			}},
		}},
		{ID: "p2", Name: "Bath", Areas: []model.Area{
			{Name: "Floor", Tasks: []model.Task{
				{ID: "t2", Team: model.TeamAC, StartDate: "2024-03-02", EndDate: "2024-03-02"},
				{ID: "t3", Team: model.TeamWiring, StartDate: "2024-04-01", EndDate: "2024-04-02"},
			}},
		}},
	}
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	d := DeriveDashboard(projects, now)

	assert.False(t, d.Empty)
	require.Len(t, d.Calendars, 2)
	assert.Equal(t, model.TeamWiring, d.Calendars[0].Team)
	assert.Equal(t, model.TeamAC, d.Calendars[1].Team)
	assert.Equal(t, 2024, d.Calendars[0].Year)
	assert.Equal(t, 3, d.Calendars[0].Month)
	assert.Equal(t, []int{1, 2, 3}, daysWithTask(d.Calendars[0]))
	assert.Equal(t, []int{2}, daysWithTask(d.Calendars[1]))
}

func TestDeriveDashboardEmpty(t *testing.T) {
	projects := []model.Project{{ID: "p1", Name: "x", Areas: []model.Area{{Name: "a", Tasks: []model.Task{{ID: "t", Team: ""}}}}}}
	d := DeriveDashboard(projects, time.Now())
	assert.True(t, d.Empty)
	assert.Equal(t, NoCalendarTasksText, d.Message)
	assert.Empty(t, d.Calendars)
}

func TestDeriveDashboardForOtherMonth(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", Name: "Kitchen", Areas: []model.Area{
			{Name: "Walls", Tasks: []model.Task{
				{ID: "t1", Team: model.TeamGypsum, StartDate: "2024-03-01", EndDate: "2024-03-02"},
			}},
		}},
	}
	today := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)

	d := DeriveDashboardFor(projects, 2024, time.March, today)
	require.Len(t, d.Calendars, 1)
	assert.Equal(t, 2024, d.Calendars[0].Year)
	assert.Equal(t, 3, d.Calendars[0].Month)
	assert.Equal(t, []int{1, 2}, daysWithTask(d.Calendars[0]))
	for _, c := range d.Calendars[0].Days() {
		assert.False(t, c.Today, "day %d", c.Day)
	}

	d = DeriveDashboardFor(projects, 2026, time.October, today)
	var marked []int
	for _, c := range d.Calendars[0].Days() {
		if c.Today {
			marked = append(marked, c.Day)
		}
	}
	assert.Equal(t, []int{19}, marked)
}

func TestDeriveDayDetail(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", Name: "Kitchen", Areas: []model.Area{
			{Name: "Walls", Tasks: []model.Task{
				{ID: "t1", Team: model.TeamAC, StartDate: "2024-03-05", EndDate: "2024-03-08"},
			}},
			{Name: "Ceiling", Tasks: []model.Task{
				{ID: "t2", Team: model.TeamAC, StartDate: "2024-03-06", EndDate: "2024-03-06"},
			}},
		}},
	}

	d, ok := DeriveDayDetail(projects, model.TeamAC, "2024-03-06")
	require.True(t, ok)
	require.Len(t, d.Entries, 2)
	assert.Equal(t, "Ceiling", d.Entries[1].AreaName)
	assert.Equal(t,
		"Tasks for AC on 2024-03-06:\n\n"+
			"Project: Kitchen\nArea: Walls\nTeam: AC\nStart: 2024-03-05\nEnd: 2024-03-08\n\n"+
			"Project: Kitchen\nArea: Ceiling\nTeam: AC\nStart: 2024-03-06\nEnd: 2024-03-06",
		d.Text)

	_, ok = DeriveDayDetail(projects, model.TeamAC, "2024-03-09")
	assert.False(t, ok)
}

func TestDeriveDayDetailDoesNotMutate(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", Name: "Kitchen", Areas: []model.Area{
			{Name: "Walls", Tasks: []model.Task{{ID: "t1", Team: model.TeamAC, StartDate: "2024-03-05", EndDate: "2024-03-08"}}},
		}},
	}
	before := model.CloneProjects(projects)
	_, _ = DeriveDayDetail(projects, model.TeamAC, "2024-03-05")
	assert.Equal(t, before, projects)
}

func TestLocateTaskUnknown(t *testing.T) {
	p, a := locateTask(nil, "missing")
	assert.Equal(t, UnknownProject, p)
	assert.Equal(t, UnknownArea, a)
}

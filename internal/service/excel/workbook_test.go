package excel_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gypsumplanner/internal/model"
	"gypsumplanner/internal/service/excel"
	"gypsumplanner/internal/service/view"
)

func kitchen() model.Project {
	return model.Project{
		ID:   "p1",
		Name: "Kitchen",
		Areas: []model.Area{
			{Name: "Default Area", Tasks: []model.Task{}},
			{Name: "New Area", Tasks: []model.Task{
				{ID: "t1", Team: model.TeamPlumbing, StartDate: "2024-06-01", EndDate: "2024-06-05"},
			}},
		},
	}
}

func TestExportReport(t *testing.T) {
	p := kitchen()
	wb, err := excel.NewExporter().ExportReport(view.DeriveReport(&p))
	require.NoError(t, err)

	assert.Equal(t, []string{"Report", "Legend"}, wb.GetSheetList())

	rows, err := wb.GetRows("Report")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 8)
	assert.Equal(t, "Kitchen", rows[0][0])
	assert.Equal(t, "Default Area", rows[2][0])
	assert.Equal(t, view.NoTasksText, rows[3][0])
	assert.Equal(t, "New Area", rows[5][0])
	assert.Equal(t, []string{"Team", "Start Date", "End Date"}, rows[6])
	assert.Equal(t, []string{"Plumbing", "2024-06-01", "2024-06-05"}, rows[7])

	legend, err := wb.GetRows("Legend")
	require.NoError(t, err)
	require.Len(t, legend, 5)
	assert.Equal(t, "Gypsum Team", legend[1][0])
	assert.Equal(t, "Plumbing Team", legend[4][0])
}

func TestExportReportNoProject(t *testing.T) {
	wb, err := excel.NewExporter().ExportReport(view.DeriveReport(nil))
	require.NoError(t, err)

	v, err := wb.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, view.NoProjectText, v)
}

func TestExportDashboard(t *testing.T) {
	projects := []model.Project{{ID: "p1", Name: "Kitchen", Areas: []model.Area{{Name: "Walls", Tasks: []model.Task{
		{ID: "t1", Team: model.TeamAC, StartDate: "2024-03-05", EndDate: "2024-03-08"},
		{ID: "t2", Team: model.TeamWiring, StartDate: "2024-03-01", EndDate: "2024-03-01"},
	}}}}}
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

	wb, err := excel.NewExporter().ExportDashboard(view.DeriveDashboard(projects, now))
	require.NoError(t, err)
	assert.Equal(t, []string{"AC", "Wiring"}, wb.GetSheetList())

	title, _ := wb.GetCellValue("AC", "A1")
	assert.Equal(t, "AC Team", title)
	month, _ := wb.GetCellValue("AC", "A2")
	assert.Equal(t, "March 2024", month)

	// 2024-03-01 是周五：第一行 F5 为 1 号
	first, _ := wb.GetCellValue("AC", "F5")
	assert.Equal(t, "1", first)
	// 5 号落在第二行周二
	fifth, _ := wb.GetCellValue("AC", "C6")
	assert.Equal(t, "5", fifth)

	markedStyle, err := wb.GetCellStyle("AC", "C6")
	require.NoError(t, err)
	plainStyle, err := wb.GetCellStyle("AC", "B6")
	require.NoError(t, err)
	assert.NotEqual(t, plainStyle, markedStyle)
}

func TestExportDashboardEmpty(t *testing.T) {
	wb, err := excel.NewExporter().ExportDashboard(view.DeriveDashboard(nil, time.Now()))
	require.NoError(t, err)
	v, _ := wb.GetCellValue("Dashboard", "A1")
	assert.Equal(t, view.NoCalendarTasksText, v)
}

func TestNormalizeFileName(t *testing.T) {
	assert.Equal(t, "project-planner.xlsx", excel.NormalizeFileName("", excel.DefaultReportFileName))
	assert.Equal(t, "plan.xlsx", excel.NormalizeFileName("plan", excel.DefaultReportFileName))
	assert.Equal(t, "plan.XLSX", excel.NormalizeFileName("plan.XLSX", excel.DefaultReportFileName))
	assert.Equal(t, "a_b.xlsx", excel.NormalizeFileName("a/b", excel.DefaultReportFileName))
}

func TestParseKind(t *testing.T) {
	k, err := excel.ParseKind("Dashboard")
	require.NoError(t, err)
	assert.Equal(t, excel.KindDashboard, k)
	assert.Equal(t, excel.DefaultDashboardFileName, k.DefaultFileName())

	k, err = excel.ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, excel.KindReport, k)

	_, err = excel.ParseKind("png")
	assert.ErrorIs(t, err, excel.ErrUnknownKind)
}

func TestSaveAs(t *testing.T) {
	p := kitchen()
	wb, err := excel.NewExporter().ExportReport(view.DeriveReport(&p))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := excel.SaveAs(wb, dir, excel.DefaultReportFileName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "project-planner.xlsx"), path)

	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, _ := reopened.GetCellValue("Report", "A1")
	assert.Equal(t, "Kitchen", v)
}

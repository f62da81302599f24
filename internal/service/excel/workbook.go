// Package excel 把报表视图与看板视图导出为 xlsx 工作簿
package excel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"gypsumplanner/internal/model"
	"gypsumplanner/internal/service/view"
)

// Kind 导出的视图类型
type Kind string

const (
	KindReport    Kind = "report"
	KindDashboard Kind = "dashboard"
)

const (
	// DefaultReportFileName 报表默认文件名
	DefaultReportFileName = "project-planner.xlsx"
	// DefaultDashboardFileName 看板默认文件名
	DefaultDashboardFileName = "team-dashboard.xlsx"

	reportSheet = "Report"
	legendSheet = "Legend"
)

// ErrUnknownKind 未知的导出类型
var ErrUnknownKind = errors.New("unknown export kind")

// ParseKind 解析导出类型
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindReport, "":
		return KindReport, nil
	case KindDashboard:
		return KindDashboard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
}

// DefaultFileName 导出类型对应的默认文件名
func (k Kind) DefaultFileName() string {
	if k == KindDashboard {
		return DefaultDashboardFileName
	}
	return DefaultReportFileName
}

// 与页面样式表中 team-* 颜色保持一致
var teamColors = map[model.Team]string{
	model.TeamGypsum:   "#D9D9D9",
	model.TeamAC:       "#9FC5E8",
	model.TeamWiring:   "#FFE599",
	model.TeamPlumbing: "#B6D7A8",
}

// TeamColor 班组对应的填充色
func TeamColor(t model.Team) string {
	if c, ok := teamColors[t]; ok {
		return c
	}
	return "#FFFFFF"
}

// Exporter 工作簿导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

type styles struct {
	title  int
	header int
	muted  int
	teams  map[model.Team]int
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{teams: make(map[model.Team]int)}
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.muted, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Color: "#808080"}}); err != nil {
		return nil, fmt.Errorf("failed to create muted style: %w", err)
	}
	for _, t := range model.AllTeams() {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{TeamColor(t)}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create team style: %w", err)
		}
		s.teams[t] = id
	}
	return s, nil
}

func (s *styles) team(t model.Team) int {
	return s.teams[t]
}

// ExportReport 导出报表视图：Report 表按区域分块列出任务，Legend 表列出班组颜色
func (e *Exporter) ExportReport(r view.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if r.NoProject {
		f.SetCellValue(reportSheet, "A1", view.NoProjectText)
		f.SetCellStyle(reportSheet, "A1", "A1", st.muted)
		return f, nil
	}

	f.SetCellValue(reportSheet, "A1", r.ProjectName)
	f.SetCellStyle(reportSheet, "A1", "A1", st.title)

	row := 3
	for _, a := range r.Areas {
		f.SetCellValue(reportSheet, cellName(1, row), a.Name)
		f.SetCellStyle(reportSheet, cellName(1, row), cellName(1, row), st.title)
		row++

		if a.Empty {
			f.SetCellValue(reportSheet, cellName(1, row), view.NoTasksText)
			f.SetCellStyle(reportSheet, cellName(1, row), cellName(1, row), st.muted)
			row += 2
			continue
		}

		for i, h := range []string{"Team", "Start Date", "End Date"} {
			f.SetCellValue(reportSheet, cellName(i+1, row), h)
		}
		f.SetCellStyle(reportSheet, cellName(1, row), cellName(3, row), st.header)
		row++

		for _, tr := range a.Rows {
			f.SetCellValue(reportSheet, cellName(1, row), string(tr.Team))
			f.SetCellValue(reportSheet, cellName(2, row), tr.StartDate)
			f.SetCellValue(reportSheet, cellName(3, row), tr.EndDate)
			if tr.Team.Valid() {
				f.SetCellStyle(reportSheet, cellName(1, row), cellName(1, row), st.team(tr.Team))
			}
			row++
		}
		row++
	}
	f.SetColWidth(reportSheet, "A", "A", 24)
	f.SetColWidth(reportSheet, "B", "C", 14)

	if err := writeLegend(f, st); err != nil {
		return nil, err
	}
	return f, nil
}

func writeLegend(f *excelize.File, st *styles) error {
	if _, err := f.NewSheet(legendSheet); err != nil {
		return fmt.Errorf("failed to create legend sheet: %w", err)
	}
	f.SetCellValue(legendSheet, "A1", "Team")
	f.SetCellValue(legendSheet, "B1", "Color")
	f.SetCellStyle(legendSheet, "A1", "B1", st.header)
	for i, entry := range view.Legend() {
		row := i + 2
		f.SetCellValue(legendSheet, cellName(1, row), entry.Label)
		f.SetCellStyle(legendSheet, cellName(2, row), cellName(2, row), st.team(entry.Team))
	}
	f.SetColWidth(legendSheet, "A", "A", 20)
	return nil
}

// ExportDashboard 导出看板视图：每个班组一张月历表
func (e *Exporter) ExportDashboard(d view.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if d.Empty {
		if err := f.SetSheetName("Sheet1", "Dashboard"); err != nil {
			return nil, err
		}
		f.SetCellValue("Dashboard", "A1", d.Message)
		f.SetCellStyle("Dashboard", "A1", "A1", st.muted)
		return f, nil
	}

	for i, cal := range d.Calendars {
		sheet := string(cal.Team)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		writeCalendar(f, sheet, cal, st)
	}
	return f, nil
}

func writeCalendar(f *excelize.File, sheet string, cal view.TeamCalendar, st *styles) {
	f.SetCellValue(sheet, "A1", cal.Title)
	f.SetCellStyle(sheet, "A1", "A1", st.title)
	f.SetCellValue(sheet, "A2", cal.MonthLabel)

	for i, wd := range cal.Weekdays {
		f.SetCellValue(sheet, cellName(i+1, 4), wd)
	}
	f.SetCellStyle(sheet, cellName(1, 4), cellName(len(cal.Weekdays), 4), st.header)

	for i, cell := range cal.Cells {
		if cell.Blank {
			continue
		}
		col, row := i%7+1, i/7+5
		name := cellName(col, row)
		f.SetCellValue(sheet, name, cell.Day)
		if cell.HasTask {
			f.SetCellStyle(sheet, name, name, st.team(cal.Team))
		}
	}
	f.SetColWidth(sheet, "A", "G", 8)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

var unsafeFileChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// NormalizeFileName 清理文件名并补全 .xlsx 后缀；为空时使用 fallback
func NormalizeFileName(name, fallback string) string {
	name = strings.TrimSpace(unsafeFileChars.ReplaceAllString(name, "_"))
	if name == "" || name == "." || name == ".." {
		return fallback
	}
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		name += ".xlsx"
	}
	return name
}

// SaveAs 把工作簿保存到 dir 下的 fileName，返回完整路径
func SaveAs(f *excelize.File, dir, fileName string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, fileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

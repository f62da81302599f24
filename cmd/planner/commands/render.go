package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gypsumplanner/internal/service/project"
	"gypsumplanner/internal/service/view"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderReport 文本报表：每个区域一个小节
func renderReport(w io.Writer, r view.Report) error {
	if r.NoProject {
		_, err := fmt.Fprintln(w, view.NoProjectText)
		return err
	}
	fmt.Fprintln(w, r.ProjectName)
	for _, a := range r.Areas {
		fmt.Fprintf(w, "\n== %s ==\n", a.Name)
		if a.Empty {
			fmt.Fprintf(w, "  %s\n", view.NoTasksText)
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  Team\tStart Date\tEnd Date")
		for _, row := range a.Rows {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", row.Team, row.StartDate, row.EndDate)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// renderCalendar 文本月历；有任务的日期后加 *，今天加方括号
func renderCalendar(w io.Writer, cal view.TeamCalendar) {
	fmt.Fprintf(w, "%s - %s\n", cal.Title, cal.MonthLabel)
	headers := make([]string, 0, len(cal.Weekdays))
	for _, wd := range cal.Weekdays {
		headers = append(headers, fmt.Sprintf("%5s", wd))
	}
	fmt.Fprintln(w, strings.Join(headers, ""))

	var line strings.Builder
	for i, cell := range cal.Cells {
		line.WriteString(formatCell(cell))
		if i%7 == 6 {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	if line.Len() > 0 {
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

func formatCell(cell view.DayCell) string {
	if cell.Blank {
		return strings.Repeat(" ", 5)
	}
	mark := " "
	if cell.HasTask {
		mark = "*"
	}
	if cell.Today {
		return fmt.Sprintf("[%2d]%s", cell.Day, mark)
	}
	return fmt.Sprintf(" %2d%s ", cell.Day, mark)
}

func renderDashboard(w io.Writer, d view.Dashboard) {
	if d.Empty {
		fmt.Fprintln(w, d.Message)
		return
	}
	for i, cal := range d.Calendars {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderCalendar(w, cal)
	}
}

func renderProjects(w io.Writer, idx project.ProjectsIndex) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tAREAS\tTASKS")
	for _, p := range idx.Items {
		active := ""
		if p.Active {
			active = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", active, p.ProjectID, p.Name, p.AreaCount, p.TaskCount)
	}
	return tw.Flush()
}

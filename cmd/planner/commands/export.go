package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"gypsumplanner/internal/service/excel"
	"gypsumplanner/internal/service/view"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		kindValue string
		out       string
		month     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the report or the dashboard as an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := excel.ParseKind(kindValue)
			if err != nil {
				return err
			}
			at, err := parseMonth(month, a.now())
			if err != nil {
				return err
			}

			adapter, st, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			exp := excel.NewExporter()
			var wb *excelize.File
			if kind == excel.KindDashboard {
				projects, err := st.ReadPersisted()
				if err != nil {
					return err
				}
				wb, err = exp.ExportDashboard(view.DeriveDashboardFor(projects, at.Year(), at.Month(), a.now()))
				if err != nil {
					return err
				}
			} else {
				var r view.Report
				if p, ok := st.Active(); ok {
					r = view.DeriveReport(&p)
				} else {
					r = view.DeriveReport(nil)
				}
				if wb, err = exp.ExportReport(r); err != nil {
					return err
				}
			}
			defer wb.Close()

			dir, name := filepath.Split(out)
			if dir == "" {
				dir = "."
			}
			path, err := excel.SaveAs(wb, dir, excel.NormalizeFileName(name, kind.DefaultFileName()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已导出: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&kindValue, "view", string(excel.KindReport), "导出内容 report|dashboard")
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件 (默认 project-planner.xlsx 或 team-dashboard.xlsx)")
	cmd.Flags().StringVar(&month, flagMonth, "", "看板月份 YYYY-MM (默认本月)")
	return cmd
}

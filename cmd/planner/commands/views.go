package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gypsumplanner/internal/service/view"
)

const flagMonth = "month"

func newReportCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the report of the current project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			adapter, st, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			var r view.Report
			if p, ok := st.Active(); ok {
				r = view.DeriveReport(&p)
			} else {
				r = view.DeriveReport(nil)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			return renderReport(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().BoolVar(&asJSON, flagJSON, false, "以 JSON 输出")
	return cmd
}

// parseMonth 解析 YYYY-MM；为空时使用 now
func parseMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	t, err := time.ParseInLocation("2006-01", value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", value)
	}
	return t, nil
}

func newDashboardCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		month  string
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the per-team calendars for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, err := parseMonth(month, a.now())
			if err != nil {
				return err
			}
			adapter, st, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			projects, err := st.ReadPersisted()
			if err != nil {
				return err
			}
			d := view.DeriveDashboardFor(projects, at.Year(), at.Month(), a.now())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			renderDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, flagJSON, false, "以 JSON 输出")
	cmd.Flags().StringVar(&month, flagMonth, "", "月份 YYYY-MM (默认本月)")
	return cmd
}

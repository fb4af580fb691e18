package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gemba.tools/internal/audit"
	"gemba.tools/internal/dashboard"
)

func newDashboardCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Aggregate metrics over your audits",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			ctx, err := sessionContext(app)
			if err != nil {
				return err
			}
			m := dashboard.Compute(app.audits.ForUser(ctx), time.Now())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "audits: %d total (%d draft, %d completed, %d approved)\n",
				m.TotalAudits, m.Drafts, m.Completed, m.Approved)
			fmt.Fprintf(out, "average score:    %.1f%%\n", m.AverageScore)
			fmt.Fprintf(out, "compliance rate:  %.1f%%\n", m.ComplianceRate)
			fmt.Fprintf(out, "critical issues:  %d\n", m.CriticalIssues)
			fmt.Fprintf(out, "excellent audits: %d\n", m.ExcellentAudits)
			fmt.Fprintf(out, "trend vs prior month: %+.1f%% (%d audits last month)\n",
				m.ImprovementTrend, m.LastMonthAudits)
			fmt.Fprintln(out, "by pillar:")
			for _, c := range audit.Categories {
				fmt.Fprintf(out, "  %-22s %.1f/5.0\n", audit.CategoryNames[c], m.ByCategory[c])
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"gemba.tools/internal/directory"
)

func newDirectoryCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Organizational directory views",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "Head-count report over the demo organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := directory.Seeded().BuildReport()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "employees: %d (%d active)\n", report.TotalEmployees, report.ActiveEmployees)
			fmt.Fprintf(out, "departments: %d  positions: %d\n", report.DepartmentCount, report.PositionCount)
			fmt.Fprintln(out, "by role:")
			for _, role := range sortedKeys(report.EmployeesByRole) {
				fmt.Fprintf(out, "  %-10s %d\n", role, report.EmployeesByRole[role])
			}
			fmt.Fprintln(out, "by status:")
			for _, status := range sortedKeys(report.EmployeesByStatus) {
				fmt.Fprintf(out, "  %-10s %d\n", status, report.EmployeesByStatus[status])
			}
			return nil
		},
	})
	return cmd
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gemba.tools/internal/audit"
)

func newQuestionsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Print the fixed 5S question taxonomy",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, c := range audit.Categories {
				fmt.Fprintf(out, "%s (%s)\n", audit.CategoryNames[c], c)
				for _, q := range audit.QuestionsFor(c) {
					fmt.Fprintf(out, "  %2s. %s\n", q.ID, q.Text)
				}
			}
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gemba.tools/internal/audit"
	"gemba.tools/internal/auth"
	"gemba.tools/internal/scoring"
)

// sessionContext attaches the current session's account to a context, or
// fails when nobody is logged in.
func sessionContext(app *app) (context.Context, error) {
	user := app.accounts.CurrentUser()
	if user == nil {
		return nil, fmt.Errorf("not logged in; run \"gemba login\" first")
	}
	return auth.ContextWithAccount(context.Background(), *user), nil
}

func newAuditCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Create and inspect 5S audits",
	}
	cmd.AddCommand(
		newAuditNewCommand(opts),
		newAuditListCommand(opts),
		newAuditShowCommand(opts),
		newAuditRespondCommand(opts),
		newAuditSetStatusCommand(opts),
	)
	return cmd
}

// parseScores turns repeated "questionID=score" flags into responses.
func parseScores(pairs []string) ([]audit.Response, error) {
	var out []audit.Response
	for _, pair := range pairs {
		id, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("score %q: want questionID=score", pair)
		}
		score, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("score %q: %w", pair, err)
		}
		out = append(out, audit.Response{QuestionID: id, Score: score})
	}
	return out, nil
}

func newAuditNewCommand(opts *rootOptions) *cobra.Command {
	var (
		title, area, date string
		complete          bool
		scores            []string
		recommendations   []string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an audit",
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
			responses, err := parseScores(scores)
			if err != nil {
				return err
			}
			status := audit.StatusDraft
			if complete {
				status = audit.StatusCompleted
			}
			id, err := app.audits.Create(ctx, audit.CreateInput{
				Title:           title,
				Area:            area,
				Date:            date,
				Status:          status,
				Responses:       responses,
				Recommendations: recommendations,
			})
			if err != nil {
				return err
			}
			record := app.audits.ByID(id)
			fmt.Fprintf(cmd.OutOrStdout(), "created audit %s (%.1f/5.0, %.0f%%)\n",
				id, record.TotalScore, record.PercentageScore)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "audit title")
	cmd.Flags().StringVar(&area, "area", "", "audited area or sector")
	cmd.Flags().StringVar(&date, "date", "", "audit date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().BoolVar(&complete, "complete", false, "save as completed instead of draft")
	cmd.Flags().StringArrayVar(&scores, "score", nil, "response as questionID=score (repeatable)")
	cmd.Flags().StringArrayVar(&recommendations, "recommend", nil, "free-text recommendation (repeatable)")
	return cmd
}

func newAuditListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your audits",
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
			audits := app.audits.ForUser(ctx)
			if len(audits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no audits yet")
				return nil
			}
			for _, a := range audits {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s  %-9s  %5.1f%%  %s\n",
					a.ID, a.Date, a.Status, a.PercentageScore, a.Title)
			}
			return nil
		},
	}
}

func newAuditShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one audit with per-pillar scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			record := app.audits.ByID(args[0])
			if record == nil {
				return fmt.Errorf("audit %s not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", record.Title)
			fmt.Fprintf(out, "area: %s  date: %s  status: %s  auditor: %s\n",
				record.Area, record.Date, record.Status, record.AuditorName)
			for _, c := range audit.Categories {
				score := scoring.CategoryScore(record.Responses, c)
				fmt.Fprintf(out, "  %-22s %.1f/5.0 (%s)\n",
					audit.CategoryNames[c], score, scoring.BandFor(score))
			}
			pct := record.PercentageScore
			fmt.Fprintf(out, "total: %.1f/5.0 (%.0f%%, %s)\n",
				record.TotalScore, pct, scoring.StatusLabel(pct))
			for _, rec := range record.Recommendations {
				fmt.Fprintf(out, "  - %s\n", rec)
			}
			return nil
		},
	}
}

func newAuditRespondCommand(opts *rootOptions) *cobra.Command {
	var scores []string
	cmd := &cobra.Command{
		Use:   "respond <id>",
		Short: "Add or revise answers on an audit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			incoming, err := parseScores(scores)
			if err != nil {
				return err
			}
			if len(incoming) == 0 {
				return fmt.Errorf("nothing to record; pass at least one --score")
			}
			for _, resp := range incoming {
				if resp.Score < 0 || resp.Score > 5 {
					return fmt.Errorf("score for question %s must be between 0 and 5", resp.QuestionID)
				}
			}
			record := app.audits.ByID(args[0])
			if record == nil {
				return fmt.Errorf("audit %s not found", args[0])
			}
			merged := mergeResponses(record.Responses, incoming)
			app.audits.Update(record.ID, audit.UpdateInput{Responses: &merged})
			refreshed := app.audits.ByID(record.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "audit %s now %.1f/5.0 (%.0f%%)\n",
				refreshed.ID, refreshed.TotalScore, refreshed.PercentageScore)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&scores, "score", nil, "response as questionID=score (repeatable)")
	return cmd
}

// mergeResponses overlays incoming answers onto existing ones by question id,
// appending answers to questions not seen before.
func mergeResponses(existing, incoming []audit.Response) []audit.Response {
	merged := append([]audit.Response(nil), existing...)
	for _, in := range incoming {
		replaced := false
		for i := range merged {
			if merged[i].QuestionID == in.QuestionID {
				merged[i] = in
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, in)
		}
	}
	return merged
}

func newAuditSetStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <draft|completed|approved>",
		Short: "Move an audit along its lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			status, err := audit.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if app.audits.ByID(args[0]) == nil {
				return fmt.Errorf("audit %s not found", args[0])
			}
			app.audits.SetStatus(args[0], status)
			fmt.Fprintf(cmd.OutOrStdout(), "audit %s is now %s\n", args[0], status)
			return nil
		},
	}
}

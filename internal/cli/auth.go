package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gemba.tools/internal/auth"
)

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	var data struct {
		email, name, role, company, password string
	}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			res := app.accounts.Register(auth.RegisterData{
				Email:    data.email,
				Name:     data.name,
				Role:     auth.Role(data.role),
				Company:  data.company,
				Password: data.password,
			})
			if !res.OK {
				return res.FailureError()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s)\n", res.User.Email, res.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&data.email, "email", "", "account email")
	cmd.Flags().StringVar(&data.name, "name", "", "display name")
	cmd.Flags().StringVar(&data.role, "role", string(auth.RoleAuditor), "role: admin, auditor, or viewer")
	cmd.Flags().StringVar(&data.company, "company", "", "organization name")
	cmd.Flags().StringVar(&data.password, "password", "", "password (min 6 characters)")
	return cmd
}

func newLoginCommand(opts *rootOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			res := app.accounts.Login(email, password)
			if !res.OK {
				return res.FailureError()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "welcome back, %s\n", res.User.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			app.accounts.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			user := app.accounts.CurrentUser()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s @ %s\n", user.Name, user.Email, user.Role, user.Company)
			return nil
		},
	}
}

func newChangePasswordCommand(opts *rootOptions) *cobra.Command {
	var email, current, next string
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Reset an account credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			res := app.accounts.ChangePassword(email, current, next)
			if !res.OK {
				return res.FailureError()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	return cmd
}

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/api"
	"monitor-swiezosci/internal/session"
	"monitor-swiezosci/internal/validate"
)

// NewLoginCommand authenticates against the backend and persists the session.
func NewLoginCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := map[string]string{"email": email, "password": password}
			if result := validate.Form(form, validate.LoginRules); !result.Valid {
				return formError(result)
			}

			resp, err := app.Client.Login(cmd.Context(), api.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := app.Session.Set(sessionFromAuth(resp)); err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", resp.Name, resp.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

// NewSignupCommand creates an account. Input is validated locally with the
// same rule table the dashboard uses before anything is sent.
func NewSignupCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var name, email, password, confirm, adminCode string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := map[string]string{
				"name":            name,
				"email":           email,
				"password":        password,
				"confirmPassword": confirm,
			}
			if result := validate.Form(form, validate.SignupRules); !result.Valid {
				return formError(result)
			}

			strength := validate.PasswordStrength(password)
			if rootOpts.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "password strength: %s (%d/6)\n", strength.Label, strength.Score)
			}

			resp, err := app.Client.Signup(cmd.Context(), api.SignupRequest{
				Name:      name,
				Email:     email,
				Password:  password,
				AdminCode: adminCode,
			})
			if err != nil {
				return err
			}
			if err := app.Session.Set(sessionFromAuth(resp)); err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s (%s)\n", resp.Name, resp.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "password confirmation")
	cmd.Flags().StringVar(&adminCode, "admin-code", "", "optional admin enrollment code")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("confirm-password")
	return cmd
}

func NewLogoutCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func sessionFromAuth(resp *api.AuthResponse) session.Session {
	return session.Session{
		Token: resp.Token,
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
		Roles: resp.Roles,
	}
}

// formError flattens field violations into one readable error, fields in
// stable order.
func formError(result validate.Result) error {
	fields := make([]string, 0, len(result.Errors))
	for field := range result.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(result.Errors[field], "; ")))
	}
	return fmt.Errorf("invalid input: %s", strings.Join(parts, " | "))
}

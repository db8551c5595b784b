package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSignupCommand creates the signup command.
func NewSignupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "signup <email> <password>",
		Short:         "Register a new account and sign in",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := NewAppEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			if env.Auth == nil {
				return fmt.Errorf("signup requires a supabase configuration")
			}
			session, err := env.Auth.SignUp(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s\n", session.User.Email)
			return nil
		},
	}
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "login <email> <password>",
		Short:         "Sign in with email and password",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := NewAppEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			if env.Auth == nil {
				return fmt.Errorf("login requires a supabase configuration")
			}
			session, err := env.Auth.SignIn(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", session.User.Email)
			return nil
		},
	}
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Clear the persisted session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := NewAppEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			if env.Client != nil {
				env.Client.ClearSession()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

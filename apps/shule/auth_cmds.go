package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var readPasswordFunc = term.ReadPassword // mockable

func newLoginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fail(fmt.Errorf("--email is required"))
			}

			fmt.Print("Enter password: ")
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fail(err)
			}

			usr, err := a.manager.Login(cmd.Context(), email, string(pwd))
			if err != nil {
				return fail(err)
			}

			// navigation restarts from the user's own school
			if err := a.locator.Reset(); err != nil {
				a.log.Warn("resetting location", err)
			}

			fmt.Printf("Signed in as %s (%s)\n", usr.Name, usr.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password EMAIL",
		Short: "Request a password reset link by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.services.Auth.ForgotPassword(cmd.Context(), args[0]); err != nil {
				return fail(err)
			}
			fmt.Println("If that address has an account, a reset link is on its way.")
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.manager.Logout(); err != nil {
				return fail(err)
			}
			if err := a.locator.Reset(); err != nil {
				return fail(err)
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			usr, ok := a.manager.Current()
			if !ok {
				fmt.Println("Not signed in. Run `shule login` first.")
				return nil
			}
			fmt.Printf("User:     %s <%s>\n", usr.Name, usr.Email)
			fmt.Printf("Role:     %s\n", usr.Role)
			if usr.SchoolSlug != "" {
				fmt.Printf("School:   %s\n", usr.SchoolSlug)
			}
			fmt.Printf("Location: %s\n", a.locator.Current())
			return nil
		},
	}
}

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use SLUG",
		Short: "Navigate to a school (or `admin` for the administrative portal)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.locator.Set("/" + args[0] + "/dashboard"); err != nil {
				return fail(err)
			}
			fmt.Printf("Now at %s\n", a.locator.Current())
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	accountdto "studylog/internal/modules/account/dto"
)

func newAccountCmd(vaultPath *string) *cobra.Command {
	account := &cobra.Command{Use: "account", Short: "Register, log in and manage your profile"}

	var name, email, password string
	register := &cobra.Command{
		Use:   "register --name <name> --email <email> --password <password>",
		Short: "Create a student account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				user, err := app.AccountCLI.Register(ctx, name, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s <%s> (%s)\n", user.Name, user.Email, user.ID)
				return nil
			})
		},
	}
	register.Flags().StringVar(&name, "name", "", "display name")
	register.Flags().StringVar(&email, "email", "", "email address")
	register.Flags().StringVar(&password, "password", "", "password (at least 6 characters)")

	var loginEmail, loginPassword string
	login := &cobra.Command{
		Use:   "login --email <email> --password <password>",
		Short: "Log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(loginEmail) == "" {
				return fmt.Errorf("--email is required")
			}
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				user, err := app.AccountCLI.Login(ctx, loginEmail, loginPassword)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", user.Name, user.Role)
				return nil
			})
		},
	}
	login.Flags().StringVar(&loginEmail, "email", "", "email address")
	login.Flags().StringVar(&loginPassword, "password", "", "password")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.AccountCLI.Logout(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(_ context.Context, _ *bootstrap.App, user accountdto.UserOutput) error {
				printUser(cmd, user)
				return nil
			})
		},
	}

	var newName, newEmail string
	profile := &cobra.Command{
		Use:   "profile [--name <name>] [--email <email>]",
		Short: "Update your name or email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if newName == "" && newEmail == "" {
				return fmt.Errorf("--name or --email is required")
			}
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				user, err := app.AccountCLI.UpdateProfile(ctx, newName, newEmail)
				if err != nil {
					return err
				}
				printUser(cmd, user)
				return nil
			})
		},
	}
	profile.Flags().StringVar(&newName, "name", "", "new display name")
	profile.Flags().StringVar(&newEmail, "email", "", "new email address")

	var oldPassword, newPassword string
	changePassword := &cobra.Command{
		Use:   "password --old <password> --new <password>",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.AccountCLI.ChangePassword(ctx, oldPassword, newPassword); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "password changed")
				return nil
			})
		},
	}
	changePassword.Flags().StringVar(&oldPassword, "old", "", "current password")
	changePassword.Flags().StringVar(&newPassword, "new", "", "new password")

	account.AddCommand(register, login, logout, whoami, profile, changePassword)
	return account
}

func printUser(cmd *cobra.Command, user accountdto.UserOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nid=%s role=%s registered %s\n",
		user.Name, user.Email, user.ID, user.Role, humanize.Time(user.RegisteredAt))
}

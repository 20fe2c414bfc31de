package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	accountdto "studylog/internal/modules/account/dto"
	goalin "studylog/internal/modules/goal/port/in"
)

func newGoalCmd(vaultPath *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Set and track your study-hour goal"}
	var global bool

	// scoped resolves the goal scope; the global goal is administrator-only
	// for writes.
	scoped := func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput, write bool) (string, string, error) {
		if !global {
			return goalin.UserScope(user.ID), user.ID, nil
		}
		if write {
			if _, err := app.AccountCLI.RequireAdmin(ctx); err != nil {
				return "", "", err
			}
		}
		return goalin.GlobalScope, "", nil
	}

	set := &cobra.Command{
		Use:   "set <hours>",
		Short: "Set the goal for the configured period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid hours %q", args[0])
			}
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				scope, _, err := scoped(ctx, app, user, true)
				if err != nil {
					return err
				}
				out, err := app.GoalCLI.Set(ctx, scope, hours)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal set: %.1f hours per %s\n", out.Hours, app.Config.GoalPeriod)
				return nil
			})
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show goal progress for the current period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				_, owner, err := scoped(ctx, app, user, false)
				if err != nil {
					return err
				}
				status, err := app.StatsCLI.GoalStatus(ctx, owner)
				if err != nil {
					return err
				}
				printGoal(cmd.OutOrStdout(), status)
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				scope, _, err := scoped(ctx, app, user, true)
				if err != nil {
					return err
				}
				if err := app.GoalCLI.Clear(ctx, scope); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "goal cleared")
				return nil
			})
		},
	}

	goal.PersistentFlags().BoolVar(&global, "global", false, "the administrators' goal over all users")
	goal.AddCommand(set, show, clearCmd)
	return goal
}

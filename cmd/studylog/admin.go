package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	accountdto "studylog/internal/modules/account/dto"
)

func newAdminCmd(vaultPath *string) *cobra.Command {
	admin := &cobra.Command{Use: "admin", Short: "Administrator operations"}

	users := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				list, err := app.AccountCLI.Users(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSESSIONS\tREGISTERED")
				for _, u := range list {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, humanize.Comma(int64(u.Sessions)), humanize.Time(u.RegisteredAt))
				}
				return tw.Flush()
			})
		},
	}

	user := &cobra.Command{
		Use:   "user <id>",
		Short: "Show a user with study totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				detail, err := app.AccountCLI.User(ctx, args[0])
				if err != nil {
					return err
				}
				printUser(cmd, detail.User)
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "sessions: %d  total: %.2f h\n", detail.Sessions, detail.TotalHours)
				if detail.Favorite != "" {
					_, _ = fmt.Fprintf(w, "favorite subject: %s\n", detail.Favorite)
				}
				if !detail.LastSession.IsZero() {
					_, _ = fmt.Fprintf(w, "last session: %s (%s)\n", detail.LastSession.Format("2006-01-02"), humanize.Time(detail.LastSession))
				}
				return nil
			})
		},
	}

	role := &cobra.Command{
		Use:   "role <id> <admin|student>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.SetRole(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", out.Name, out.Role)
				return nil
			})
		},
	}

	deleteUser := &cobra.Command{
		Use:   "delete-user <id>",
		Short: "Delete a user with their sessions and goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.AccountCLI.DeleteUser(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user %s deleted\n", args[0])
				return nil
			})
		},
	}

	var filters queryFlags
	sessions := &cobra.Command{
		Use:   "sessions",
		Short: "List every user's sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(*vaultPath, func(ctx context.Context, app *bootstrap.App, _ accountdto.UserOutput) error {
				query, err := filters.query("", app.Config.Location)
				if err != nil {
					return err
				}
				history, err := app.StatsCLI.History(ctx, query)
				if err != nil {
					return err
				}
				printHistory(cmd, history, true)
				return nil
			})
		},
	}
	filters.register(sessions, "all")

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregates across all users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(*vaultPath, func(ctx context.Context, app *bootstrap.App, _ accountdto.UserOutput) error {
				d, err := app.StatsCLI.Dashboard(ctx)
				if err != nil {
					return err
				}
				list, err := app.AccountCLI.Users(ctx)
				if err != nil {
					return err
				}
				names := make(map[string]string, len(list))
				for _, u := range list {
					names[u.ID] = u.Name
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "users: %d registered, %d with sessions\n", len(list), d.Owners)
				printOverview(w, d.Overview)
				_, _ = fmt.Fprintln(w)
				printGoal(w, d.Goal)
				if len(d.Top) > 0 {
					_, _ = fmt.Fprintln(w, "\ntop students:")
					for i, o := range d.Top {
						name := names[o.OwnerID]
						if name == "" {
							name = o.OwnerID
						}
						_, _ = fmt.Fprintf(w, "%s %s  %.2f h in %d sessions\n", humanize.Ordinal(i+1), name, o.Hours, o.Sessions)
					}
				}
				return nil
			})
		},
	}

	admin.AddCommand(users, user, role, deleteUser, sessions, dashboard)
	return admin
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	accountdto "studylog/internal/modules/account/dto"
	"studylog/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "studylog",
		Short:         "Study session log and statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "vault directory")

	root.AddCommand(newAccountCmd(&vaultPath))
	root.AddCommand(newSessionCmd(&vaultPath))
	root.AddCommand(newStatsCmd(&vaultPath))
	root.AddCommand(newGoalCmd(&vaultPath))
	root.AddCommand(newExportCmd(&vaultPath))
	root.AddCommand(newAdminCmd(&vaultPath))
	root.AddCommand(newPluginCmd(&vaultPath))
	root.AddCommand(newReindexCmd(&vaultPath))
	root.AddCommand(newTUICmd(&vaultPath))
	root.AddCommand(newMCPCmd(&vaultPath))
	return root
}

// withApp wires the application for one command and closes it afterwards.
func withApp(vaultPath string, run func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.New(vaultPath)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return run(context.Background(), app)
}

// withUser is withApp for commands that need a logged-in user.
func withUser(vaultPath string, run func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error) error {
	return withApp(vaultPath, func(ctx context.Context, app *bootstrap.App) error {
		user, err := app.AccountCLI.WhoAmI(ctx)
		if err != nil {
			return fmt.Errorf("%w (run: studylog account login)", err)
		}
		return run(ctx, app, user)
	})
}

// withAdmin is withApp for administrator commands.
func withAdmin(vaultPath string, run func(ctx context.Context, app *bootstrap.App, admin accountdto.UserOutput) error) error {
	return withApp(vaultPath, func(ctx context.Context, app *bootstrap.App) error {
		admin, err := app.AccountCLI.RequireAdmin(ctx)
		if err != nil {
			return err
		}
		return run(ctx, app, admin)
	})
}

func newReindexCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the session index from vault notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Reindex(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d sessions\n", out.Indexed)
				return nil
			})
		},
	}
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(_ context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				return bootstrap.RunTUI(app, user)
			})
		},
	}
}

func newMCPCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the logged-in user's statistics over MCP (stdio)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(_ context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				return app.MCPServer(user).Serve()
			})
		},
	}
}

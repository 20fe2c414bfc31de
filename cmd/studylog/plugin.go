package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	accountdto "studylog/internal/modules/account/dto"
	plugindto "studylog/internal/modules/plugin/dto"
)

func newPluginCmd(vaultPath *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Report plugin operations"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				plugins, err := app.PluginCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t capabilities=%s binary=%s\n", p.Name, p.Version, p.Enabled, strings.Join(p.Capabilities, ","), p.Binary)
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin binaries, checksums and handshake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				results, err := app.PluginCLI.Doctor(ctx)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s binary=%t checksum=%t lifecycle=%t", r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "commands <plugin>",
		Short: "List a plugin's commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				commands, err := app.PluginCLI.ListCommands(ctx, args[0])
				if err != nil {
					return err
				}
				for _, c := range commands {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s - %s\n", c.ID, c.Kind, c.Title, c.Description)
				}
				return nil
			})
		},
	})

	var period, input string
	run := &cobra.Command{
		Use:   "run <plugin> <command>",
		Short: "Run a plugin command",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				out, err := app.PluginCLI.Run(ctx, plugindto.RunInput{
					PluginName: args[0],
					CommandID:  args[1],
					OwnerID:    user.ID,
					Period:     period,
					InputJSON:  input,
				})
				if err != nil {
					return err
				}
				if out.Stdout != "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out.Stdout, "\n"))
				}
				if out.Stderr != "" {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), strings.TrimRight(out.Stderr, "\n"))
				}
				if out.OutputJSON != "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
				}
				if out.ExitCode != 0 {
					return fmt.Errorf("plugin %s:%s exited with %d", out.PluginName, out.CommandID, out.ExitCode)
				}
				return nil
			})
		},
	}
	run.Flags().StringVar(&period, "period", "month", "period summarized by report commands")
	run.Flags().StringVar(&input, "input", "", "JSON input for command-kind plugins")
	plugin.AddCommand(run)
	return plugin
}

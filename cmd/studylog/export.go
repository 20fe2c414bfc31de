package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	accountdto "studylog/internal/modules/account/dto"
	exportdto "studylog/internal/modules/export/dto"
)

func newExportCmd(vaultPath *string) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Export your history as CSV, PDF or a vault dashboard"}

	var csvBase string
	var copyCSV, all bool
	csvCmd := &cobra.Command{
		Use:   "csv [--out <base>|-] [--copy] [--all]",
		Short: "Export sessions as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				owner := user.ID
				if all {
					if _, err := app.AccountCLI.RequireAdmin(ctx); err != nil {
						return err
					}
					owner = ""
				}
				out, err := app.ExportCLI.CSV(ctx, exportdto.CSVInput{OwnerID: owner, Base: csvBase, Copy: copyCSV})
				if err != nil {
					return err
				}
				if out.Path == "" {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s\n", out.Rows, out.Path)
				}
				if out.Copied {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "copied to clipboard")
				}
				return nil
			})
		},
	}
	csvCmd.Flags().StringVar(&csvBase, "out", "", "file base name, or - for stdout")
	csvCmd.Flags().BoolVar(&copyCSV, "copy", false, "also copy the CSV to the clipboard")
	csvCmd.Flags().BoolVar(&all, "all", false, "every user's sessions (administrators)")

	var pdfBase string
	pdfCmd := &cobra.Command{
		Use:   "pdf [--out <base>]",
		Short: "Export history and statistics as a PDF document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				out, err := app.ExportCLI.PDF(ctx, exportdto.PDFInput{OwnerID: user.ID, UserName: user.Name, Base: pdfBase})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s (%d pages)\n", out.Rows, out.Path, out.Pages)
				return nil
			})
		},
	}
	pdfCmd.Flags().StringVar(&pdfBase, "out", "", "file base name")

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Write the study report into the vault dashboard note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				out, err := app.ExportCLI.Dashboard(ctx, exportdto.DashboardInput{OwnerID: user.ID, UserName: user.Name})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dashboard updated: %s (%d lines)\n", out.Path, out.Lines)
				return nil
			})
		},
	}

	export.AddCommand(csvCmd, pdfCmd, dashboard)
	return export
}

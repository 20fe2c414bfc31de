package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	accountdto "studylog/internal/modules/account/dto"
	sessiondto "studylog/internal/modules/session/dto"
	statsdto "studylog/internal/modules/stats/dto"
)

// queryFlags are the filters shared by session list, stats and admin sessions.
type queryFlags struct {
	period  string
	from    string
	to      string
	subject string
}

func (f *queryFlags) register(cmd *cobra.Command, defaultPeriod string) {
	cmd.Flags().StringVar(&f.period, "period", defaultPeriod, "week|month|all")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest date (YYYY-MM-DD or e.g. \"last monday\")")
	cmd.Flags().StringVar(&f.to, "to", "", "latest date, inclusive")
	cmd.Flags().StringVar(&f.subject, "subject", "", "only this subject")
}

func (f queryFlags) query(ownerID string, loc *time.Location) (statsdto.Query, error) {
	now := time.Now()
	from, err := parseDay(f.from, now, loc)
	if err != nil {
		return statsdto.Query{}, err
	}
	to, err := parseDay(f.to, now, loc)
	if err != nil {
		return statsdto.Query{}, err
	}
	return statsdto.Query{OwnerID: ownerID, Period: f.period, From: from, To: endOfDay(to), Subject: f.subject}, nil
}

func newSessionCmd(vaultPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Log and list study sessions"}

	var subject, custom, date, start, end, notes string
	logCmd := &cobra.Command{
		Use:   "log --subject <subject> --date <date> --start HH:MM --end HH:MM",
		Short: "Log a study session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				day, err := parseDay(date, time.Now(), app.Config.Location)
				if err != nil {
					return err
				}
				if day.IsZero() {
					return fmt.Errorf("--date is required")
				}
				out, err := app.SessionCLI.Log(ctx, sessiondto.LogInput{
					OwnerID:       user.ID,
					Subject:       subject,
					CustomSubject: custom,
					Date:          day,
					StartTime:     start,
					EndTime:       end,
					Notes:         notes,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %s %.2f h (%s) note=%s\n",
					out.Subject, out.Date.Format("2006-01-02"), out.DurationHours, out.ID, out.Path)

				notice, err := app.StatsCLI.NotifyGoalReached(ctx, user.ID, out.Date, out.DurationHours)
				if err != nil {
					app.Logger.Warn("goal notification failed", "error", err)
				} else if notice.Message != "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), notice.Message)
				}
				return nil
			})
		},
	}
	logCmd.Flags().StringVar(&subject, "subject", "", "subject, or Other with --custom-subject")
	logCmd.Flags().StringVar(&custom, "custom-subject", "", "subject name when --subject is Other")
	logCmd.Flags().StringVar(&date, "date", "today", "session date")
	logCmd.Flags().StringVar(&start, "start", "", "start time HH:MM")
	logCmd.Flags().StringVar(&end, "end", "", "end time HH:MM")
	logCmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	var filters queryFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List your sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				query, err := filters.query(user.ID, app.Config.Location)
				if err != nil {
					return err
				}
				history, err := app.StatsCLI.History(ctx, query)
				if err != nil {
					return err
				}
				printHistory(cmd, history, false)
				return nil
			})
		},
	}
	filters.register(list, "all")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				out, err := app.SessionCLI.Delete(ctx, user.ID, args)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d session(s)\n", out.Deleted)
				return nil
			})
		},
	}

	subjects := &cobra.Command{
		Use:   "subjects",
		Short: "List the subject pick-list and the subjects you have used",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				used, err := app.SessionCLI.Subjects(ctx, user.ID)
				if err != nil {
					return err
				}
				for _, s := range mergeSubjects(app.Config.Subjects, used) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			})
		},
	}

	session.AddCommand(logCmd, list, deleteCmd, subjects)
	return session
}

// mergeSubjects keeps the configured order, appends used subjects that are
// not configured and ends with Other.
func mergeSubjects(configured, used []string) []string {
	out := make([]string, 0, len(configured)+len(used)+1)
	seen := map[string]bool{"other": true}
	for _, s := range slices.Concat(configured, used) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return append(out, "Other")
}

func printHistory(cmd *cobra.Command, history statsdto.HistoryOutput, withOwner bool) {
	if len(history.Sessions) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	header := "ID\tDATE\tSUBJECT\tSTART\tEND\tHOURS\tNOTES"
	if withOwner {
		header = "OWNER\t" + header
	}
	_, _ = fmt.Fprintln(tw, header)
	for _, s := range history.Sessions {
		row := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%.2f\t%s", s.ID, s.Date.Format("2006-01-02"), s.Subject, s.StartTime, s.EndTime, s.DurationHours, firstLine(s.Notes))
		if withOwner {
			row = s.OwnerID + "\t" + row
		}
		_, _ = fmt.Fprintln(tw, row)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: %.2f hours in %d sessions\n", history.TotalHours, len(history.Sessions))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}

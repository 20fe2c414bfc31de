package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	accountdto "studylog/internal/modules/account/dto"
	statsdto "studylog/internal/modules/stats/dto"
)

func newStatsCmd(vaultPath *string) *cobra.Command {
	var filters queryFlags
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				query, err := filters.query(user.ID, app.Config.Location)
				if err != nil {
					return err
				}
				overview, err := app.StatsCLI.Overview(ctx, query)
				if err != nil {
					return err
				}
				printOverview(cmd.OutOrStdout(), overview)
				return nil
			})
		},
	}
	filters.register(stats, "all")

	report := &cobra.Command{
		Use:   "report",
		Short: "Show the automatic study report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				out, err := app.StatsCLI.Report(ctx, user.ID)
				if err != nil {
					return err
				}
				printGoal(cmd.OutOrStdout(), out.Goal)
				for _, line := range out.Lines {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "- "+line)
				}
				return nil
			})
		},
	}

	var aFrom, aTo, bFrom, bTo string
	compare := &cobra.Command{
		Use:   "compare --a-from <date> --a-to <date> --b-from <date> --b-to <date>",
		Short: "Compare study hours between two date ranges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(*vaultPath, func(ctx context.Context, app *bootstrap.App, user accountdto.UserOutput) error {
				a, err := dateRange(aFrom, aTo, app.Config.Location)
				if err != nil {
					return err
				}
				b, err := dateRange(bFrom, bTo, app.Config.Location)
				if err != nil {
					return err
				}
				out, err := app.StatsCLI.Compare(ctx, statsdto.CompareInput{OwnerID: user.ID, A: a, B: b})
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				printPeriodTotal(w, "A", out.A)
				printPeriodTotal(w, "B", out.B)
				_, _ = fmt.Fprintf(w, "difference (B - A): %+.2f h\n", out.Difference)
				return nil
			})
		},
	}
	compare.Flags().StringVar(&aFrom, "a-from", "", "first range start")
	compare.Flags().StringVar(&aTo, "a-to", "", "first range end, inclusive")
	compare.Flags().StringVar(&bFrom, "b-from", "", "second range start")
	compare.Flags().StringVar(&bTo, "b-to", "", "second range end, inclusive")

	stats.AddCommand(report, compare)
	return stats
}

func dateRange(from, to string, loc *time.Location) (statsdto.RangeInput, error) {
	now := time.Now()
	start, err := parseDay(from, now, loc)
	if err != nil {
		return statsdto.RangeInput{}, err
	}
	end, err := parseDay(to, now, loc)
	if err != nil {
		return statsdto.RangeInput{}, err
	}
	if start.IsZero() || end.IsZero() {
		return statsdto.RangeInput{}, fmt.Errorf("both ends of a range are required")
	}
	return statsdto.RangeInput{From: start, To: endOfDay(end)}, nil
}

func printPeriodTotal(w io.Writer, label string, p statsdto.PeriodTotal) {
	_, _ = fmt.Fprintf(w, "%s  %s .. %s  %d sessions  %.2f h\n", label, p.From.Format("2006-01-02"), p.To.Format("2006-01-02"), p.Sessions, p.Hours)
}

func printOverview(w io.Writer, o statsdto.OverviewOutput) {
	if o.Sessions == 0 {
		_, _ = fmt.Fprintln(w, "no sessions for this filter")
		return
	}
	_, _ = fmt.Fprintf(w, "sessions: %s  total: %.2f h  longest: %.2f h\n", humanize.Comma(int64(o.Sessions)), o.TotalHours, o.LongestHours)
	if o.HasAverage {
		_, _ = fmt.Fprintf(w, "daily average: %.2f h\n", o.DailyAverage)
	}
	_, _ = fmt.Fprintf(w, "mean: %.2f h  median: %.2f h  mode: %.2f h\n", o.Mean, o.Median, o.Mode)
	_, _ = fmt.Fprintf(w, "most studied day: %s (%.2f h)  least: %s (%.2f h)\n", o.MostWeekday, o.MostHours, o.LeastWeekday, o.LeastHours)
	_, _ = fmt.Fprintf(w, "favorite subject: %s\n\n", o.Favorite)

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "WEEKDAY\tHOURS")
	for _, d := range o.Weekdays {
		_, _ = fmt.Fprintf(tw, "%s\t%.2f\n", d.Weekday, d.Hours)
	}
	_, _ = fmt.Fprintln(tw, "\nSUBJECT\tHOURS")
	for _, s := range o.Subjects {
		_, _ = fmt.Fprintf(tw, "%s\t%.2f\n", s.Subject, s.Hours)
	}
	_, _ = fmt.Fprintln(tw, "\nHOUR\tHOURS")
	for h, v := range o.HourOfDay {
		if v > 0 {
			_, _ = fmt.Fprintf(tw, "%02d:00\t%.2f\n", h, v)
		}
	}
	_, _ = fmt.Fprintln(tw, "\nLENGTH\tSESSIONS")
	for _, b := range o.Histogram {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", b.Label, strings.Repeat("#", b.Count))
	}
	_ = tw.Flush()
}

func printGoal(w io.Writer, g statsdto.GoalStatusOutput) {
	if !g.HasGoal {
		_, _ = fmt.Fprintln(w, "goal: not set")
		return
	}
	scope := "your"
	if g.Global {
		scope = "global"
	}
	cells := g.Bar / 5
	_, _ = fmt.Fprintf(w, "%s goal: %.1f h per %s  done %.2f h  [%s%s] %d%%\n",
		scope, g.GoalHours, g.Period, g.PeriodHours,
		strings.Repeat("#", cells), strings.Repeat(".", 20-cells), g.Percent)
	switch {
	case g.MetGoal:
		_, _ = fmt.Fprintf(w, "goal reached, %.2f h over\n", g.Surplus)
	case g.DaysLeft > 0:
		_, _ = fmt.Fprintf(w, "%.2f h left in %d days (%.2f h/day)\n", g.HoursLeft, g.DaysLeft, g.HoursPerDay)
	}
}

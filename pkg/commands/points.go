package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/printers"
	"tableflip.dev/taskrace/pkg/runner/report"
	"tableflip.dev/taskrace/pkg/runner/shop"
	"tableflip.dev/taskrace/pkg/timeutil"
)

func addPoints(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Show the points balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				points, err := s.Service.Points(ctx)
				if err != nil {
					return err
				}
				if oo.JSON {
					return printers.JSON(nil, map[string]int{"points": points})
				}
				pp := printers.PrettyPrint{}
				pp.Points(points)
				return nil
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)

	limit := 0
	history := &cobra.Command{
		Use:   "history",
		Short: "Show points earned and spent, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := shop.History{Service: s.Service, Limit: limit, JSON: oo.JSON}
				return r.Do(ctx)
			})
		},
	}
	history.Flags().IntVarP(&limit, "limit", "n", 0, "Only show this many entries.")
	options.AddOutputArg(history, oo)
	topLevel.AddCommand(history)
}

func addReport(topLevel *cobra.Command) {
	var (
		last  string
		month bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize points earned and spent, grouped by day",
		Long: `Report lists balance changes grouped by day within the specified time window.

Examples:
  taskrace report
  taskrace report --last 3d
  taskrace report --last 1w2d --month`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := report.Report{Service: s.Service, Last: last, Month: month, JSON: oo.JSON}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	cmd.Flags().BoolVar(&month, "month", false, "Also print this month with the days that earned points highlighted.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

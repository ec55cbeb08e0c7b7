package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/runner/days"
)

func addDays(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var (
		unfinished bool
		since      string
	)

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List past days, or the ones left unfinished",
		Example: `
taskrace days
taskrace days --unfinished --since 2/1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				// A short date like 2/1 means the last one, not the next.
				from, err := options.ParseDate(since, time.Now().AddDate(-1, 0, 0))
				if err != nil {
					return err
				}
				r := days.Days{
					Service:    s.Service,
					Unfinished: unfinished || from != nil,
					Since:      from,
					ShowID:     io.ShowID,
					JSON:       oo.JSON,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVarP(&unfinished, "unfinished", "u", false, "Only days that still have open items.")
	cmd.Flags().StringVar(&since, "since", "", `Earliest day to include, example: --since="2020-2-1".`)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/runner/today"
)

func addToday(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the list for today, or another day with --on",
		Example: `
taskrace today
taskrace today --on 2/28
taskrace today --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				d, err := on.GetOn()
				if err != nil {
					return err
				}
				r := today.Today{
					Service: s.Service,
					On:      d,
					ShowID:  io.ShowID,
					JSON:    oo.JSON,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

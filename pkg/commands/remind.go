package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/runner/remind"
)

func addRemind(topLevel *cobra.Command) {
	var always bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send a desktop notification with what is left today",
		Long: base80("Remind counts today's open items and the past due anytime items " +
			"and sends them as a desktop notification. Run it from cron for a nudge."),
		Example: `
taskrace remind
taskrace remind --always
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := remind.Remind{Service: s.Service, Always: always}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&always, "always", false, "Notify even when nothing is left.")
	topLevel.AddCommand(cmd)
}

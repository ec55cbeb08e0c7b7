package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/runner/check"
)

func addCheck(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the stored records and the lists they point at",
		Long: base80("Validates every record of the active profile against its schema " +
			"and reports templates or days whose list is missing."),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := check.Check{Service: s.Service, JSON: oo.JSON}
				return r.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

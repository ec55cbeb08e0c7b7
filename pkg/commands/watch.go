package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream changes to the current profile's data",
		Long: base80("Watch prints a line each time a collection changes on disk, " +
			"until interrupted. It needs the diskv backend."),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := watch.Watch{Service: s.Service, JSON: oo.JSON, Log: s.Log}
				return r.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

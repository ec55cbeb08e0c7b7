package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/printers"
	"tableflip.dev/taskrace/pkg/settings"
)

func addSettings(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				w := printers.Output()
				_, _ = fmt.Fprintf(w, "path:            %s\n", s.Settings.Path())
				_, _ = fmt.Fprintf(w, "backend:         %s\n", s.Settings.Backend())
				_, _ = fmt.Fprintf(w, "profile:         %s\n", s.Settings.Profile())
				_, _ = fmt.Fprintf(w, "global_ordering: %t\n", s.Settings.GetBool(settings.KeyGlobalOrdering))
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "global-ordering <on|off>",
		Short: "Sort day lists by the global item order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseSwitch(args[0])
			if err != nil {
				return err
			}
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				if err := s.Settings.SetBool(settings.KeyGlobalOrdering, on); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(printers.Output(), "global_ordering: %t\n", on)
				return nil
			})
		},
	})

	topLevel.AddCommand(cmd)
}

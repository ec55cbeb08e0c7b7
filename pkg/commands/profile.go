package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/runner/profile"
)

func addProfile(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles"},
		Short:   "List and switch between profiles, each with its own data",
		Example: `
taskrace profile
taskrace profile add Kids
taskrace profile use Kids
taskrace profile rename Kids Family
`,
		Args: cobra.NoArgs,
		RunE: runProfile(profile.List, 0),
	}
	options.AddOutputArg(cmd, oo)

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a profile",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runProfile(profile.Add, 1),
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "use <name>",
		Aliases: []string{"switch"},
		Short:   "Switch to a profile",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runProfile(profile.Use, 1),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename <name> <new name>",
		Short: "Rename a profile, moving its data",
		Args:  cobra.ExactArgs(2),
		RunE:  runProfile(profile.Rename, 2),
	})
	purge := false
	remove := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a profile, keeping its data unless --purge is given",
		Args:    cobra.MinimumNArgs(1),
		RunE: runProfile(profile.Remove, 1, func(r *profile.Profile) {
			r.Purge = purge
		}),
	}
	remove.Flags().BoolVar(&purge, "purge", false, "Also delete the profile's data.")
	cmd.AddCommand(remove)

	topLevel.AddCommand(cmd)
}

// runProfile builds a RunE for action. With names == 1 every argument forms
// one name; with 2 the arguments are the old and new names.
func runProfile(action profile.Action, names int, opts ...func(*profile.Profile)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), func(ctx context.Context, s *session) error {
			r := profile.Profile{
				Service:  s.Service,
				Registry: s.Settings,
				Action:   action,
				JSON:     oo.JSON,
			}
			switch names {
			case 1:
				r.Name = strings.Join(args, " ")
			case 2:
				r.Name, r.NewName = args[0], args[1]
			}
			for _, opt := range opts {
				opt(&r)
			}
			return r.Do(ctx)
		})
	}
}

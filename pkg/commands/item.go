package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/runner/item"
)

func addItem(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items", "i"},
		Short:   "Edit the items of a list",
		Long: base80(`Items live on lists. A list is picked with --list: "today" (the default), ` +
			`a date, a template name or a list ID. An item is picked by its number in the ` +
			`printed list, its ID or an ID prefix.`),
		Example: `
taskrace item add Laundry --points 5 --time 45m --list Chores
taskrace item done 2
taskrace item undo 2
taskrace item move 3 1 --list Chores
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addItemAdd(cmd)
	addItemEdit(cmd)
	addItemDelete(cmd)
	addItemMove(cmd)
	addItemComplete(cmd, false)
	addItemComplete(cmd, true)

	topLevel.AddCommand(cmd)
}

func addItemAdd(parent *cobra.Command) {
	lso := &options.ListOptions{}
	io := &options.ItemOptions{}
	so := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				minutes, err := io.Minutes()
				if err != nil {
					return err
				}
				due, err := options.ParseDate(io.Due, time.Now())
				if err != nil {
					return err
				}
				r := item.Add{
					Target:  item.Target{Service: s.Service, List: lso.List, ShowID: so.ShowID},
					Name:    strings.Join(args, " "),
					Points:  io.Points,
					Minutes: minutes,
					Repeats: io.Repeats,
					Due:     due,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddListArgs(cmd, lso)
	options.AddItemArgs(cmd, io)
	options.AddShowIDArgs(cmd, so)
	parent.AddCommand(cmd)
}

func addItemEdit(parent *cobra.Command) {
	lso := &options.ListOptions{}
	io := &options.ItemOptions{}

	cmd := &cobra.Command{
		Use:   "edit <item>",
		Short: "Change an item",
		Example: `
taskrace item edit 2 --name "Fold laundry" --points 3
taskrace item edit 1 --due 3/1 --list Errands
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := item.Edit{
					Target:   item.Target{Service: s.Service, List: lso.List, Item: args[0]},
					Name:     io.Name,
					ClearDue: io.ClearDue,
				}
				flags := cmd.Flags()
				if flags.Changed("points") {
					r.Points = &io.Points
				}
				if flags.Changed("time") {
					minutes, err := io.Minutes()
					if err != nil {
						return err
					}
					r.Minutes = &minutes
				}
				if flags.Changed("repeats") {
					r.Repeats = &io.Repeats
				}
				due, err := options.ParseDate(io.Due, time.Now())
				if err != nil {
					return err
				}
				r.Due = due
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&io.Name, "name", "", "New name.")
	options.AddListArgs(cmd, lso)
	options.AddItemArgs(cmd, io)
	options.AddClearDueArg(cmd, io)
	parent.AddCommand(cmd)
}

func addItemDelete(parent *cobra.Command) {
	lso := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "delete <item>",
		Aliases: []string{"rm"},
		Short:   "Remove an item from a list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := item.Delete{
					Target: item.Target{Service: s.Service, List: lso.List, Item: args[0]},
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddListArgs(cmd, lso)
	parent.AddCommand(cmd)
}

func addItemMove(parent *cobra.Command) {
	lso := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:   "move <item> <position>",
		Short: "Move an item to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := item.Move{
					Target: item.Target{Service: s.Service, List: lso.List, Item: args[0]},
					To:     to,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddListArgs(cmd, lso)
	parent.AddCommand(cmd)
}

func addItemComplete(parent *cobra.Command, undo bool) {
	lso := &options.ListOptions{}
	count := 1

	use, short, aliases := "done <item>", "Complete an item and earn its points", []string{"complete"}
	if undo {
		use, short, aliases = "undo <item>", "Reopen a completed item and give its points back", []string{"uncomplete"}
	}

	cmd := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := item.Complete{
					Target: item.Target{Service: s.Service, List: lso.List, Item: args[0]},
					Count:  count,
					Undo:   undo,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddListArgs(cmd, lso)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "How many times it was done.")
	parent.AddCommand(cmd)
}

func addOrder(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "order [item]...",
		Short: "Show or set the global order of template items",
		Long: base80("With no arguments, prints the items of every regular template in global order. " +
			"With items, those come first in the order given. Global ordering is applied to day " +
			"lists when the global_ordering setting is on."),
		Example: `
taskrace order
taskrace order 3 1 2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := item.Order{Service: s.Service, IDs: args, ShowID: io.ShowID}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

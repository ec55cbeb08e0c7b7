package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/runner/shop"
)

func addStore(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "store",
		Aliases: []string{"shop", "rewards"},
		Short:   "Show the rewards that points can buy",
		Example: `
taskrace store
taskrace store add Ice cream --price 20
taskrace store buy "Ice cream"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := shop.List{Service: s.Service, ShowID: io.ShowID, JSON: oo.JSON}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	addStoreAdd(cmd)
	addStoreEdit(cmd)
	addStoreBuy(cmd)

	topLevel.AddCommand(cmd)
}

func addStoreAdd(parent *cobra.Command) {
	price := 1

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a reward",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := shop.Add{
					List:   shop.List{Service: s.Service},
					Name:   strings.Join(args, " "),
					Points: price,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().IntVar(&price, "price", 1, "Points the reward costs.")
	parent.AddCommand(cmd)
}

func addStoreEdit(parent *cobra.Command) {
	var (
		name  string
		price int
	)

	cmd := &cobra.Command{
		Use:   "edit <reward>",
		Short: "Rename or reprice a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := shop.Edit{List: shop.List{Service: s.Service}, Ref: args[0], Name: name}
				if cmd.Flags().Changed("price") {
					r.Points = &price
				}
				return r.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name.")
	cmd.Flags().IntVar(&price, "price", 0, "New price.")
	parent.AddCommand(cmd)

	parent.AddCommand(&cobra.Command{
		Use:   "move <reward> <position>",
		Short: "Move a reward to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := shop.Edit{List: shop.List{Service: s.Service}, Ref: args[0], MoveTo: &to}
				return r.Do(ctx)
			})
		},
	})

	parent.AddCommand(&cobra.Command{
		Use:     "delete <reward>",
		Aliases: []string{"rm"},
		Short:   "Remove a reward",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := shop.Edit{List: shop.List{Service: s.Service}, Ref: args[0], Delete: true}
				return r.Do(ctx)
			})
		},
	})
}

func addStoreBuy(parent *cobra.Command) {
	count := 1

	cmd := &cobra.Command{
		Use:     "buy <reward>",
		Aliases: []string{"purchase"},
		Short:   "Spend points on a reward",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := shop.Buy{
					List:  shop.List{Service: s.Service, JSON: oo.JSON},
					Ref:   strings.Join(args, " "),
					Count: count,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "How many to buy.")
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

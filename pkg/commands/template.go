package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/commands/options"
	"tableflip.dev/taskrace/pkg/runner/template"
)

func addTemplate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "t"},
		Short:   "Manage the recurring checklists",
		Example: `
taskrace template add Chores --days weekdays
taskrace template list
taskrace template days Chores mon wed fri
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTemplateList(cmd)
	addTemplateAdd(cmd)
	addTemplateEdit(cmd)

	topLevel.AddCommand(cmd)
}

func addTemplateList(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:               "list [template]",
		Aliases:           []string{"ls", "show"},
		Short:             "List templates, or the items of one template",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := template.List{
					Service: s.Service,
					Ref:     strings.Join(args, " "),
					ShowID:  io.ShowID,
					JSON:    oo.JSON,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTemplateAdd(parent *cobra.Command) {
	var (
		days    string
		anytime bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a template",
		Example: `
taskrace template add Morning routine --days every
taskrace template add Errands --anytime --days weekend
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, s *session) error {
				r := template.Add{
					Service: s.Service,
					Name:    strings.Join(args, " "),
					Days:    days,
					Anytime: anytime,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&days, "days", "", `Days it is scheduled on, example: --days="mon,wed" or --days=weekdays.`)
	cmd.Flags().BoolVar(&anytime, "anytime", false, "Show the template beside day lists instead of merging it in.")
	parent.AddCommand(cmd)
}

func addTemplateEdit(parent *cobra.Command) {
	edit := func(use, short string, args cobra.PositionalArgs, apply func(e *template.Edit, args []string) error) *cobra.Command {
		return &cobra.Command{
			Use:               use,
			Short:             short,
			Args:              args,
			ValidArgsFunction: templateCompletions,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), func(ctx context.Context, s *session) error {
					e := &template.Edit{Service: s.Service, Ref: args[0]}
					if err := apply(e, args[1:]); err != nil {
						return err
					}
					return e.Do(ctx)
				})
			},
		}
	}

	parent.AddCommand(edit("rename <template> <name>", "Rename a template", cobra.MinimumNArgs(2),
		func(e *template.Edit, args []string) error {
			e.Rename = strings.Join(args, " ")
			return nil
		}))

	parent.AddCommand(edit("days <template> <days>", "Set the days a template is scheduled on", cobra.MinimumNArgs(2),
		func(e *template.Edit, args []string) error {
			e.Days = strings.Join(args, ",")
			return nil
		}))

	parent.AddCommand(edit("toggle <template> <day>...", "Toggle days on or off", cobra.MinimumNArgs(2),
		func(e *template.Edit, args []string) error {
			e.Toggle = strings.Join(args, ",")
			return nil
		}))

	anytime := edit("anytime <template> [on|off]", "Move a template to or from the anytime section", cobra.RangeArgs(1, 2),
		func(e *template.Edit, args []string) error {
			on := true
			if len(args) == 1 {
				v, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				on = v
			}
			e.Anytime = &on
			return nil
		})
	parent.AddCommand(anytime)

	parent.AddCommand(edit("move <template> <position>", "Move a template within its section", cobra.ExactArgs(2),
		func(e *template.Edit, args []string) error {
			to, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}
			e.MoveTo = &to
			return nil
		}))

	del := edit("delete <template>", "Delete a template", cobra.ExactArgs(1),
		func(e *template.Edit, _ []string) error {
			e.Delete = true
			return nil
		})
	del.Aliases = []string{"rm"}
	parent.AddCommand(del)
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "yes", "true":
		return true, nil
	case "off", "no", "false":
		return false, nil
	}
	return false, errors.New(`expected "on" or "off"`)
}

package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/taskrace/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
	lo = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "taskrace",
		Short: base.Wrap80("Recurring checklists that earn points, on the command line."),
		Long: base.Wrap80("Templates are checklists scheduled on days of the week. " +
			"Each day gets its own list, merged from the templates scheduled that day. " +
			"Completing items earns points to spend in the store."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, lo)
	AddCommands(cmd)
	return cmd
}

func base80(text string) string {
	return base.Wrap80(text)
}

func AddCommands(topLevel *cobra.Command) {
	addToday(topLevel)
	addTemplate(topLevel)
	addItem(topLevel)
	addOrder(topLevel)
	addStore(topLevel)
	addPoints(topLevel)
	addReport(topLevel)
	addDays(topLevel)
	addProfile(topLevel)
	addSettings(topLevel)
	addWatch(topLevel)
	addCheck(topLevel)
	addRemind(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/timeutil"
)

// ItemOptions carries the editable fields of an item.
type ItemOptions struct {
	Name     string
	Points   int
	Duration string
	Repeats  bool
	Due      string
	ClearDue bool
}

func AddItemArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().IntVarP(&o.Points, "points", "p", 1,
		"Points earned for completing the item.")
	cmd.Flags().StringVarP(&o.Duration, "time", "t", "",
		`Estimated time, example: --time=45m or --time=1h30m.`)
	cmd.Flags().BoolVar(&o.Repeats, "repeats", false,
		"The item can be completed any number of times.")
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Due date, example: --due="2020-2-28" or --due="2/28".`)
}

func AddClearDueArg(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().BoolVar(&o.ClearDue, "clear-due", false,
		"Remove the due date.")
}

// Minutes parses the time estimate.
func (o *ItemOptions) Minutes() (int, error) {
	return timeutil.ParseMinutes(o.Duration)
}

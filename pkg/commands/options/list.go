package options

import (
	"github.com/spf13/cobra"
)

// ListOptions selects the list an item command works on.
type ListOptions struct {
	List string
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.List, "list", "l", "today",
		`The list to work on: "today", a date, a template name or a list ID.`)
}

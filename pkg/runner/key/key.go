// Package key provides CLI helpers to display the checklist legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/taskrace/pkg/printers"
)

type mark struct {
	Symbol  string
	Meaning string
}

var marks = []mark{
	{"[ ]", "open item"},
	{"[x]", "completed item"},
	{"[~]", "repeating item, completes any number of times"},
	{"due", "due date, red once it has passed"},
	{"N.", "position, accepted wherever an item is expected"},
}

// Key prints the legend for checklist output.
type Key struct {
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	w := k.Out
	if w == nil {
		w = printers.Output()
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mark"), bold.Sprint("Meaning"))
	for _, m := range marks {
		tbl.AddRow(m.Symbol, m.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")
	return nil
}

// Package today provides the runner that shows a materialized day.
package today

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/printers"
	"tableflip.dev/taskrace/pkg/todo"
)

// Today materializes the list for a date and prints it along with the
// anytime lists that apply and anything past due.
type Today struct {
	Service *app.Service
	On      *calendar.Date
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

type result struct {
	Date    calendar.Date     `json:"date"`
	List    *todo.List        `json:"list"`
	Anytime []app.AnytimeList `json:"anytime"`
	PastDue []app.PastDueItem `json:"past_due"`
}

// Do runs the materialization and prints the day.
func (n *Today) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show today, no service")
	}
	today := n.Service.Today()
	d := today
	if n.On != nil {
		d = *n.On
	}

	list, err := n.Service.ListForDate(ctx, d)
	if err != nil {
		return err
	}
	anytime, err := n.Service.AnytimeLists(ctx, d)
	if err != nil {
		return err
	}
	pastDue, err := n.Service.PastDueItems(ctx)
	if err != nil {
		return err
	}

	if n.JSON {
		return printers.JSON(n.Out, result{Date: d, List: list, Anytime: anytime, PastDue: pastDue})
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Day(d, today, list, anytime, pastDue)
	return nil
}

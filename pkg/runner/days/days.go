// Package days provides runners that look back over past days.
package days

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/printers"
)

// Days lists the days that have lists. With Unfinished it instead lists the
// past days that still have open items, from Since on.
type Days struct {
	Service    *app.Service
	Unfinished bool
	Since      *calendar.Date
	ShowID     bool
	JSON       bool
	Out        io.Writer
}

// Do prints the days.
func (n *Days) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list days, no service")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.Unfinished {
		var since calendar.Date
		if n.Since != nil {
			since = *n.Since
		}
		open, err := n.Service.Unfinished(ctx, since)
		if err != nil {
			return err
		}
		if n.JSON {
			return printers.JSON(n.Out, open)
		}
		pp.Unfinished(n.Service.Today(), open...)
		return nil
	}

	days, err := n.Service.Days(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, days)
	}
	pp.Days(days...)
	return nil
}

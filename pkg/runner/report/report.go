// Package report provides the runner for the points report.
package report

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/printers"
	"tableflip.dev/taskrace/pkg/timeutil"
)

// Report prints the points earned and spent over a trailing window, and
// optionally a month grid of the days that earned points.
type Report struct {
	Service *app.Service
	Last    string
	Month   bool
	JSON    bool
	Out     io.Writer
}

// Do builds and prints the report.
func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	window, label, err := timeutil.ParseWindow(n.Last)
	if err != nil {
		return err
	}
	until := n.Service.Now()
	result, err := n.Service.Report(ctx, until.Add(-window), until)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, result)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.Month {
		history, err := n.Service.History(ctx)
		if err != nil {
			return err
		}
		pp.Month(until, history...)
	}
	pp.Report(result, label)
	return nil
}

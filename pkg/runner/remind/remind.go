// Package remind provides the runner that sends a reminder about what is left
// to do today.
package remind

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/notify"
)

type Remind struct {
	Service  *app.Service
	Notifier notify.Notifier
	// Always sends the reminder even when nothing is left.
	Always bool
	Out    io.Writer
}

// Do materializes today's list, counts what is still open and notifies.
func (n *Remind) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remind, no service")
	}
	list, err := n.Service.TodayList(ctx)
	if err != nil {
		return err
	}
	open := 0
	for _, it := range list.Items {
		if !it.Completed {
			open++
		}
	}
	pastDue, err := n.Service.PastDueItems(ctx)
	if err != nil {
		return err
	}
	points, err := n.Service.Points(ctx)
	if err != nil {
		return err
	}

	title, msg := notify.FormatReminder(open, len(pastDue), points)
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, msg)
	if open == 0 && len(pastDue) == 0 && !n.Always {
		return nil
	}
	notifier := n.Notifier
	if notifier == nil {
		notifier = notify.Desktop{}
	}
	if err := notifier.Notify(title, msg); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// Package watch provides the runner that streams store changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/printers"
	"tableflip.dev/taskrace/pkg/store"
)

// Watch prints a line for every change to the store until ctx is done.
type Watch struct {
	Service *app.Service
	JSON    bool
	Log     *log.Logger
	Out     io.Writer
}

// Do blocks until ctx is cancelled or the event stream ends.
func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not watch, no service")
	}
	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	if n.Log != nil {
		n.Log.Info("watching for changes")
	}
	w := n.Out
	if w == nil {
		w = printers.Output()
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := n.print(w, ev); err != nil {
				return err
			}
		}
	}
}

func (n *Watch) print(w io.Writer, ev store.Event) error {
	if n.JSON {
		return printers.JSON(w, struct {
			Type       string `json:"type"`
			Collection string `json:"collection,omitempty"`
		}{ev.Type.String(), ev.Collection})
	}
	if ev.Collection == "" {
		_, err := fmt.Fprintln(w, ev.Type)
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s\n", ev.Type, ev.Collection)
	return err
}

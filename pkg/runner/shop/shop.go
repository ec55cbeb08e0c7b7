// Package shop provides runners for the points store.
package shop

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/printers"
	"tableflip.dev/taskrace/pkg/todo"
)

// List prints the rewards and the balance.
type List struct {
	Service *app.Service
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

// Do prints the store.
func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list store, no service")
	}
	items, err := n.Service.StoreItems(ctx)
	if err != nil {
		return err
	}
	points, err := n.Service.Points(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, struct {
			Points int               `json:"points"`
			Items  []*todo.StoreItem `json:"items"`
		}{points, items})
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.StoreItems(points, items...)
	return nil
}

// Add creates a reward.
type Add struct {
	List
	Name   string
	Points int
}

// Do adds the reward and reprints the store.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add reward, no service")
	}
	if _, err := n.Service.AddStoreItem(ctx, n.Name, n.Points); err != nil {
		return err
	}
	return n.List.Do(ctx)
}

// Edit changes, moves or deletes a reward.
type Edit struct {
	List
	Ref    string
	Name   string
	Points *int
	MoveTo *int
	Delete bool
}

// Do applies the edit and reprints the store.
func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit reward, no service")
	}
	si, err := n.Service.FindStoreItem(ctx, n.Ref)
	if err != nil {
		return err
	}
	switch {
	case n.Delete:
		if err := n.Service.DeleteStoreItem(ctx, si.ID); err != nil {
			return err
		}
	case n.MoveTo != nil:
		if err := n.Service.MoveStoreItem(ctx, si.Position, *n.MoveTo-1); err != nil {
			return err
		}
	default:
		if n.Name != "" {
			si.Name = n.Name
		}
		if n.Points != nil {
			si.Points = *n.Points
		}
		if _, err := n.Service.UpdateStoreItem(ctx, si); err != nil {
			return err
		}
	}
	return n.List.Do(ctx)
}

// Buy purchases a reward.
type Buy struct {
	List
	Ref   string
	Count int
}

// Do makes the purchase and prints the new balance.
func (n *Buy) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not buy, no service")
	}
	si, err := n.Service.FindStoreItem(ctx, n.Ref)
	if err != nil {
		return err
	}
	h, err := n.Service.Purchase(ctx, si.ID, n.Count)
	if err != nil {
		return err
	}
	points, err := n.Service.Points(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, struct {
			Purchase *todo.HistoryItem `json:"purchase"`
			Points   int               `json:"points"`
		}{h, points})
	}
	w := n.Out
	if w == nil {
		w = printers.Output()
	}
	_, _ = fmt.Fprintf(w, "Bought %s for %d points.\n", h.Name, -h.Points)
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Points(points)
	return nil
}

// History prints the balance changes, newest first.
type History struct {
	Service *app.Service
	Limit   int
	JSON    bool
	Out     io.Writer
}

// Do prints the history.
func (n *History) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show history, no service")
	}
	items, err := n.Service.History(ctx)
	if err != nil {
		return err
	}
	if n.Limit > 0 && len(items) > n.Limit {
		items = items[:n.Limit]
	}
	if n.JSON {
		return printers.JSON(n.Out, items)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.History(items...)
	return nil
}

// Package item provides runners that edit the items of a list.
package item

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/printers"
	"tableflip.dev/taskrace/pkg/todo"
)

// Target names a list ("today", a date, a template or a list ID) and
// optionally one item on it (an ID, an ID prefix or a 1-based index).
type Target struct {
	Service *app.Service
	List    string
	Item    string
	ShowID  bool
	Out     io.Writer
}

func (t *Target) resolve(ctx context.Context) (*todo.List, *todo.Item, int, error) {
	if t.Service == nil {
		return nil, nil, -1, errors.New("can not edit items, no service")
	}
	l, err := t.Service.ResolveList(ctx, t.List)
	if err != nil {
		return nil, nil, -1, err
	}
	if t.Item == "" {
		return l, nil, -1, nil
	}
	it, idx, ok := l.Find(t.Item)
	if !ok {
		return nil, nil, -1, fmt.Errorf("%w: item %q", app.ErrNotFound, t.Item)
	}
	return l, it, idx, nil
}

func (t *Target) print(ctx context.Context, listID string) error {
	l, err := t.Service.List(ctx, listID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: t.ShowID, Out: t.Out}
	pp.TitleWithCount(t.title(), len(l.Items), "item")
	pp.Items(t.Service.Today(), l.Items...)
	return nil
}

func (t *Target) title() string {
	if t.List == "" {
		return "today"
	}
	return t.List
}

// Add appends an item to the target list.
type Add struct {
	Target
	Name    string
	Points  int
	Minutes int
	Repeats bool
	Due     *calendar.Date
}

// Do adds the item and reprints the list.
func (n *Add) Do(ctx context.Context) error {
	l, _, _, err := n.resolve(ctx)
	if err != nil {
		return err
	}
	it, err := n.Service.AddItem(ctx, l.ID, n.Name, n.Points, n.Minutes)
	if err != nil {
		return err
	}
	if n.Repeats || n.Due != nil {
		it.Repeats = n.Repeats
		it.DueDate = n.Due
		if _, err := n.Service.UpdateItem(ctx, l.ID, it); err != nil {
			return err
		}
	}
	return n.print(ctx, l.ID)
}

// Edit changes the fields of one item that are set.
type Edit struct {
	Target
	Name     string
	Points   *int
	Minutes  *int
	Repeats  *bool
	Due      *calendar.Date
	ClearDue bool
}

// Do applies the edit and reprints the list.
func (n *Edit) Do(ctx context.Context) error {
	l, it, _, err := n.resolve(ctx)
	if err != nil {
		return err
	}
	if it == nil {
		return errors.New("requires an item")
	}
	if n.Name != "" {
		it.Name = n.Name
	}
	if n.Points != nil {
		it.Points = *n.Points
	}
	if n.Minutes != nil {
		it.Minutes = *n.Minutes
	}
	if n.Repeats != nil {
		it.Repeats = *n.Repeats
	}
	if n.Due != nil {
		it.DueDate = n.Due
	}
	if n.ClearDue {
		it.DueDate = nil
	}
	if _, err := n.Service.UpdateItem(ctx, l.ID, it); err != nil {
		return err
	}
	return n.print(ctx, l.ID)
}

// Delete removes one item.
type Delete struct {
	Target
}

// Do removes the item and reprints the list.
func (n *Delete) Do(ctx context.Context) error {
	l, it, _, err := n.resolve(ctx)
	if err != nil {
		return err
	}
	if it == nil {
		return errors.New("requires an item")
	}
	if err := n.Service.DeleteItem(ctx, l.ID, it.ID); err != nil {
		return err
	}
	return n.print(ctx, l.ID)
}

// Move moves one item to a 1-based position.
type Move struct {
	Target
	To int
}

// Do moves the item and reprints the list.
func (n *Move) Do(ctx context.Context) error {
	l, it, idx, err := n.resolve(ctx)
	if err != nil {
		return err
	}
	if it == nil {
		return errors.New("requires an item")
	}
	if _, err := n.Service.MoveItem(ctx, l.ID, idx, n.To-1); err != nil {
		return err
	}
	return n.print(ctx, l.ID)
}

// Complete checks an item off, or back on when Undo is set, adjusting the
// points balance.
type Complete struct {
	Target
	Count int
	Undo  bool
}

// Do updates the item and reprints the list and balance.
func (n *Complete) Do(ctx context.Context) error {
	l, it, _, err := n.resolve(ctx)
	if err != nil {
		return err
	}
	if it == nil {
		return errors.New("requires an item")
	}
	if _, err := n.Service.SetItemCompleted(ctx, l.ID, it.ID, !n.Undo, n.Count); err != nil {
		return err
	}
	if err := n.print(ctx, l.ID); err != nil {
		return err
	}
	points, err := n.Service.Points(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Points(points)
	return nil
}

// Order assigns the global order of the regular template items. With no
// IDs it prints the current order.
type Order struct {
	Service *app.Service
	IDs     []string
	ShowID  bool
	Out     io.Writer
}

// Do applies the order and prints the result.
func (n *Order) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not order items, no service")
	}
	if len(n.IDs) > 0 {
		current, err := n.Service.RegularTemplateItems(ctx)
		if err != nil {
			return err
		}
		l := &todo.List{Items: current}
		ids := make([]string, 0, len(n.IDs))
		for _, ref := range n.IDs {
			it, _, ok := l.Find(ref)
			if !ok {
				return fmt.Errorf("%w: item %q", app.ErrNotFound, ref)
			}
			ids = append(ids, it.ID)
		}
		if err := n.Service.OrderItems(ctx, ids); err != nil {
			return err
		}
	}
	items, err := n.Service.RegularTemplateItems(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.TitleWithCount("Global order", len(items), "item")
	pp.Items(n.Service.Today(), items...)
	return nil
}

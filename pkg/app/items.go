package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/store"
	"tableflip.dev/taskrace/pkg/todo"
)

// AddItem appends a new item to a list.
func (s *Service) AddItem(ctx context.Context, listID, name string, points, minutes int) (*todo.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("app: item name required")
	}
	if minutes < 0 {
		return nil, fmt.Errorf("%w: negative minutes %d", ErrInvalid, minutes)
	}
	var out *todo.Item
	_, err := s.updateList(ctx, listID, func(l *todo.List) error {
		out = todo.NewItem(name, len(l.Items))
		out.Points = points
		out.Minutes = minutes
		l.Append(out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItem replaces the editable fields of the item with the same ID.
// Completion is changed only through SetItemCompleted so the points balance
// stays consistent.
func (s *Service) UpdateItem(ctx context.Context, listID string, item *todo.Item) (*todo.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("app: item name required")
	}
	if item.Minutes < 0 {
		return nil, fmt.Errorf("%w: negative minutes %d", ErrInvalid, item.Minutes)
	}
	var out *todo.Item
	_, err := s.updateList(ctx, listID, func(l *todo.List) error {
		it, ok := l.Item(item.ID)
		if !ok {
			return notFound("item", item.ID)
		}
		it.Name = item.Name
		it.Points = item.Points
		it.Minutes = item.Minutes
		it.Repeats = item.Repeats
		it.DueDate = item.DueDate
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteItem removes an item and renumbers the rest.
func (s *Service) DeleteItem(ctx context.Context, listID, itemID string) error {
	_, err := s.updateList(ctx, listID, func(l *todo.List) error {
		if !l.Remove(itemID) {
			return notFound("item", itemID)
		}
		l.Renumber()
		return nil
	})
	return err
}

// MoveItem moves the item at index from to index to.
func (s *Service) MoveItem(ctx context.Context, listID string, from, to int) (*todo.List, error) {
	return s.updateList(ctx, listID, func(l *todo.List) error {
		return l.Move(from, to)
	})
}

// SetDueDate sets or, with nil, clears an item's due date.
func (s *Service) SetDueDate(ctx context.Context, listID, itemID string, due *calendar.Date) (*todo.Item, error) {
	var out *todo.Item
	_, err := s.updateList(ctx, listID, func(l *todo.List) error {
		it, ok := l.Item(itemID)
		if !ok {
			return notFound("item", itemID)
		}
		it.DueDate = due
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegularTemplateItems returns the items of every regular template in their
// global order: by position, ties broken by template order.
func (s *Service) RegularTemplateItems(ctx context.Context) ([]*todo.Item, error) {
	var out []*todo.Item
	err := s.view(ctx, func(tx store.Tx) error {
		_, items, err := regularItems(tx)
		out = items
		return err
	})
	return out, err
}

// OrderItems assigns global positions across the regular template lists.
// The items named by ids come first, in that order; the rest follow in
// their current order.
func (s *Service) OrderItems(ctx context.Context, ids []string) error {
	return s.update(ctx, func(tx store.Tx) error {
		lists, items, err := regularItems(tx)
		if err != nil {
			return err
		}
		ordered := make([]*todo.Item, 0, len(items))
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			idx := slices.IndexFunc(items, func(it *todo.Item) bool { return it.ID == id })
			if idx < 0 {
				return notFound("item", id)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ordered = append(ordered, items[idx])
		}
		for _, it := range items {
			if !seen[it.ID] {
				ordered = append(ordered, it)
			}
		}
		for i, it := range ordered {
			it.Position = i
		}
		for _, l := range lists {
			l.SortByPosition()
			if err := putList(tx, l); err != nil {
				return err
			}
		}
		return nil
	})
}

func regularItems(tx store.Tx) ([]*todo.List, []*todo.Item, error) {
	regular, _, err := templateSections(tx)
	if err != nil {
		return nil, nil, err
	}
	var (
		lists []*todo.List
		items []*todo.Item
	)
	for _, t := range regular {
		if t.ListID == "" {
			continue
		}
		l, err := templateList(tx, t)
		if err != nil {
			return nil, nil, err
		}
		lists = append(lists, l)
		items = append(items, l.Items...)
	}
	slices.SortStableFunc(items, func(a, b *todo.Item) int { return a.Position - b.Position })
	return lists, items, nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"tableflip.dev/taskrace/pkg/store"
	"tableflip.dev/taskrace/pkg/todo"
)

// Points returns the current balance.
func (s *Service) Points(ctx context.Context) (int, error) {
	var out int
	err := s.view(ctx, func(tx store.Tx) error {
		n, err := balance(tx)
		out = n
		return err
	})
	return out, err
}

// SetItemCompleted marks an item done or not done and moves count times its
// points into or out of the balance, recording the change in the history.
// Completing a repeating item awards points without checking it off.
// Setting the state an item already has does nothing.
func (s *Service) SetItemCompleted(ctx context.Context, listID, itemID string, completed bool, count int) (*todo.Item, error) {
	if count < 1 {
		count = 1
	}
	now := s.clock().Now()
	var out *todo.Item
	err := s.update(ctx, func(tx store.Tx) error {
		l, err := getList(tx, listID)
		if err != nil {
			return err
		}
		it, ok := l.Item(itemID)
		if !ok {
			return notFound("item", itemID)
		}
		out = it
		if it.Completed == completed {
			if !completed || !it.Repeats {
				return nil
			}
		}
		delta := count * it.Points
		if !completed {
			delta = -delta
		}
		if !it.Repeats || !completed {
			it.Completed = completed
		}
		if err := putList(tx, l); err != nil {
			return err
		}
		return record(tx, todo.NewHistoryItem(it.Name, delta, count, now))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StoreItems returns the rewards in position order.
func (s *Service) StoreItems(ctx context.Context) ([]*todo.StoreItem, error) {
	var out []*todo.StoreItem
	err := s.view(ctx, func(tx store.Tx) error {
		items, err := storeItems(tx)
		out = items
		return err
	})
	return out, err
}

// FindStoreItem resolves an ID, a unique ID prefix, a case-insensitive name
// or a 1-based index to a reward.
func (s *Service) FindStoreItem(ctx context.Context, ref string) (*todo.StoreItem, error) {
	ref = strings.TrimSpace(ref)
	items, err := s.StoreItems(ctx)
	if err != nil {
		return nil, err
	}
	list := &todo.List{}
	for _, si := range items {
		if strings.EqualFold(si.Name, ref) {
			return si, nil
		}
		list.Append(&todo.Item{ID: si.ID})
	}
	if _, idx, ok := list.Find(ref); ok {
		return items[idx], nil
	}
	return nil, notFound("reward", ref)
}

// AddStoreItem adds a reward at the end of the store.
func (s *Service) AddStoreItem(ctx context.Context, name string, points int) (*todo.StoreItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("app: reward name required")
	}
	if points < 0 {
		return nil, fmt.Errorf("%w: negative price %d", ErrInvalid, points)
	}
	var out *todo.StoreItem
	err := s.update(ctx, func(tx store.Tx) error {
		items, err := storeItems(tx)
		if err != nil {
			return err
		}
		out = todo.NewStoreItem(name, points, len(items))
		return tx.Put(todo.CollectionStore, out.ID, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStoreItem replaces the name and price of the reward with the same ID.
func (s *Service) UpdateStoreItem(ctx context.Context, item *todo.StoreItem) (*todo.StoreItem, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("app: reward name required")
	}
	if item.Points < 0 {
		return nil, fmt.Errorf("%w: negative price %d", ErrInvalid, item.Points)
	}
	var out *todo.StoreItem
	err := s.update(ctx, func(tx store.Tx) error {
		cur, err := getStoreItem(tx, item.ID)
		if err != nil {
			return err
		}
		cur.Name = item.Name
		cur.Points = item.Points
		out = cur
		return tx.Put(todo.CollectionStore, cur.ID, cur)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteStoreItem removes a reward and renumbers the rest.
func (s *Service) DeleteStoreItem(ctx context.Context, id string) error {
	return s.update(ctx, func(tx store.Tx) error {
		items, err := storeItems(tx)
		if err != nil {
			return err
		}
		n := len(items)
		items = slices.DeleteFunc(items, func(si *todo.StoreItem) bool { return si.ID == id })
		if len(items) == n {
			return notFound("reward", id)
		}
		if err := tx.Delete(todo.CollectionStore, id); err != nil {
			return err
		}
		return renumberStore(tx, items)
	})
}

// MoveStoreItem moves the reward at index from to index to.
func (s *Service) MoveStoreItem(ctx context.Context, from, to int) error {
	return s.update(ctx, func(tx store.Tx) error {
		items, err := storeItems(tx)
		if err != nil {
			return err
		}
		n := len(items)
		if from < 0 || from >= n || to < 0 || to >= n {
			return fmt.Errorf("app: move %d -> %d out of range for %d rewards", from, to, n)
		}
		si := items[from]
		items = slices.Delete(items, from, from+1)
		items = slices.Insert(items, to, si)
		return renumberStore(tx, items)
	})
}

// Purchase buys count of a reward. The balance never goes negative.
func (s *Service) Purchase(ctx context.Context, id string, count int) (*todo.HistoryItem, error) {
	if count < 1 {
		count = 1
	}
	now := s.clock().Now()
	var out *todo.HistoryItem
	err := s.update(ctx, func(tx store.Tx) error {
		si, err := getStoreItem(tx, id)
		if err != nil {
			return err
		}
		have, err := balance(tx)
		if err != nil {
			return err
		}
		cost := count * si.Points
		if cost > have {
			return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientPoints, si.Name, cost, have)
		}
		out = todo.NewHistoryItem(si.Name, -cost, count, now)
		return record(tx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// History returns the balance changes, newest first.
func (s *Service) History(ctx context.Context) ([]*todo.HistoryItem, error) {
	var out []*todo.HistoryItem
	err := s.view(ctx, func(tx store.Tx) error {
		items, err := store.All[todo.HistoryItem](tx, todo.CollectionHistory)
		if err != nil {
			return err
		}
		slices.SortStableFunc(items, func(a, b *todo.HistoryItem) int {
			return b.DateCompleted.Compare(a.DateCompleted)
		})
		out = items
		return nil
	})
	return out, err
}

func balance(tx store.Tx) (int, error) {
	var n int
	if err := tx.Get(todo.CollectionStore, todo.PointsKey, &n); err != nil && !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}
	return n, nil
}

// record applies a history entry's delta to the balance and stores it.
func record(tx store.Tx, h *todo.HistoryItem) error {
	n, err := balance(tx)
	if err != nil {
		return err
	}
	if err := tx.Put(todo.CollectionStore, todo.PointsKey, n+h.Points); err != nil {
		return err
	}
	return tx.Put(todo.CollectionHistory, h.ID, h)
}

func storeItems(tx store.Tx) ([]*todo.StoreItem, error) {
	items, err := store.All[todo.StoreItem](tx, todo.CollectionStore, todo.PointsKey)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b *todo.StoreItem) int { return a.Position - b.Position })
	return items, nil
}

func getStoreItem(tx store.Tx, id string) (*todo.StoreItem, error) {
	si := new(todo.StoreItem)
	if err := tx.Get(todo.CollectionStore, id, si); err != nil {
		if errors.Is(err, store.ErrNotFound) || id == todo.PointsKey {
			return nil, notFound("reward", id)
		}
		return nil, err
	}
	return si, nil
}

func renumberStore(tx store.Tx, items []*todo.StoreItem) error {
	for i, si := range items {
		if si.Position == i {
			continue
		}
		si.Position = i
		if err := tx.Put(todo.CollectionStore, si.ID, si); err != nil {
			return err
		}
	}
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/materialize"
	"tableflip.dev/taskrace/pkg/schedule"
	"tableflip.dev/taskrace/pkg/store"
	"tableflip.dev/taskrace/pkg/todo"
)

// AnytimeList is an anytime template with its outstanding items.
type AnytimeList struct {
	Template *todo.Template
	Items    []*todo.Item
}

// PastDueItem is an outstanding anytime item whose due date has arrived.
type PastDueItem struct {
	Template *todo.Template
	Item     *todo.Item
}

// Day returns the day record for d and its list, creating both if needed.
// Nothing is merged into a newly created list.
func (s *Service) Day(ctx context.Context, d calendar.Date) (*todo.Day, *todo.List, error) {
	var (
		day  *todo.Day
		list *todo.List
	)
	err := s.update(ctx, func(tx store.Tx) error {
		var err error
		day, list, err = loadDay(tx, d)
		if err != nil {
			return err
		}
		if day != nil {
			return nil
		}
		list = todo.NewList()
		day = todo.NewDay(d, list.ID)
		if err := putList(tx, list); err != nil {
			return err
		}
		return tx.Put(todo.CollectionDays, day.ID, day)
	})
	if err != nil {
		return nil, nil, err
	}
	return day, list, nil
}

// Days returns every day that has a list, oldest first.
func (s *Service) Days(ctx context.Context) ([]*todo.Day, error) {
	var out []*todo.Day
	err := s.view(ctx, func(tx store.Tx) error {
		days, err := store.All[todo.Day](tx, todo.CollectionDays)
		if err != nil {
			return err
		}
		slices.SortFunc(days, func(a, b *todo.Day) int { return a.Date.Compare(b.Date) })
		out = days
		return nil
	})
	return out, err
}

// TodayList materializes and returns today's list.
func (s *Service) TodayList(ctx context.Context) (*todo.List, error) {
	return s.ListForDate(ctx, s.Today())
}

// ListForDate merges the templates scheduled on d into the day's list and
// persists the result. The reads, the merge and the single write-back of the
// list happen in one read-write transaction, so a concurrent change to the
// day list can not be lost in between. A template pointing at a missing list
// aborts the call with a *materialize.IntegrityError and nothing is written.
func (s *Service) ListForDate(ctx context.Context, d calendar.Date) (*todo.List, error) {
	opts := materialize.Options{GlobalOrdering: s.globalOrdering()}
	var merged *todo.List
	err := s.update(ctx, func(tx store.Tx) error {
		templates, err := store.All[todo.Template](tx, todo.CollectionTemplates)
		if err != nil {
			return err
		}
		res := schedule.Resolve(d, templates)
		lists := materialize.ListMap{}
		for _, t := range res.Scheduled {
			if t.ListID == "" {
				continue
			}
			l, err := getList(tx, t.ListID)
			switch {
			case errors.Is(err, ErrNotFound):
				// Left out of the map so the merge reports it.
			case err != nil:
				return err
			default:
				lists[l.ID] = l
			}
		}
		day, list, err := loadDay(tx, d)
		if err != nil {
			return err
		}

		created := day == nil
		if created {
			list = todo.NewList()
			day = todo.NewDay(d, list.ID)
		}
		var stats materialize.Stats
		merged, stats, err = materialize.Merge(list, res.Scheduled, lists, opts)
		if err != nil {
			return err
		}
		s.logger().Debug("materialized day list", "date", d, "templates", stats.Templates, "added", stats.Added, "updated", stats.Updated)

		if err := putList(tx, merged); err != nil {
			return err
		}
		if created {
			return tx.Put(todo.CollectionDays, day.ID, day)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// AnytimeLists returns the anytime templates that apply on d, each with its
// incomplete items.
func (s *Service) AnytimeLists(ctx context.Context, d calendar.Date) ([]AnytimeList, error) {
	var out []AnytimeList
	err := s.view(ctx, func(tx store.Tx) error {
		templates, err := store.All[todo.Template](tx, todo.CollectionTemplates)
		if err != nil {
			return err
		}
		for _, t := range schedule.Resolve(d, templates).Anytime {
			entry := AnytimeList{Template: t, Items: []*todo.Item{}}
			if t.ListID != "" {
				l, err := templateList(tx, t)
				if err != nil {
					return err
				}
				entry.Items = l.Incomplete()
			}
			out = append(out, entry)
		}
		return nil
	})
	return out, err
}

// PastDueItems returns the outstanding anytime items due today or earlier,
// latest due date first.
func (s *Service) PastDueItems(ctx context.Context) ([]PastDueItem, error) {
	today := s.Today()
	var out []PastDueItem
	err := s.view(ctx, func(tx store.Tx) error {
		_, anytime, err := templateSections(tx)
		if err != nil {
			return err
		}
		for _, t := range anytime {
			if t.ListID == "" {
				continue
			}
			l, err := templateList(tx, t)
			if err != nil {
				return err
			}
			for _, it := range l.Items {
				if it.PastDue(today) {
					out = append(out, PastDueItem{Template: t, Item: it})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b PastDueItem) int {
		return b.Item.DueDate.Compare(*a.Item.DueDate)
	})
	return out, nil
}

// loadDay returns the day record for d and its list, or nils when the day
// has not been created yet.
func loadDay(tx store.Tx, d calendar.Date) (*todo.Day, *todo.List, error) {
	day := new(todo.Day)
	if err := tx.Get(todo.CollectionDays, d.Key(), day); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	l, err := getList(tx, day.ListID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, &materialize.IntegrityError{Kind: "list", ID: day.ListID, Owner: fmt.Sprintf("day %s", d)}
	}
	if err != nil {
		return nil, nil, err
	}
	return day, l, nil
}

// templateList loads the list a template points at. A dangling reference is
// an integrity violation.
func templateList(tx store.Tx, t *todo.Template) (*todo.List, error) {
	l, err := getList(tx, t.ListID)
	if errors.Is(err, ErrNotFound) {
		return nil, &materialize.IntegrityError{Kind: "list", ID: t.ListID, Owner: fmt.Sprintf("template %q", t.Name)}
	}
	return l, err
}

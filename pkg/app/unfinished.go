package app

import (
	"context"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/store"
	"tableflip.dev/taskrace/pkg/todo"
)

// UnfinishedDay is a past day that still has incomplete items.
type UnfinishedDay struct {
	Day   *todo.Day
	Items []*todo.Item
}

// Unfinished returns the days from since up to yesterday whose lists still
// have incomplete items, oldest first. A zero since covers every day.
func (s *Service) Unfinished(ctx context.Context, since calendar.Date) ([]UnfinishedDay, error) {
	today := s.Today()
	var out []UnfinishedDay
	err := s.view(ctx, func(tx store.Tx) error {
		days, err := store.All[todo.Day](tx, todo.CollectionDays)
		if err != nil {
			return err
		}
		for _, d := range days {
			if !d.Date.Before(today) || (!since.IsZero() && d.Date.Before(since)) {
				continue
			}
			_, l, err := loadDay(tx, d.Date)
			if err != nil {
				return err
			}
			if open := l.Incomplete(); len(open) > 0 {
				out = append(out, UnfinishedDay{Day: d, Items: open})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

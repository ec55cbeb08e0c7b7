// Package schedule decides which templates apply on a given date.
package schedule

import (
	"slices"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/todo"
	"tableflip.dev/taskrace/pkg/weekdays"
)

// Resolution is the outcome of resolving a date against the templates.
type Resolution struct {
	Date calendar.Date
	// Days is the single-day set for Date.
	Days weekdays.Set
	// Scheduled templates are merged into the day list.
	Scheduled []*todo.Template
	// Anytime templates are shown alongside the day list, never merged.
	Anytime []*todo.Template
}

// Resolve partitions templates into those scheduled on d and the anytime
// templates available on d. Both partitions are ordered by position, ties
// broken by ID, regardless of input order. Templates with an empty day set
// never match. Resolve does not modify its inputs.
func Resolve(d calendar.Date, templates []*todo.Template) Resolution {
	r := Resolution{
		Date:      d,
		Days:      d.Weekdays(),
		Scheduled: []*todo.Template{},
		Anytime:   []*todo.Template{},
	}
	for _, t := range templates {
		if t == nil || !t.Days.Overlaps(r.Days) {
			continue
		}
		if t.Anytime {
			r.Anytime = append(r.Anytime, t)
		} else {
			r.Scheduled = append(r.Scheduled, t)
		}
	}
	SortTemplates(r.Scheduled)
	SortTemplates(r.Anytime)
	return r
}

// SortTemplates orders templates by position, then ID.
func SortTemplates(templates []*todo.Template) {
	slices.SortStableFunc(templates, func(a, b *todo.Template) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}

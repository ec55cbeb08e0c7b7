package todo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/timeutil"
)

// Item is a single checklist entry.
//
// ID is the instance identity. Copies made from a template item get a fresh
// ID and remember the logical item they came from in SourceID, which is what
// repeated materializations match on.
type Item struct {
	ID        string         `json:"id"`
	SourceID  string         `json:"source_id,omitempty"`
	Name      string         `json:"name"`
	Points    int            `json:"points"`
	Minutes   int            `json:"minutes,omitempty"`
	Completed bool           `json:"completed"`
	Repeats   bool           `json:"repeats,omitempty"`
	Position  int            `json:"position"`
	DueDate   *calendar.Date `json:"due_date,omitempty"`
}

// NewItem creates an incomplete item with a fresh identity.
func NewItem(name string, position int) *Item {
	return &Item{
		ID:       NewID(),
		Name:     name,
		Position: position,
	}
}

// Origin is the logical identity of the item: the source it was copied from,
// or its own ID when it is an original.
func (i *Item) Origin() string {
	if i.SourceID != "" {
		return i.SourceID
	}
	return i.ID
}

// Copy duplicates the item under a fresh identity that still points at the
// same logical item.
func (i *Item) Copy() *Item {
	cp := *i
	cp.ID = NewID()
	cp.SourceID = i.Origin()
	if i.DueDate != nil {
		due := *i.DueDate
		cp.DueDate = &due
	}
	return &cp
}

// UpdateFrom overwrites the template-owned fields from src. Completion and
// position belong to this instance and are left alone.
func (i *Item) UpdateFrom(src *Item) {
	i.Name = src.Name
	i.Points = src.Points
	i.Minutes = src.Minutes
	i.Repeats = src.Repeats
	if src.DueDate != nil {
		due := *src.DueDate
		i.DueDate = &due
	} else {
		i.DueDate = nil
	}
}

// PastDue reports whether the item is incomplete with a due date on or before
// today.
func (i *Item) PastDue(today calendar.Date) bool {
	return !i.Completed && i.DueDate != nil && !i.DueDate.After(today)
}

// Detail is the short "30m, 5pts" summary shown next to the name.
func (i *Item) Detail() string {
	if m := timeutil.FormatMinutes(i.Minutes); m != "" {
		return fmt.Sprintf("%s, %dpts", m, i.Points)
	}
	return fmt.Sprintf("%dpts", i.Points)
}

// List is an ordered sequence of items owned by a template or a day.
type List struct {
	Schema string  `json:"schema,omitempty"`
	ID     string  `json:"id"`
	Items  []*Item `json:"items"`
}

// NewList returns an empty list with a fresh identity.
func NewList() *List {
	return &List{Schema: CurrentSchema, ID: NewID(), Items: []*Item{}}
}

// Item returns the item with the given instance ID.
func (l *List) Item(id string) (*Item, bool) {
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// IndexOfOrigin returns the index of the first item whose logical identity is
// origin, or -1.
func (l *List) IndexOfOrigin(origin string) int {
	return slices.IndexFunc(l.Items, func(it *Item) bool {
		return it.Origin() == origin
	})
}

// Append adds an item at the end.
func (l *List) Append(it *Item) {
	l.Items = append(l.Items, it)
}

// Remove deletes the item with the given instance ID and reports whether it
// was present.
func (l *List) Remove(id string) bool {
	n := len(l.Items)
	l.Items = slices.DeleteFunc(l.Items, func(it *Item) bool { return it.ID == id })
	return len(l.Items) != n
}

// Move relocates the item at index from to index to and renumbers positions
// so they are contiguous from zero in display order.
func (l *List) Move(from, to int) error {
	n := len(l.Items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("todo: move %d -> %d out of range for %d items", from, to, n)
	}
	it := l.Items[from]
	l.Items = slices.Delete(l.Items, from, from+1)
	l.Items = slices.Insert(l.Items, to, it)
	l.Renumber()
	return nil
}

// Renumber assigns positions 0..n-1 in current order.
func (l *List) Renumber() {
	for i, it := range l.Items {
		it.Position = i
	}
}

// SortByPosition stable-sorts items by ascending position.
func (l *List) SortByPosition() {
	slices.SortStableFunc(l.Items, func(a, b *Item) int {
		return a.Position - b.Position
	})
}

// Incomplete returns the items that are not completed.
func (l *List) Incomplete() []*Item {
	out := make([]*Item, 0, len(l.Items))
	for _, it := range l.Items {
		if !it.Completed {
			out = append(out, it)
		}
	}
	return out
}

// Clone deep-copies the list, keeping identities.
func (l *List) Clone() *List {
	cp := &List{Schema: l.Schema, ID: l.ID, Items: make([]*Item, 0, len(l.Items))}
	for _, it := range l.Items {
		c := *it
		if it.DueDate != nil {
			due := *it.DueDate
			c.DueDate = &due
		}
		cp.Items = append(cp.Items, &c)
	}
	return cp
}

// Find resolves a user-supplied reference to an item: an exact ID, a unique
// ID prefix, or a 1-based index into the list. It returns the item and its
// index.
func (l *List) Find(ref string) (*Item, int, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, -1, false
	}
	for i, it := range l.Items {
		if it.ID == ref {
			return it, i, true
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(l.Items) {
			return l.Items[n-1], n - 1, true
		}
		return nil, -1, false
	}
	found := -1
	for i, it := range l.Items {
		if strings.HasPrefix(it.ID, ref) {
			if found >= 0 {
				return nil, -1, false
			}
			found = i
		}
	}
	if found < 0 {
		return nil, -1, false
	}
	return l.Items[found], found, true
}

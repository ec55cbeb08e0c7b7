// Package materialize merges the item lists of scheduled templates into a
// day list.
package materialize

import (
	"fmt"

	"tableflip.dev/taskrace/pkg/todo"
)

// IntegrityError reports a reference that does not resolve. It means the
// stored data is inconsistent; callers must not recover by skipping.
type IntegrityError struct {
	// Kind is the kind of record that is missing, e.g. "list".
	Kind string
	// ID is the missing record's identity.
	ID string
	// Owner names the record holding the dangling reference.
	Owner string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation: %s %q referenced by %s does not exist", e.Kind, e.ID, e.Owner)
}

// Lists resolves template list IDs.
type Lists interface {
	List(id string) (*todo.List, bool)
}

// ListMap is a Lists backed by a map.
type ListMap map[string]*todo.List

// List implements Lists.
func (m ListMap) List(id string) (*todo.List, bool) {
	l, ok := m[id]
	return l, ok
}

// Options tune a merge.
type Options struct {
	// GlobalOrdering stable-sorts the result by item position.
	GlobalOrdering bool
}

// Stats counts what a merge did.
type Stats struct {
	Templates int
	Added     int
	Updated   int
}

// Merge folds the items of each scheduled template, in the order given, into
// a copy of day. An item already present, matched by its logical identity,
// has its template-owned fields refreshed and keeps its completion state;
// any other item is appended as a copy with a fresh identity. Running Merge
// again on its own output with the same templates adds nothing.
//
// Templates without a list contribute nothing. A list ID that does not
// resolve aborts the merge with an *IntegrityError.
func Merge(day *todo.List, scheduled []*todo.Template, lists Lists, opts Options) (*todo.List, Stats, error) {
	out := day.Clone()
	var stats Stats
	for _, t := range scheduled {
		if t.ListID == "" {
			continue
		}
		src, ok := lists.List(t.ListID)
		if !ok || src == nil {
			return nil, Stats{}, &IntegrityError{Kind: "list", ID: t.ListID, Owner: fmt.Sprintf("template %q", t.Name)}
		}
		stats.Templates++
		for _, item := range src.Items {
			if idx := out.IndexOfOrigin(item.Origin()); idx >= 0 {
				out.Items[idx].UpdateFrom(item)
				stats.Updated++
				continue
			}
			out.Append(item.Copy())
			stats.Added++
		}
	}
	if opts.GlobalOrdering {
		out.SortByPosition()
	}
	return out, stats, nil
}

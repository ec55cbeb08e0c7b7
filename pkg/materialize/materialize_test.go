package materialize

import (
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/taskrace/pkg/todo"
)

func templateWithItems(name string, items ...*todo.Item) (*todo.Template, *todo.List) {
	l := todo.NewList()
	for _, it := range items {
		l.Append(it)
	}
	t := todo.NewTemplate(name, 0)
	t.ListID = l.ID
	return t, l
}

func origins(l *todo.List) []string {
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, it.Origin())
	}
	return out
}

func instanceIDs(l *todo.List) []string {
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestMergeIntoEmptyDay(t *testing.T) {
	laundry := &todo.Item{ID: "laundry", Name: "Laundry", Points: 5}
	tmpl, list := templateWithItems("Chores", laundry)

	day := todo.NewList()
	got, stats, err := Merge(day, []*todo.Template{tmpl}, ListMap{list.ID: list}, Options{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(got.Items))
	}
	item := got.Items[0]
	if item.Name != "Laundry" || item.Points != 5 {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.ID == "laundry" {
		t.Fatalf("day item reused the template item id")
	}
	if item.Origin() != "laundry" {
		t.Fatalf("expected origin laundry, got %q", item.Origin())
	}
	if stats.Added != 1 || stats.Updated != 0 || stats.Templates != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(day.Items) != 0 {
		t.Fatalf("input day list was modified")
	}
	if got.ID != day.ID {
		t.Fatalf("expected merged list to keep the day list id")
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	a, la := templateWithItems("A", &todo.Item{ID: "a1", Name: "one", Position: 0}, &todo.Item{ID: "a2", Name: "two", Position: 1})
	b, lb := templateWithItems("B", &todo.Item{ID: "b1", Name: "three", Position: 0})
	lists := ListMap{la.ID: la, lb.ID: lb}
	scheduled := []*todo.Template{a, b}

	first, _, err := Merge(todo.NewList(), scheduled, lists, Options{})
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	second, stats, err := Merge(first, scheduled, lists, Options{})
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if !reflect.DeepEqual(instanceIDs(first), instanceIDs(second)) {
		t.Fatalf("identities changed: %v vs %v", instanceIDs(first), instanceIDs(second))
	}
	if stats.Added != 0 || stats.Updated != 3 {
		t.Fatalf("expected only updates on rerun, got %+v", stats)
	}
	if got := origins(second); !reflect.DeepEqual(got, []string{"a1", "a2", "b1"}) {
		t.Fatalf("unexpected merge order %v", got)
	}
}

func TestMergePreservesCompletion(t *testing.T) {
	tmpl, list := templateWithItems("Chores", &todo.Item{ID: "abc", Name: "Dishes", Points: 3})
	day := todo.NewList()
	day.Append(&todo.Item{ID: "day-abc", SourceID: "abc", Name: "Old name", Points: 1, Completed: true})

	got, _, err := Merge(day, []*todo.Template{tmpl}, ListMap{list.ID: list}, Options{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(got.Items))
	}
	item := got.Items[0]
	if !item.Completed {
		t.Fatalf("expected completion to be preserved")
	}
	if item.Name != "Dishes" || item.Points != 3 {
		t.Fatalf("expected template fields to be refreshed, got %+v", item)
	}
}

func TestMergeMatchesByIdentityNotName(t *testing.T) {
	tmpl, list := templateWithItems("Chores", &todo.Item{ID: "abc", Name: "Dishes"})
	day := todo.NewList()
	day.Append(&todo.Item{ID: "adhoc", Name: "Dishes"})

	got, _, err := Merge(day, []*todo.Template{tmpl}, ListMap{list.ID: list}, Options{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected ad hoc and template item side by side, got %d items", len(got.Items))
	}
	if got.Items[0].ID != "adhoc" {
		t.Fatalf("ad hoc item moved or changed: %+v", got.Items[0])
	}
}

func TestMergeGlobalOrdering(t *testing.T) {
	a, la := templateWithItems("A", &todo.Item{ID: "a1", Name: "a1", Position: 2}, &todo.Item{ID: "a2", Name: "a2", Position: 0})
	b, lb := templateWithItems("B", &todo.Item{ID: "b1", Name: "b1", Position: 1})
	lists := ListMap{la.ID: la, lb.ID: lb}

	unordered, _, err := Merge(todo.NewList(), []*todo.Template{a, b}, lists, Options{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := origins(unordered); !reflect.DeepEqual(got, []string{"a1", "a2", "b1"}) {
		t.Fatalf("expected append order, got %v", got)
	}

	ordered, _, err := Merge(todo.NewList(), []*todo.Template{a, b}, lists, Options{GlobalOrdering: true})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := origins(ordered); !reflect.DeepEqual(got, []string{"a2", "b1", "a1"}) {
		t.Fatalf("expected position order, got %v", got)
	}
}

func TestMergeNoTemplatesIsNoop(t *testing.T) {
	day := todo.NewList()
	day.Append(&todo.Item{ID: "x", Name: "x"})
	got, stats, err := Merge(day, nil, ListMap{}, Options{GlobalOrdering: true})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !reflect.DeepEqual(got, day) {
		t.Fatalf("expected unchanged list")
	}
	if stats != (Stats{}) {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestMergeTemplateWithoutListContributesNothing(t *testing.T) {
	tmpl := todo.NewTemplate("Fresh", 0)
	got, _, err := Merge(todo.NewList(), []*todo.Template{tmpl}, ListMap{}, Options{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(got.Items))
	}
}

func TestMergeMissingListIsIntegrityError(t *testing.T) {
	tmpl := todo.NewTemplate("Broken", 0)
	tmpl.ListID = "gone"
	_, _, err := Merge(todo.NewList(), []*todo.Template{tmpl}, ListMap{}, Options{})
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrity.Kind != "list" || integrity.ID != "gone" {
		t.Fatalf("unexpected error detail %+v", integrity)
	}
}

func TestMergeKeepsDayPositions(t *testing.T) {
	a, la := templateWithItems("A",
		&todo.Item{ID: "a", Name: "a", Position: 0},
		&todo.Item{ID: "b", Name: "b", Position: 1},
		&todo.Item{ID: "c", Name: "c", Position: 2})
	lists := ListMap{la.ID: la}

	for _, global := range []bool{false, true} {
		day, _, err := Merge(todo.NewList(), []*todo.Template{a}, lists, Options{GlobalOrdering: global})
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		if err := day.Move(2, 0); err != nil {
			t.Fatalf("move: %v", err)
		}

		again, _, err := Merge(day, []*todo.Template{a}, lists, Options{GlobalOrdering: global})
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		if got := origins(again); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
			t.Fatalf("global=%v: expected the day order to survive, got %v", global, got)
		}
		for i, it := range again.Items {
			if it.Position != i {
				t.Fatalf("global=%v: item %s at index %d has position %d", global, it.Name, i, it.Position)
			}
		}
	}
}

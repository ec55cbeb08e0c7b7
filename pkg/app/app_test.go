package app

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/materialize"
	"tableflip.dev/taskrace/pkg/settings"
	"tableflip.dev/taskrace/pkg/store"
	"tableflip.dev/taskrace/pkg/todo"
	"tableflip.dev/taskrace/pkg/weekdays"
)

// 2024-01-01 is a Monday.
var (
	monday  = calendar.New(2024, time.January, 1)
	tuesday = calendar.New(2024, time.January, 2)
)

type fakeSettings map[string]bool

func (f fakeSettings) GetBool(key string) bool { return f[key] }

func newService(t *testing.T) *Service {
	t.Helper()
	svc := &Service{
		Store:    store.NewMemory(),
		Settings: fakeSettings{},
		Clock:    calendar.Fixed(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)),
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

// addTemplate creates a template scheduled on days with the named items.
func addTemplate(t *testing.T, svc *Service, name string, days weekdays.Set, items ...string) (*todo.Template, *todo.List) {
	t.Helper()
	ctx := context.Background()
	tmpl, err := svc.AddTemplate(ctx, name)
	if err != nil {
		t.Fatalf("add template: %v", err)
	}
	if tmpl, err = svc.SetTemplateDays(ctx, tmpl.ID, days); err != nil {
		t.Fatalf("set days: %v", err)
	}
	list, err := svc.TemplateList(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("template list: %v", err)
	}
	for _, n := range items {
		if _, err := svc.AddItem(ctx, list.ID, n, 5, 0); err != nil {
			t.Fatalf("add item: %v", err)
		}
	}
	if list, err = svc.List(ctx, list.ID); err != nil {
		t.Fatalf("reload list: %v", err)
	}
	tmpl.ListID = list.ID
	return tmpl, list
}

func itemNames(items []*todo.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestListForDateMaterializesScheduledTemplates(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, chores := addTemplate(t, svc, "Chores", weekdays.Of(time.Monday), "Laundry")

	got, err := svc.ListForDate(ctx, monday)
	if err != nil {
		t.Fatalf("list for date: %v", err)
	}
	if names := itemNames(got.Items); !reflect.DeepEqual(names, []string{"Laundry"}) {
		t.Fatalf("unexpected items %v", names)
	}
	if got.Items[0].ID == chores.Items[0].ID {
		t.Fatalf("day item should have a fresh identity")
	}
	if got.Items[0].Origin() != chores.Items[0].ID {
		t.Fatalf("day item should remember its template item")
	}

	other, err := svc.ListForDate(ctx, tuesday)
	if err != nil {
		t.Fatalf("list for tuesday: %v", err)
	}
	if len(other.Items) != 0 {
		t.Fatalf("expected an empty tuesday, got %v", itemNames(other.Items))
	}

	days, err := svc.Days(ctx)
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	if len(days) != 2 || days[0].Date != monday || days[1].Date != tuesday {
		t.Fatalf("unexpected days %+v", days)
	}
}

func TestListForDateIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, chores := addTemplate(t, svc, "Chores", weekdays.Every, "Laundry", "Dishes")

	first, err := svc.ListForDate(ctx, monday)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	edited := *chores.Items[0]
	edited.Name = "Laundry (whites)"
	if _, err := svc.UpdateItem(ctx, chores.ID, &edited); err != nil {
		t.Fatalf("update item: %v", err)
	}
	second, err := svc.ListForDate(ctx, monday)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if len(second.Items) != 2 {
		t.Fatalf("expected 2 items after rerun, got %d", len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Fatalf("item %d changed identity", i)
		}
	}
	if second.Items[0].Name != "Laundry (whites)" {
		t.Fatalf("expected template edits to flow into the day, got %q", second.Items[0].Name)
	}
}

func TestCompletionSurvivesRematerialization(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	addTemplate(t, svc, "Chores", weekdays.Of(time.Monday), "Laundry")

	day, err := svc.TodayList(ctx)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if _, err := svc.SetItemCompleted(ctx, day.ID, day.Items[0].ID, true, 2); err != nil {
		t.Fatalf("complete: %v", err)
	}
	again, err := svc.TodayList(ctx)
	if err != nil {
		t.Fatalf("today again: %v", err)
	}
	if !again.Items[0].Completed {
		t.Fatalf("expected completion to survive")
	}
	points, err := svc.Points(ctx)
	if err != nil {
		t.Fatalf("points: %v", err)
	}
	if points != 10 {
		t.Fatalf("expected 10 points, got %d", points)
	}

	if _, err := svc.SetItemCompleted(ctx, day.ID, day.Items[0].ID, false, 2); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if points, _ = svc.Points(ctx); points != 0 {
		t.Fatalf("expected points to be taken back, got %d", points)
	}
	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected two history entries, got %d", len(history))
	}
}

func TestListForDateMissingListAbortsWithoutWriting(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	err := svc.Store.Update(ctx, func(tx store.Tx) error {
		broken := todo.NewTemplate("Broken", 0)
		broken.Days = weekdays.Every
		broken.ListID = "gone"
		return tx.Put(todo.CollectionTemplates, broken.ID, broken)
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = svc.ListForDate(ctx, monday)
	var integrity *materialize.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	days, err := svc.Days(ctx)
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected nothing to be written, got %d days", len(days))
	}
}

func TestListForDateGlobalOrdering(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	svc.Settings = fakeSettings{settings.KeyGlobalOrdering: true}
	addTemplate(t, svc, "A", weekdays.Every, "a0", "a1")
	addTemplate(t, svc, "B", weekdays.Every, "b0")

	items, err := svc.RegularTemplateItems(ctx)
	if err != nil {
		t.Fatalf("regular items: %v", err)
	}
	ids := make(map[string]string, len(items))
	for _, it := range items {
		ids[it.Name] = it.ID
	}
	if err := svc.OrderItems(ctx, []string{ids["b0"], ids["a1"], ids["a0"]}); err != nil {
		t.Fatalf("order: %v", err)
	}

	got, err := svc.ListForDate(ctx, monday)
	if err != nil {
		t.Fatalf("list for date: %v", err)
	}
	if names := itemNames(got.Items); !reflect.DeepEqual(names, []string{"b0", "a1", "a0"}) {
		t.Fatalf("expected global order, got %v", names)
	}
}

func TestAnytimeTemplatesStayOutOfDayLists(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	errands, _ := addTemplate(t, svc, "Errands", weekdays.Of(time.Monday), "Post office")
	if _, err := svc.SetAnytime(ctx, errands.ID, true); err != nil {
		t.Fatalf("set anytime: %v", err)
	}

	day, err := svc.ListForDate(ctx, monday)
	if err != nil {
		t.Fatalf("list for date: %v", err)
	}
	if len(day.Items) != 0 {
		t.Fatalf("anytime items leaked into the day: %v", itemNames(day.Items))
	}
	lists, err := svc.AnytimeLists(ctx, monday)
	if err != nil {
		t.Fatalf("anytime lists: %v", err)
	}
	if len(lists) != 1 || lists[0].Template.Name != "Errands" || len(lists[0].Items) != 1 {
		t.Fatalf("unexpected anytime lists %+v", lists)
	}
	if lists, _ = svc.AnytimeLists(ctx, tuesday); len(lists) != 0 {
		t.Fatalf("expected no anytime lists on tuesday")
	}
}

func TestTemplateSections(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	a, _ := svc.AddTemplate(ctx, "A")
	b, _ := svc.AddTemplate(ctx, "B")
	c, _ := svc.AddTemplate(ctx, "C")

	if _, err := svc.MoveTemplate(ctx, c.ID, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := svc.SetAnytime(ctx, a.ID, true); err != nil {
		t.Fatalf("set anytime: %v", err)
	}
	templates, err := svc.Templates(ctx)
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	var got []string
	var positions []int
	for _, tmpl := range templates {
		got = append(got, tmpl.Name)
		positions = append(positions, tmpl.Position)
	}
	if !reflect.DeepEqual(got, []string{"C", "B", "A"}) || !reflect.DeepEqual(positions, []int{0, 1, 0}) {
		t.Fatalf("unexpected templates %v at %v", got, positions)
	}

	if err := svc.DeleteTemplate(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	found, err := svc.FindTemplate(ctx, "b")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != b.ID || found.Position != 0 {
		t.Fatalf("expected B renumbered to 0, got %+v", found)
	}
	if _, err := svc.FindTemplate(ctx, "C"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleTemplateDay(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	tmpl, _ := svc.AddTemplate(ctx, "Gym")
	tmpl, err := svc.ToggleTemplateDay(ctx, tmpl.ID, time.Wednesday)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !tmpl.Days.Contains(time.Wednesday) {
		t.Fatalf("expected wednesday on")
	}
	if tmpl, _ = svc.ToggleTemplateDay(ctx, tmpl.ID, time.Wednesday); !tmpl.Days.Empty() {
		t.Fatalf("expected wednesday off, got %s", tmpl.Days)
	}
}

func TestItemEditing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, list := addTemplate(t, svc, "Chores", weekdays.None, "a", "b", "c")

	moved, err := svc.MoveItem(ctx, list.ID, 2, 0)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if names := itemNames(moved.Items); !reflect.DeepEqual(names, []string{"c", "a", "b"}) {
		t.Fatalf("unexpected order %v", names)
	}
	for i, it := range moved.Items {
		if it.Position != i {
			t.Fatalf("expected contiguous positions, got %d at %d", it.Position, i)
		}
	}
	if _, err := svc.MoveItem(ctx, list.ID, 0, 3); err == nil {
		t.Fatalf("expected out of range move to fail")
	}

	due := calendar.New(2024, time.February, 1)
	it, err := svc.SetDueDate(ctx, list.ID, moved.Items[0].ID, &due)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if it.DueDate == nil || *it.DueDate != due {
		t.Fatalf("expected due date to be set")
	}

	if err := svc.DeleteItem(ctx, list.ID, moved.Items[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteItem(ctx, list.ID, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after, _ := svc.List(ctx, list.ID)
	if names := itemNames(after.Items); !reflect.DeepEqual(names, []string{"c", "b"}) {
		t.Fatalf("unexpected items %v", names)
	}
}

func TestPastDueItems(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	errands, list := addTemplate(t, svc, "Errands", weekdays.Every, "late", "later", "future", "undated")
	if _, err := svc.SetAnytime(ctx, errands.ID, true); err != nil {
		t.Fatal(err)
	}
	dates := []calendar.Date{monday.AddDays(-1), monday, monday.AddDays(1)}
	for i, d := range dates {
		if _, err := svc.SetDueDate(ctx, list.ID, list.Items[i].ID, &d); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.PastDueItems(ctx)
	if err != nil {
		t.Fatalf("past due: %v", err)
	}
	var names []string
	for _, p := range got {
		names = append(names, p.Item.Name)
	}
	if !reflect.DeepEqual(names, []string{"later", "late"}) {
		t.Fatalf("unexpected past due items %v", names)
	}
}

func TestPurchase(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	reward, err := svc.AddStoreItem(ctx, "Ice cream", 8)
	if err != nil {
		t.Fatalf("add reward: %v", err)
	}
	if _, err := svc.Purchase(ctx, reward.ID, 1); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	_, list := addTemplate(t, svc, "Chores", weekdays.None, "Laundry")
	if _, err := svc.SetItemCompleted(ctx, list.ID, list.Items[0].ID, true, 2); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Purchase(ctx, reward.ID, 1); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	points, _ := svc.Points(ctx)
	if points != 2 {
		t.Fatalf("expected 2 points left, got %d", points)
	}

	items, err := svc.StoreItems(ctx)
	if err != nil {
		t.Fatalf("store items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("points balance leaked into the rewards: %+v", items)
	}
}

func TestRepeatingItemsStayOpen(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, list := addTemplate(t, svc, "Water", weekdays.None, "Glass of water")
	it := *list.Items[0]
	it.Repeats = true
	if _, err := svc.UpdateItem(ctx, list.ID, &it); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		got, err := svc.SetItemCompleted(ctx, list.ID, it.ID, true, 1)
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if got.Completed {
			t.Fatalf("repeating item should stay open")
		}
	}
	if points, _ := svc.Points(ctx); points != 15 {
		t.Fatalf("expected 15 points, got %d", points)
	}
}

func TestStoreOrdering(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		if _, err := svc.AddStoreItem(ctx, n, 1); err != nil {
			t.Fatal(err)
		}
	}
	if err := svc.MoveStoreItem(ctx, 0, 2); err != nil {
		t.Fatalf("move: %v", err)
	}
	b, err := svc.FindStoreItem(ctx, "B")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := svc.DeleteStoreItem(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, _ := svc.StoreItems(ctx)
	var got []string
	for _, si := range items {
		got = append(got, si.Name)
		if si.Position != len(got)-1 {
			t.Fatalf("expected contiguous positions, got %+v", si)
		}
	}
	if !reflect.DeepEqual(got, []string{"c", "a"}) {
		t.Fatalf("unexpected rewards %v", got)
	}
}

func TestReport(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, list := addTemplate(t, svc, "Chores", weekdays.None, "Laundry")
	reward, _ := svc.AddStoreItem(ctx, "Movie", 3)
	if _, err := svc.SetItemCompleted(ctx, list.ID, list.Items[0].ID, true, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Purchase(ctx, reward.ID, 1); err != nil {
		t.Fatal(err)
	}

	now := svc.Clock.Now()
	report, err := svc.Report(ctx, now.Add(time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Earned != 5 || report.Spent != 3 || report.Net() != 2 {
		t.Fatalf("unexpected totals %+v", report)
	}
	if len(report.Sections) != 1 || report.Sections[0].Date != monday {
		t.Fatalf("unexpected sections %+v", report.Sections)
	}
}

func TestUnfinished(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	addTemplate(t, svc, "Chores", weekdays.Every, "Laundry")
	yesterday := monday.AddDays(-1)
	if _, err := svc.ListForDate(ctx, yesterday); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListForDate(ctx, monday); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Unfinished(ctx, calendar.Date{})
	if err != nil {
		t.Fatalf("unfinished: %v", err)
	}
	if len(got) != 1 || got[0].Day.Date != yesterday || len(got[0].Items) != 1 {
		t.Fatalf("unexpected unfinished days %+v", got)
	}
	if got, _ = svc.Unfinished(ctx, monday); len(got) != 0 {
		t.Fatalf("expected since to exclude older days")
	}
}

func TestResolveList(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, chores := addTemplate(t, svc, "Chores", weekdays.Of(time.Monday), "Laundry")

	today, err := svc.ResolveList(ctx, "today")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	byDate, err := svc.ResolveList(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if today.ID != byDate.ID {
		t.Fatalf("expected today and its date to resolve to the same list")
	}
	byName, err := svc.ResolveList(ctx, "chores")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if byName.ID != chores.ID {
		t.Fatalf("expected the template list")
	}
	if _, err := svc.ResolveList(ctx, "nothing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type memoryProfiles struct {
	active string
}

func (m *memoryProfiles) Backend() string  { return store.BackendMemory }
func (m *memoryProfiles) DataPath() string { return m.active }
func (m *memoryProfiles) UseProfile(name string) error {
	if name == "" {
		return settings.ErrUnknownProfile
	}
	m.active = name
	return nil
}

func TestSwitchProfileReopensStore(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.AddTemplate(ctx, "Chores"); err != nil {
		t.Fatal(err)
	}
	old := svc.Store

	p := &memoryProfiles{}
	if err := svc.SwitchProfile(p, "Kids"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if svc.Store == old {
		t.Fatalf("expected a new store handle")
	}
	if err := old.View(ctx, func(store.Tx) error { return nil }); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("expected the old store to be closed, got %v", err)
	}
	templates, err := svc.Templates(ctx)
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	if len(templates) != 0 {
		t.Fatalf("expected an empty profile, got %d templates", len(templates))
	}
	if err := svc.SwitchProfile(p, ""); !errors.Is(err, settings.ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, chores := addTemplate(t, svc, "Chores", weekdays.Of(time.Monday), "Laundry")
	if _, err := svc.ListForDate(ctx, monday); err != nil {
		t.Fatalf("list for date: %v", err)
	}
	if _, err := svc.AddStoreItem(ctx, "Movie", 3); err != nil {
		t.Fatalf("add reward: %v", err)
	}

	problems, err := svc.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("expected a clean store, got %v", problems)
	}

	err = svc.Store.Update(ctx, func(tx store.Tx) error {
		if err := tx.Delete(todo.CollectionLists, chores.ID); err != nil {
			return err
		}
		return tx.Put(todo.CollectionStore, "broken", map[string]any{"name": "No ID"})
	})
	if err != nil {
		t.Fatalf("damage store: %v", err)
	}

	problems, err = svc.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", problems)
	}
	var integrity *materialize.IntegrityError
	found := map[string]bool{}
	for _, p := range problems {
		found[p.Collection] = true
		if p.Collection == todo.CollectionTemplates && !errors.As(p.Err, &integrity) {
			t.Fatalf("expected an integrity error for the template, got %v", p.Err)
		}
	}
	if !found[todo.CollectionTemplates] || !found[todo.CollectionStore] {
		t.Fatalf("unexpected problems %v", problems)
	}
}

func TestDayReorderSurvivesRematerialization(t *testing.T) {
	for _, global := range []bool{false, true} {
		svc := newService(t)
		ctx := context.Background()
		svc.Settings = fakeSettings{settings.KeyGlobalOrdering: global}
		addTemplate(t, svc, "Chores", weekdays.Every, "a", "b", "c")

		day, err := svc.ListForDate(ctx, monday)
		if err != nil {
			t.Fatalf("list for date: %v", err)
		}
		if _, err := svc.MoveItem(ctx, day.ID, 2, 0); err != nil {
			t.Fatalf("move: %v", err)
		}

		got, err := svc.ListForDate(ctx, monday)
		if err != nil {
			t.Fatalf("list for date: %v", err)
		}
		if names := itemNames(got.Items); !reflect.DeepEqual(names, []string{"c", "a", "b"}) {
			t.Fatalf("global=%v: expected the reorder to survive, got %v", global, names)
		}
		for i, it := range got.Items {
			if it.Position != i {
				t.Fatalf("global=%v: item %s at index %d has position %d", global, it.Name, i, it.Position)
			}
		}
	}
}

func TestRejectsNegativeValues(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, list := addTemplate(t, svc, "Chores", weekdays.Every, "Laundry")

	if _, err := svc.AddItem(ctx, list.ID, "Dishes", 1, -5); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative minutes, got %v", err)
	}
	it := *list.Items[0]
	it.Minutes = -1
	if _, err := svc.UpdateItem(ctx, list.ID, &it); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative minutes, got %v", err)
	}
	if _, err := svc.AddStoreItem(ctx, "Movie", -3); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a negative price, got %v", err)
	}
	reward, err := svc.AddStoreItem(ctx, "Movie", 3)
	if err != nil {
		t.Fatalf("add reward: %v", err)
	}
	reward.Points = -1
	if _, err := svc.UpdateStoreItem(ctx, reward); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a negative price, got %v", err)
	}

	problems, err := svc.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("expected nothing invalid to be stored, got %v", problems)
	}
}

func TestListForDateConcurrentCreation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	addTemplate(t, svc, "Chores", weekdays.Every, "Laundry")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ListForDate(ctx, tuesday); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("list for date: %v", err)
	}

	err := svc.Store.View(ctx, func(tx store.Tx) error {
		lists, err := tx.Keys(todo.CollectionLists)
		if err != nil {
			return err
		}
		days, err := tx.Keys(todo.CollectionDays)
		if err != nil {
			return err
		}
		if len(lists) != 2 || len(days) != 1 {
			t.Fatalf("expected the template list and one day list, got %d lists and %d days", len(lists), len(days))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestListForDateKeepsConcurrentCompletion(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	addTemplate(t, svc, "Chores", weekdays.Every, "Laundry")
	day, err := svc.ListForDate(ctx, monday)
	if err != nil {
		t.Fatalf("list for date: %v", err)
	}
	itemID := day.Items[0].ID

	var wg sync.WaitGroup
	errs := make(chan error, 9)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := svc.SetItemCompleted(ctx, day.ID, itemID, true, 1); err != nil {
			errs <- err
		}
	}()
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ListForDate(ctx, monday); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent call: %v", err)
	}

	got, err := svc.List(ctx, day.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !got.Items[0].Completed {
		t.Fatalf("expected the completion to survive materialization")
	}
}

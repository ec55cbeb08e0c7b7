package schedule

import (
	"reflect"
	"testing"
	"time"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/todo"
	"tableflip.dev/taskrace/pkg/weekdays"
)

var monday = calendar.New(2024, time.March, 4)

func template(id string, position int, anytime bool, days weekdays.Set) *todo.Template {
	return &todo.Template{ID: id, Name: id, Position: position, Anytime: anytime, Days: days}
}

func ids(templates []*todo.Template) []string {
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.ID)
	}
	return out
}

func TestResolvePartitions(t *testing.T) {
	templates := []*todo.Template{
		template("weekend", 0, false, weekdays.Weekend),
		template("mon-wed", 2, false, weekdays.Of(time.Monday, time.Wednesday)),
		template("daily", 1, false, weekdays.Every),
		template("anytime-mon", 0, true, weekdays.Of(time.Monday)),
		template("anytime-tue", 1, true, weekdays.Of(time.Tuesday)),
	}

	r := Resolve(monday, templates)
	if r.Days != weekdays.Of(time.Monday) {
		t.Fatalf("expected Monday set, got %s", r.Days)
	}
	if got := ids(r.Scheduled); !reflect.DeepEqual(got, []string{"daily", "mon-wed"}) {
		t.Fatalf("unexpected scheduled %v", got)
	}
	if got := ids(r.Anytime); !reflect.DeepEqual(got, []string{"anytime-mon"}) {
		t.Fatalf("unexpected anytime %v", got)
	}
}

func TestEmptyDaySetNeverMatches(t *testing.T) {
	templates := []*todo.Template{
		template("off", 0, false, weekdays.None),
		template("off-anytime", 0, true, weekdays.None),
	}
	for i := 0; i < 7; i++ {
		r := Resolve(monday.AddDays(i), templates)
		if len(r.Scheduled) != 0 || len(r.Anytime) != 0 {
			t.Fatalf("%s: disabled template matched: %v %v", monday.AddDays(i), ids(r.Scheduled), ids(r.Anytime))
		}
	}
}

func TestAnytimeNeverScheduled(t *testing.T) {
	r := Resolve(monday, []*todo.Template{template("a", 0, true, weekdays.Every)})
	if len(r.Scheduled) != 0 {
		t.Fatalf("anytime template was scheduled: %v", ids(r.Scheduled))
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	templates := []*todo.Template{
		template("c", 1, false, weekdays.Every),
		template("b", 1, false, weekdays.Every),
		template("a", 0, false, weekdays.Every),
	}
	reversed := []*todo.Template{templates[2], templates[1], templates[0]}

	first := Resolve(monday, templates)
	second := Resolve(monday, templates)
	third := Resolve(monday, reversed)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolving twice differed")
	}
	if !reflect.DeepEqual(ids(first.Scheduled), ids(third.Scheduled)) {
		t.Fatalf("input order leaked into result: %v vs %v", ids(first.Scheduled), ids(third.Scheduled))
	}
	if got := ids(first.Scheduled); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if templates[0].ID != "c" {
		t.Fatalf("input slice was reordered")
	}
}

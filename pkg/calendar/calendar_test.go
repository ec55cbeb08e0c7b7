package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	now := time.Date(2024, time.December, 5, 9, 0, 0, 0, time.Local)
	tests := []struct {
		in   string
		want Date
	}{
		{in: "2024-03-04", want: Date{2024, time.March, 4}},
		{in: "2024-3-4", want: Date{2024, time.March, 4}},
		{in: "12/25", want: Date{2024, time.December, 25}},
		{in: "12/5", want: Date{2024, time.December, 5}},
		{in: "1/3", want: Date{2025, time.January, 3}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in, now)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.in, tt.want, got)
		}
	}
	if _, err := Parse("tomorrow-ish", now); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestCompareAndWeekday(t *testing.T) {
	monday := Date{2024, time.March, 4}
	if monday.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %s", monday.Weekday())
	}
	if !monday.Weekdays().Contains(time.Monday) {
		t.Fatalf("expected weekday set to contain Monday")
	}
	next := monday.AddDays(1)
	if !monday.Before(next) || !next.After(monday) || monday.Compare(monday) != 0 {
		t.Fatalf("unexpected ordering between %s and %s", monday, next)
	}
	if got := (Date{2024, time.February, 29}).AddDays(1); got != (Date{2024, time.March, 1}) {
		t.Fatalf("expected leap day rollover, got %s", got)
	}
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Due Date `json:"due"`
	}
	b, err := json.Marshal(wrapper{Due: Date{2024, time.March, 4}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"due":"2024-03-04"}` {
		t.Fatalf("unexpected encoding %s", b)
	}
	var back wrapper
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Due != (Date{2024, time.March, 4}) {
		t.Fatalf("unexpected date %s", back.Due)
	}
}

func TestTodayUsesClock(t *testing.T) {
	clock := Fixed(time.Date(2024, time.March, 4, 23, 59, 0, 0, time.Local))
	if got := Today(clock); got != (Date{2024, time.March, 4}) {
		t.Fatalf("unexpected today %s", got)
	}
}

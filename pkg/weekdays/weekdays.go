// Package weekdays models the set of days of the week a template is
// scheduled on.
package weekdays

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
	"time"
)

// Set is a subset of {Sunday..Saturday}. The zero value is the empty set,
// which matches no date.
type Set struct {
	bits uint8
}

const all uint8 = 1<<7 - 1

var (
	// None is the empty set.
	None = Set{}
	// Every contains all seven days.
	Every = Set{bits: all}
	// Workdays contains Monday through Friday.
	Workdays = Of(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	// Weekend contains Saturday and Sunday.
	Weekend = Of(time.Saturday, time.Sunday)
)

// Of returns the set containing the given days.
func Of(days ...time.Weekday) Set {
	var s Set
	for _, d := range days {
		s.bits |= bit(d)
	}
	return s
}

// ForDate returns the single-day set for the weekday of t.
func ForDate(t time.Time) Set {
	return Of(t.Weekday())
}

func bit(d time.Weekday) uint8 {
	if d < time.Sunday || d > time.Saturday {
		return 0
	}
	return 1 << uint(d)
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set { return Set{bits: s.bits | o.bits} }

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set { return Set{bits: s.bits & o.bits} }

// SymmetricDifference returns the days in exactly one of s and o.
func (s Set) SymmetricDifference(o Set) Set { return Set{bits: s.bits ^ o.bits} }

// Toggle flips membership of a single day.
func (s Set) Toggle(d time.Weekday) Set { return s.SymmetricDifference(Of(d)) }

// Contains reports whether d is in s.
func (s Set) Contains(d time.Weekday) bool { return s.bits&bit(d) != 0 }

// Overlaps reports whether s and o share at least one day.
func (s Set) Overlaps(o Set) bool { return !s.Intersect(o).Empty() }

// Empty reports whether s has no days.
func (s Set) Empty() bool { return s.bits == 0 }

// Len returns the number of days in s.
func (s Set) Len() int { return bits.OnesCount8(s.bits) }

// Days returns the members of s, Sunday first.
func (s Set) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// String renders the set the way the template list shows it, e.g.
// "Mon Wed Fri", "Every day", "Weekdays" or "Never".
func (s Set) String() string {
	switch s {
	case None:
		return "Never"
	case Every:
		return "Every day"
	case Workdays:
		return "Weekdays"
	case Weekend:
		return "Weekends"
	}
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, Abbrev(d))
	}
	return strings.Join(names, " ")
}

// Abbrev returns the three letter name of d.
func Abbrev(d time.Weekday) string {
	return d.String()[:3]
}

// ParseDay accepts full or abbreviated day names in any case.
func ParseDay(raw string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if len(v) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			name := strings.ToLower(d.String())
			if strings.HasPrefix(name, v) {
				return d, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("weekdays: unknown day %q", raw)
}

// ParseSet parses a comma or space separated list of days. The keywords
// "every", "weekdays", "weekend" and "none" are accepted as well.
func ParseSet(raw string) (Set, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	var s Set
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "every", "daily", "all":
			s = s.Union(Every)
		case "weekdays":
			s = s.Union(Workdays)
		case "weekend", "weekends":
			s = s.Union(Weekend)
		case "none", "never":
		default:
			d, err := ParseDay(f)
			if err != nil {
				return None, err
			}
			s = s.Union(Of(d))
		}
	}
	return s, nil
}

// MarshalJSON encodes the set as a list of abbreviated day names.
func (s Set) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, Abbrev(d))
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of day names.
func (s *Set) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return fmt.Errorf("weekdays: decode: %w", err)
	}
	var out Set
	for _, n := range names {
		d, err := ParseDay(n)
		if err != nil {
			return err
		}
		out = out.Union(Of(d))
	}
	*s = out
	return nil
}

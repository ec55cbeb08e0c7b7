package todo

import (
	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/weekdays"
)

// Template is a named recurring checklist. Days selects the weekdays it is
// scheduled on; Anytime templates are surfaced separately instead of being
// merged into day lists.
type Template struct {
	Schema   string       `json:"schema,omitempty"`
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Position int          `json:"position"`
	Anytime  bool         `json:"anytime"`
	Days     weekdays.Set `json:"days"`
	ListID   string       `json:"list_id,omitempty"`
}

// NewTemplate returns an unscheduled template with no list yet.
func NewTemplate(name string, position int) *Template {
	return &Template{
		Schema:   CurrentSchema,
		ID:       NewID(),
		Name:     name,
		Position: position,
	}
}

// AppliesOn reports whether the template's days include the weekday of d.
// An empty day set never applies.
func (t *Template) AppliesOn(d calendar.Date) bool {
	return t.Days.Overlaps(d.Weekdays())
}

// Day binds a calendar date to its materialized list.
type Day struct {
	Schema string        `json:"schema,omitempty"`
	ID     string        `json:"id"`
	Date   calendar.Date `json:"date"`
	ListID string        `json:"list_id"`
}

// NewDay returns a Day keyed by its date.
func NewDay(d calendar.Date, listID string) *Day {
	return &Day{
		Schema: CurrentSchema,
		ID:     d.Key(),
		Date:   d,
		ListID: listID,
	}
}

package app

import (
	"context"
	"slices"
	"time"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/todo"
)

// ReportSection groups the balance changes of one day.
type ReportSection struct {
	Date    calendar.Date
	Entries []*todo.HistoryItem
	Earned  int
	Spent   int
}

// ReportResult summarizes the balance changes within a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Earned   int
	Spent    int
}

// Net is the overall change to the balance.
func (r ReportResult) Net() int {
	return r.Earned - r.Spent
}

// Report returns the history between the provided bounds grouped by day,
// oldest day first.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	history, err := s.History(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	result := ReportResult{Since: since, Until: until}
	byDay := make(map[calendar.Date]*ReportSection)
	for _, h := range history {
		if h.DateCompleted.Before(since) || h.DateCompleted.After(until) {
			continue
		}
		d := calendar.FromTime(h.DateCompleted)
		section, ok := byDay[d]
		if !ok {
			section = &ReportSection{Date: d}
			byDay[d] = section
		}
		section.Entries = append(section.Entries, h)
		if h.Points >= 0 {
			section.Earned += h.Points
			result.Earned += h.Points
		} else {
			section.Spent -= h.Points
			result.Spent -= h.Points
		}
	}

	for _, section := range byDay {
		result.Sections = append(result.Sections, *section)
	}
	slices.SortFunc(result.Sections, func(a, b ReportSection) int {
		return a.Date.Compare(b.Date)
	})
	return result, nil
}

package todo

import "time"

// StoreItem is a reward that can be bought with points.
type StoreItem struct {
	Schema   string `json:"schema,omitempty"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Position int    `json:"position"`
}

// NewStoreItem returns a reward priced at points.
func NewStoreItem(name string, points, position int) *StoreItem {
	return &StoreItem{
		Schema:   CurrentSchema,
		ID:       NewID(),
		Name:     name,
		Points:   points,
		Position: position,
	}
}

// HistoryItem records one change to the points balance. Points is the signed
// delta that was applied.
type HistoryItem struct {
	Schema        string    `json:"schema,omitempty"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Points        int       `json:"points"`
	DateCompleted time.Time `json:"date_completed"`
	Count         int       `json:"count"`
}

// NewHistoryItem records a delta at the given time.
func NewHistoryItem(name string, points, count int, at time.Time) *HistoryItem {
	return &HistoryItem{
		Schema:        CurrentSchema,
		ID:            NewID(),
		Name:          name,
		Points:        points,
		DateCompleted: at,
		Count:         count,
	}
}

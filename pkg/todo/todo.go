// Package todo holds the persisted entities: templates, item lists, items,
// days and the points store.
package todo

import (
	"github.com/google/uuid"
)

// CurrentSchema tags every top-level record written by this version.
const CurrentSchema = "taskrace/v1"

// Collections used in the object store.
const (
	CollectionTemplates = "templates"
	CollectionLists     = "lists"
	CollectionDays      = "days"
	CollectionStore     = "store"
	CollectionHistory   = "history"

	// PointsKey holds the running points balance in CollectionStore.
	PointsKey = "points"
)

// NewID returns a fresh opaque identity.
func NewID() string {
	return uuid.NewString()
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/taskrace/pkg/materialize"
	"tableflip.dev/taskrace/pkg/store"
	"tableflip.dev/taskrace/pkg/todo"
)

// Problem is one defect found in the stored data.
type Problem struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Err        error  `json:"-"`
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s/%s: %v", p.Collection, p.Key, p.Err)
}

// MarshalJSON adds the error text.
func (p Problem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Collection string `json:"collection"`
		Key        string `json:"key"`
		Error      string `json:"error"`
	}{p.Collection, p.Key, p.Err.Error()})
}

var checkedCollections = []string{
	todo.CollectionTemplates,
	todo.CollectionLists,
	todo.CollectionDays,
	todo.CollectionStore,
	todo.CollectionHistory,
}

// Check validates every stored record against its schema and follows the
// list references of templates and days. It reads everything in one read
// transaction and reports problems instead of stopping at the first.
func (s *Service) Check(ctx context.Context) ([]Problem, error) {
	var problems []Problem
	err := s.view(ctx, func(tx store.Tx) error {
		for _, collection := range checkedCollections {
			keys, err := tx.Keys(collection)
			if err != nil {
				return err
			}
			for _, key := range keys {
				if err := checkRecord(tx, collection, key); err != nil {
					problems = append(problems, Problem{Collection: collection, Key: key, Err: err})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger().Debug("checked store", "problems", len(problems))
	return problems, nil
}

func checkRecord(tx store.Tx, collection, key string) error {
	var raw json.RawMessage
	if err := tx.Get(collection, key, &raw); err != nil {
		return err
	}
	schema, ok := todo.SchemaFor(collection, key)
	if !ok {
		return nil
	}
	if err := todo.Validate(schema, raw); err != nil {
		return err
	}

	var listID, owner string
	switch collection {
	case todo.CollectionTemplates:
		var t todo.Template
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		listID, owner = t.ListID, fmt.Sprintf("template %q", t.Name)
	case todo.CollectionDays:
		var d todo.Day
		if err := json.Unmarshal(raw, &d); err != nil {
			return err
		}
		if d.ID != d.Date.Key() {
			return fmt.Errorf("day keyed %q holds date %s", d.ID, d.Date)
		}
		listID, owner = d.ListID, fmt.Sprintf("day %s", d.Date)
	}
	if listID == "" {
		return nil
	}
	ok, err := store.Exists(tx, todo.CollectionLists, listID)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return err
	}
	if !ok && err == nil {
		return &materialize.IntegrityError{Kind: "list", ID: listID, Owner: owner}
	}
	return nil
}

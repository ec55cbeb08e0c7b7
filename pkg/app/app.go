// Package app holds the operations shared by every taskrace front end. Each
// operation runs its reads in one read transaction and its writes in one
// read-write transaction against an explicit store handle.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/settings"
	"tableflip.dev/taskrace/pkg/store"
	"tableflip.dev/taskrace/pkg/todo"
)

var (
	// ErrNotFound is returned when a referenced template, list, item or
	// reward does not exist.
	ErrNotFound = errors.New("app: not found")
	// ErrInsufficientPoints is returned when a purchase costs more than the
	// current balance.
	ErrInsufficientPoints = errors.New("app: insufficient points")
	// ErrInvalid is returned for values a record can not hold, such as a
	// negative duration or price.
	ErrInvalid = errors.New("app: invalid value")

	errNoStore = errors.New("app: no store configured")
)

// Service provides the taskrace operations over a store handle.
type Service struct {
	Store    store.Store
	Settings settings.Provider
	Clock    calendar.Clock
	Log      *log.Logger
}

// Close releases the store handle.
func (s *Service) Close() error {
	if s.Store == nil {
		return nil
	}
	err := s.Store.Close()
	s.Store = nil
	return err
}

// Now is the current time according to the service clock.
func (s *Service) Now() time.Time {
	return s.clock().Now()
}

// Today is the current date according to the service clock.
func (s *Service) Today() calendar.Date {
	return calendar.Today(s.clock())
}

// Watch subscribes to store change events when the backend supports it.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Store == nil {
		return nil, errNoStore
	}
	w, ok := s.Store.(store.Watcher)
	if !ok {
		return nil, errors.New("app: store does not support watching")
	}
	return w.Watch(ctx)
}

func (s *Service) view(ctx context.Context, fn func(tx store.Tx) error) error {
	if s.Store == nil {
		return errNoStore
	}
	return s.Store.View(ctx, fn)
}

func (s *Service) update(ctx context.Context, fn func(tx store.Tx) error) error {
	if s.Store == nil {
		return errNoStore
	}
	return s.Store.Update(ctx, fn)
}

func (s *Service) clock() calendar.Clock {
	if s.Clock == nil {
		return calendar.SystemClock{}
	}
	return s.Clock
}

func (s *Service) logger() *log.Logger {
	if s.Log == nil {
		return log.Default()
	}
	return s.Log
}

func (s *Service) globalOrdering() bool {
	return s.Settings != nil && s.Settings.GetBool(settings.KeyGlobalOrdering)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}

func getList(tx store.Tx, id string) (*todo.List, error) {
	l := new(todo.List)
	if err := tx.Get(todo.CollectionLists, id, l); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("list", id)
		}
		return nil, err
	}
	return l, nil
}

func putList(tx store.Tx, l *todo.List) error {
	return tx.Put(todo.CollectionLists, l.ID, l)
}

func getTemplate(tx store.Tx, id string) (*todo.Template, error) {
	t := new(todo.Template)
	if err := tx.Get(todo.CollectionTemplates, id, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("template", id)
		}
		return nil, err
	}
	return t, nil
}

func putTemplate(tx store.Tx, t *todo.Template) error {
	return tx.Put(todo.CollectionTemplates, t.ID, t)
}

// List loads a list by ID.
func (s *Service) List(ctx context.Context, listID string) (*todo.List, error) {
	var out *todo.List
	err := s.view(ctx, func(tx store.Tx) error {
		l, err := getList(tx, listID)
		out = l
		return err
	})
	return out, err
}

// ResolveList finds the list a user reference points at: "today" or an
// empty reference, a date, a template ID or name, or a list ID. Day lists
// are materialized on the way.
func (s *Service) ResolveList(ctx context.Context, ref string) (*todo.List, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.EqualFold(ref, "today") {
		return s.ListForDate(ctx, s.Today())
	}
	if d, err := calendar.Parse(ref, s.clock().Now()); err == nil {
		return s.ListForDate(ctx, d)
	}
	if t, err := s.FindTemplate(ctx, ref); err == nil {
		return s.TemplateList(ctx, t.ID)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.List(ctx, ref)
}

func (s *Service) updateList(ctx context.Context, listID string, fn func(l *todo.List) error) (*todo.List, error) {
	var out *todo.List
	err := s.update(ctx, func(tx store.Tx) error {
		l, err := getList(tx, listID)
		if err != nil {
			return err
		}
		if err := fn(l); err != nil {
			return err
		}
		out = l
		return putList(tx, l)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

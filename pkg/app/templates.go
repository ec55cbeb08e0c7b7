package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"tableflip.dev/taskrace/pkg/schedule"
	"tableflip.dev/taskrace/pkg/store"
	"tableflip.dev/taskrace/pkg/todo"
	"tableflip.dev/taskrace/pkg/weekdays"
)

// Templates returns the regular templates followed by the anytime
// templates, each section in position order.
func (s *Service) Templates(ctx context.Context) ([]*todo.Template, error) {
	var out []*todo.Template
	err := s.view(ctx, func(tx store.Tx) error {
		regular, anytime, err := templateSections(tx)
		if err != nil {
			return err
		}
		out = append(regular, anytime...)
		return nil
	})
	return out, err
}

// FindTemplate resolves an ID, a unique ID prefix or a case-insensitive
// name to a template.
func (s *Service) FindTemplate(ctx context.Context, ref string) (*todo.Template, error) {
	ref = strings.TrimSpace(ref)
	templates, err := s.Templates(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		if t.ID == ref {
			return t, nil
		}
	}
	var match *todo.Template
	for _, t := range templates {
		if strings.EqualFold(t.Name, ref) || (len(ref) >= 4 && strings.HasPrefix(t.ID, ref)) {
			if match != nil {
				return nil, fmt.Errorf("app: template reference %q is ambiguous", ref)
			}
			match = t
		}
	}
	if match == nil {
		return nil, notFound("template", ref)
	}
	return match, nil
}

// AddTemplate creates a regular template at the end of its section. It is
// not scheduled on any day until days are set.
func (s *Service) AddTemplate(ctx context.Context, name string) (*todo.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("app: template name required")
	}
	var out *todo.Template
	err := s.update(ctx, func(tx store.Tx) error {
		regular, _, err := templateSections(tx)
		if err != nil {
			return err
		}
		out = todo.NewTemplate(name, len(regular))
		return putTemplate(tx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RenameTemplate changes a template's name.
func (s *Service) RenameTemplate(ctx context.Context, id, name string) (*todo.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("app: template name required")
	}
	return s.modifyTemplate(ctx, id, func(_ store.Tx, t *todo.Template) error {
		t.Name = name
		return nil
	})
}

// ToggleTemplateDay adds or removes one weekday from a template's schedule.
func (s *Service) ToggleTemplateDay(ctx context.Context, id string, day time.Weekday) (*todo.Template, error) {
	return s.modifyTemplate(ctx, id, func(_ store.Tx, t *todo.Template) error {
		t.Days = t.Days.Toggle(day)
		return nil
	})
}

// SetTemplateDays replaces a template's schedule.
func (s *Service) SetTemplateDays(ctx context.Context, id string, days weekdays.Set) (*todo.Template, error) {
	return s.modifyTemplate(ctx, id, func(_ store.Tx, t *todo.Template) error {
		t.Days = days
		return nil
	})
}

// SetAnytime moves a template between the regular and anytime sections. It
// lands at the end of its new section and both sections are renumbered.
func (s *Service) SetAnytime(ctx context.Context, id string, anytime bool) (*todo.Template, error) {
	var out *todo.Template
	err := s.update(ctx, func(tx store.Tx) error {
		regular, flexible, err := templateSections(tx)
		if err != nil {
			return err
		}
		t := findTemplate(append(slices.Clone(regular), flexible...), id)
		if t == nil {
			return notFound("template", id)
		}
		out = t
		if t.Anytime == anytime {
			return nil
		}
		from, to := &regular, &flexible
		if t.Anytime {
			from, to = &flexible, &regular
		}
		*from = slices.DeleteFunc(*from, func(o *todo.Template) bool { return o.ID == id })
		t.Anytime = anytime
		*to = append(*to, t)
		if err := renumberTemplates(tx, *from, nil); err != nil {
			return err
		}
		return renumberTemplates(tx, *to, t)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MoveTemplate places a template at index to within its own section and
// renumbers that section.
func (s *Service) MoveTemplate(ctx context.Context, id string, to int) (*todo.Template, error) {
	var out *todo.Template
	err := s.update(ctx, func(tx store.Tx) error {
		regular, flexible, err := templateSections(tx)
		if err != nil {
			return err
		}
		section := regular
		from := slices.IndexFunc(section, func(o *todo.Template) bool { return o.ID == id })
		if from < 0 {
			section = flexible
			from = slices.IndexFunc(section, func(o *todo.Template) bool { return o.ID == id })
		}
		if from < 0 {
			return notFound("template", id)
		}
		if to < 0 || to >= len(section) {
			return fmt.Errorf("app: move %d -> %d out of range for %d templates", from, to, len(section))
		}
		out = section[from]
		section = slices.Delete(section, from, from+1)
		section = slices.Insert(section, to, out)
		return renumberTemplates(tx, section, nil)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTemplate removes a template and closes the gap in its section. Its
// list is left in place; day lists already copied from it are unaffected.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.update(ctx, func(tx store.Tx) error {
		regular, flexible, err := templateSections(tx)
		if err != nil {
			return err
		}
		section := regular
		if findTemplate(section, id) == nil {
			section = flexible
		}
		if findTemplate(section, id) == nil {
			return notFound("template", id)
		}
		if err := tx.Delete(todo.CollectionTemplates, id); err != nil {
			return err
		}
		section = slices.DeleteFunc(section, func(o *todo.Template) bool { return o.ID == id })
		return renumberTemplates(tx, section, nil)
	})
}

// TemplateList returns the template's item list, creating and attaching an
// empty one the first time it is asked for.
func (s *Service) TemplateList(ctx context.Context, id string) (*todo.List, error) {
	var out *todo.List
	err := s.update(ctx, func(tx store.Tx) error {
		t, err := getTemplate(tx, id)
		if err != nil {
			return err
		}
		if t.ListID != "" {
			out, err = getList(tx, t.ListID)
			return err
		}
		out = todo.NewList()
		if err := putList(tx, out); err != nil {
			return err
		}
		t.ListID = out.ID
		return putTemplate(tx, t)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) modifyTemplate(ctx context.Context, id string, fn func(tx store.Tx, t *todo.Template) error) (*todo.Template, error) {
	var out *todo.Template
	err := s.update(ctx, func(tx store.Tx) error {
		t, err := getTemplate(tx, id)
		if err != nil {
			return err
		}
		if err := fn(tx, t); err != nil {
			return err
		}
		out = t
		return putTemplate(tx, t)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func templateSections(tx store.Tx) (regular, anytime []*todo.Template, err error) {
	all, err := store.All[todo.Template](tx, todo.CollectionTemplates)
	if err != nil {
		return nil, nil, err
	}
	schedule.SortTemplates(all)
	for _, t := range all {
		if t.Anytime {
			anytime = append(anytime, t)
		} else {
			regular = append(regular, t)
		}
	}
	return regular, anytime, nil
}

// renumberTemplates writes back every template whose position changed, and
// always writes force.
func renumberTemplates(tx store.Tx, section []*todo.Template, force *todo.Template) error {
	for i, t := range section {
		if t.Position == i && t != force {
			continue
		}
		t.Position = i
		if err := putTemplate(tx, t); err != nil {
			return err
		}
	}
	return nil
}

func findTemplate(templates []*todo.Template, id string) *todo.Template {
	for _, t := range templates {
		if t.ID == id {
			return t
		}
	}
	return nil
}

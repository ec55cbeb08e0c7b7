// Package template provides runners that manage templates.
package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/printers"
	"tableflip.dev/taskrace/pkg/todo"
	"tableflip.dev/taskrace/pkg/weekdays"
)

// List prints the templates, or one template's items when Ref is set.
type List struct {
	Service *app.Service
	Ref     string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

// Do prints the templates.
func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list templates, no service")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.Ref != "" {
		t, err := n.Service.FindTemplate(ctx, n.Ref)
		if err != nil {
			return err
		}
		l, err := n.Service.TemplateList(ctx, t.ID)
		if err != nil {
			return err
		}
		if n.JSON {
			return printers.JSON(n.Out, struct {
				Template *todo.Template `json:"template"`
				List     *todo.List     `json:"list"`
			}{t, l})
		}
		pp.TitleWithCount(fmt.Sprintf("%s (%s)", t.Name, t.Days), len(l.Items), "item")
		pp.Items(n.Service.Today(), l.Items...)
		return nil
	}

	templates, err := n.Service.Templates(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, templates)
	}
	pp.Templates(templates...)
	return nil
}

// Add creates a template, optionally scheduling it right away.
type Add struct {
	Service *app.Service
	Name    string
	Days    string
	Anytime bool
	Out     io.Writer
}

// Do creates the template.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add template, no service")
	}
	t, err := n.Service.AddTemplate(ctx, n.Name)
	if err != nil {
		return err
	}
	if n.Days != "" {
		days, err := weekdays.ParseSet(n.Days)
		if err != nil {
			return err
		}
		if t, err = n.Service.SetTemplateDays(ctx, t.ID, days); err != nil {
			return err
		}
	}
	if n.Anytime {
		if t, err = n.Service.SetAnytime(ctx, t.ID, true); err != nil {
			return err
		}
	}
	return show(ctx, n.Service, n.Out, t)
}

// Edit changes one template. Only the fields that are set are applied.
type Edit struct {
	Service *app.Service
	Ref     string

	Rename  string
	Days    string
	Toggle  string
	Anytime *bool
	MoveTo  *int
	Delete  bool

	Out io.Writer
}

// Do applies the edits in a fixed order: rename, days, toggle, anytime,
// move, then delete.
func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit template, no service")
	}
	t, err := n.Service.FindTemplate(ctx, n.Ref)
	if err != nil {
		return err
	}
	if n.Rename != "" {
		if t, err = n.Service.RenameTemplate(ctx, t.ID, n.Rename); err != nil {
			return err
		}
	}
	if n.Days != "" {
		days, err := weekdays.ParseSet(n.Days)
		if err != nil {
			return err
		}
		if t, err = n.Service.SetTemplateDays(ctx, t.ID, days); err != nil {
			return err
		}
	}
	if n.Toggle != "" {
		for _, raw := range strings.FieldsFunc(n.Toggle, func(r rune) bool { return r == ',' || r == ' ' }) {
			day, err := weekdays.ParseDay(raw)
			if err != nil {
				return err
			}
			if t, err = n.Service.ToggleTemplateDay(ctx, t.ID, day); err != nil {
				return err
			}
		}
	}
	if n.Anytime != nil {
		if t, err = n.Service.SetAnytime(ctx, t.ID, *n.Anytime); err != nil {
			return err
		}
	}
	if n.MoveTo != nil {
		if t, err = n.Service.MoveTemplate(ctx, t.ID, *n.MoveTo-1); err != nil {
			return err
		}
	}
	if n.Delete {
		if err := n.Service.DeleteTemplate(ctx, t.ID); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out(n.Out), "Deleted template %q.\n", t.Name)
		return nil
	}
	return show(ctx, n.Service, n.Out, t)
}

func show(ctx context.Context, svc *app.Service, w io.Writer, t *todo.Template) error {
	templates, err := svc.Templates(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: w}
	pp.Templates(templates...)
	_, _ = fmt.Fprintf(out(w), "%s: %s\n", t.Name, t.Days)
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return printers.Output()
	}
	return w
}

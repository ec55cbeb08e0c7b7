package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/todo"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

const idWidth = 8

var (
	spacing = strings.Repeat(" ", idWidth+2)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) string {
	if len(id) > idWidth {
		id = id[:idWidth]
	}
	return color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(id)
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

// Items prints a numbered checklist. The numbers are the 1-based indexes
// commands accept in place of an item ID.
func (pp *PrettyPrint) Items(today calendar.Date, items ...*todo.Item) {
	if len(items) == 0 {
		pp.none()
		return
	}
	done := color.New(color.Faint, color.CrossedOut)
	late := color.New(color.FgRed)
	faint := color.New(color.Faint)

	tbl := pp.table()
	for i, it := range items {
		row := []any{}
		if pp.ShowID {
			row = append(row, pp.id(it.ID))
		}
		box, name := "[ ]", it.Name
		switch {
		case it.Completed:
			box, name = "[x]", done.Sprint(it.Name)
		case it.Repeats:
			box = "[~]"
		}
		due := ""
		if it.DueDate != nil {
			due = "due " + it.DueDate.Key()
			if it.PastDue(today) {
				due = late.Sprint(due)
			}
		}
		row = append(row, fmt.Sprintf("%d.", i+1), box, name, faint.Sprint(it.Detail()), due)
		tbl.AddRow(row...)
	}
	if pp.ShowID {
		tbl.RightAlign(1)
	} else {
		tbl.RightAlign(0)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Day prints a day list followed by the anytime lists and past due items.
func (pp *PrettyPrint) Day(d calendar.Date, today calendar.Date, list *todo.List, anytime []app.AnytimeList, pastDue []app.PastDueItem) {
	pp.TitleWithCount(d.Display(), len(list.Items), "item")
	pp.Items(today, list.Items...)

	for _, a := range anytime {
		pp.TitleWithCount(a.Template.Name+" (anytime)", len(a.Items), "item")
		pp.Items(today, a.Items...)
	}

	if len(pastDue) > 0 {
		pp.TitleWithCount("Past due", len(pastDue), "item")
		items := make([]*todo.Item, 0, len(pastDue))
		for _, p := range pastDue {
			items = append(items, p.Item)
		}
		pp.Items(today, items...)
	}
}

func (pp *PrettyPrint) Templates(templates ...*todo.Template) {
	pp.TitleWithCount("Templates", len(templates), "template")
	if len(templates) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := pp.table()
	header := []any{bold.Sprint("#"), bold.Sprint("Name"), bold.Sprint("Days"), bold.Sprint("Section")}
	if pp.ShowID {
		header = append([]any{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, t := range templates {
		section := "regular"
		if t.Anytime {
			section = faint.Sprint("anytime")
		}
		row := []any{t.Position + 1, t.Name, t.Days.String(), section}
		if pp.ShowID {
			row = append([]any{pp.id(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Points(points int) {
	b := color.New(color.Bold, color.FgHiGreen)
	_, _ = b.Fprintf(pp.out(), "%d points\n", points)
}

func (pp *PrettyPrint) StoreItems(points int, items ...*todo.StoreItem) {
	pp.TitleWithCount("Store", len(items), "reward")
	if len(items) == 0 {
		pp.none()
		pp.Points(points)
		return
	}
	affordable := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	tbl := pp.table()
	for i, si := range items {
		price := faint.Sprintf("%dpts", si.Points)
		if si.Points <= points {
			price = affordable.Sprintf("%dpts", si.Points)
		}
		row := []any{fmt.Sprintf("%d.", i+1), si.Name, price}
		if pp.ShowID {
			row = append([]any{pp.id(si.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
	pp.Points(points)
}

func (pp *PrettyPrint) History(items ...*todo.HistoryItem) {
	pp.TitleWithCount("History", len(items), "entry")
	if len(items) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	for _, h := range items {
		tbl.AddRow(h.DateCompleted.Local().Format("2006-01-02 15:04"), h.Name, countLabel(h.Count), delta(h.Points))
	}
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	pp.Title(fmt.Sprintf("Report · last %s (%s → %s)", label, since, until))

	if len(result.Sections) == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  No points earned or spent in this window.")
		pp.NewLine()
		return
	}

	bold := color.New(color.Bold)
	for _, section := range result.Sections {
		_, _ = bold.Fprintf(pp.out(), "\n%s", section.Date.Display())
		_, _ = fmt.Fprintf(pp.out(), "  +%d / -%d\n", section.Earned, section.Spent)
		tbl := pp.table()
		for _, h := range section.Entries {
			tbl.AddRow("", h.Name, countLabel(h.Count), delta(h.Points))
		}
		tbl.RightAlign(3)
		_, _ = fmt.Fprintln(pp.out(), tbl)
	}
	pp.NewLine()
	_, _ = bold.Fprintf(pp.out(), "Earned %d, spent %d, net %s\n", result.Earned, result.Spent, delta(result.Net()))
}

func (pp *PrettyPrint) Days(days ...*todo.Day) {
	pp.TitleWithCount("Days", len(days), "day")
	if len(days) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	for _, d := range days {
		row := []any{d.Date.Key(), d.Date.Display()}
		if pp.ShowID {
			row = append([]any{pp.id(d.ListID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Unfinished(today calendar.Date, days ...app.UnfinishedDay) {
	if len(days) == 0 {
		pp.Title("Unfinished")
		pp.none()
		return
	}
	for _, u := range days {
		pp.TitleWithCount(u.Day.Date.Display(), len(u.Items), "open item")
		pp.Items(today, u.Items...)
	}
}

func (pp *PrettyPrint) Profiles(active string, profiles ...string) {
	for _, p := range profiles {
		if p == active {
			_, _ = color.New(color.Bold).Fprintf(pp.out(), "* %s\n", p)
			continue
		}
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", p)
	}
}

func (pp *PrettyPrint) Problems(problems ...app.Problem) {
	pp.TitleWithCount("Check", len(problems), "problem")
	if len(problems) == 0 {
		_, _ = color.New(color.FgGreen).Fprintln(pp.out(), spacing+"all records are valid")
		pp.NewLine()
		return
	}
	tbl := pp.table()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	for _, p := range problems {
		tbl.AddRow(color.RedString(p.Collection), p.Key, p.Err.Error())
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func countLabel(n int) string {
	if n <= 1 {
		return ""
	}
	return fmt.Sprintf("x%d", n)
}

func delta(points int) string {
	if points < 0 {
		return color.New(color.FgRed).Sprintf("%d", points)
	}
	return color.New(color.FgGreen).Sprintf("+%d", points)
}

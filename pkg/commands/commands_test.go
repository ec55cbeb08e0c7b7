package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/settings"
	"tableflip.dev/taskrace/pkg/store"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := New()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestCommandsEndToEnd(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	t.Setenv("TASKRACE_PATH", dir)
	t.Setenv("TASKRACE_CONFIG_PATH", dir)

	steps := [][]string{
		{"template", "add", "Chores", "--days", "every"},
		{"item", "add", "Laundry", "--points", "5", "--list", "Chores"},
		{"today"},
		{"item", "done", "1"},
		{"store", "add", "Movie", "--price", "3"},
		{"store", "buy", "Movie"},
		{"history"},
		{"report", "--last", "1d"},
		{"settings", "global-ordering", "on"},
		{"check"},
	}
	for _, args := range steps {
		if err := execute(t, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	set, err := settings.Load(dir)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !set.GetBool(settings.KeyGlobalOrdering) {
		t.Fatalf("expected global ordering to be saved")
	}
	st, err := store.Open(set, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc := &app.Service{Store: st}
	defer svc.Close()

	points, err := svc.Points(context.Background())
	if err != nil {
		t.Fatalf("points: %v", err)
	}
	if points != 2 {
		t.Fatalf("expected 2 points, got %d", points)
	}
}

func TestCommandsReportErrors(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	t.Setenv("TASKRACE_PATH", dir)
	t.Setenv("TASKRACE_CONFIG_PATH", dir)

	if err := execute(t, "store", "buy", "Nothing"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := execute(t, "profile", "use", "Nobody"); !errors.Is(err, settings.ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

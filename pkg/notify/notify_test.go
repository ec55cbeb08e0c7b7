package notify

import "testing"

func TestFormatReminder(t *testing.T) {
	tests := map[string]struct {
		open, pastDue, points int
		want                  string
	}{
		"one open":  {1, 0, 1, "1 item left today. You have 1 point."},
		"past due":  {3, 2, 10, "3 items left today, 2 past due. You have 10 points."},
		"none left": {0, 0, 0, "0 items left today. You have 0 points."},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			title, got := FormatReminder(tc.open, tc.pastDue, tc.points)
			if title != "TaskRace" {
				t.Fatalf("unexpected title %q", title)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

var windowUnits = map[string]time.Duration{
	"h":     time.Hour,
	"hr":    time.Hour,
	"hrs":   time.Hour,
	"hour":  time.Hour,
	"hours": time.Hour,
	"d":     24 * time.Hour,
	"day":   24 * time.Hour,
	"days":  24 * time.Hour,
	"w":     7 * 24 * time.Hour,
	"wk":    7 * 24 * time.Hour,
	"wks":   7 * 24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"weeks": 7 * 24 * time.Hour,
}

// ParseWindow parses a trailing window such as "3d" or "1w2d" and returns it
// with a canonical label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}
	var total time.Duration
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 || matches[2] == "" {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		unit, ok := windowUnits[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * unit
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration as weeks, days and hours, e.g. "1w2d".
func FormatWindow(d time.Duration) string {
	units := []struct {
		label string
		value time.Duration
	}{
		{"w", 7 * 24 * time.Hour},
		{"d", 24 * time.Hour},
		{"h", time.Hour},
	}
	var b strings.Builder
	for _, u := range units {
		if n := d / u.value; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.value
		}
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}

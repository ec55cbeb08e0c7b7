// Package timeutil parses the human-friendly durations used for item
// estimates and report windows.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]*)`)
	unitMinutes    = map[string]int{
		"":        1,
		"m":       1,
		"min":     1,
		"mins":    1,
		"minute":  1,
		"minutes": 1,
		"h":       60,
		"hr":      60,
		"hrs":     60,
		"hour":    60,
		"hours":   60,
	}
)

// ParseMinutes parses an estimate such as "45", "45m", "1h" or "1h30m" into
// whole minutes. A bare number is taken as minutes and an empty input is 0,
// meaning unset.
func ParseMinutes(input string) (int, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	total := 0
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		factor, ok := unitMinutes[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		total += value * factor
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}
	return total, nil
}

// FormatMinutes renders minutes compactly, e.g. "1h30m". Zero renders as "".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/taskrace/pkg/calendar"
)

// OnOptions selects a date.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28" or --on="2/28".`)
}

// GetOn parses the date, or returns nil when none was given. The short form
// resolves to the next occurrence, so 1/3 said on 12/5 means next year.
func (o *OnOptions) GetOn() (*calendar.Date, error) {
	return ParseDate(o.OnString, time.Now())
}

// ParseDate parses an optional date flag.
func ParseDate(raw string, now time.Time) (*calendar.Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := calendar.Parse(raw, now)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

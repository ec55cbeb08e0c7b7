package options

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// LogOptions controls diagnostic logging.
type LogOptions struct {
	Verbose bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug details to stderr.")
}

// Logger builds the command logger on w.
func (o *LogOptions) Logger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if o.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "taskrace",
		ReportTimestamp: o.Verbose,
	})
}

// Package notify sends desktop notifications.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier delivers one notification.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop notifies through the desktop's notification service.
type Desktop struct{}

func (Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// FormatReminder builds the reminder for the open and past due item counts.
func FormatReminder(open, pastDue, points int) (string, string) {
	title := "TaskRace"
	msg := fmt.Sprintf("%d %s left today", open, plural(open, "item"))
	if pastDue > 0 {
		msg += fmt.Sprintf(", %d past due", pastDue)
	}
	msg += fmt.Sprintf(". You have %d %s.", points, plural(points, "point"))
	return title, msg
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

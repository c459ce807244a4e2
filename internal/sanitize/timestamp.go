package sanitize

import (
	"fmt"
	"time"
)

// FormatRelative renders a timestamp the way the chat log displays it:
// recent times as an age relative to now, anything older than a day as an
// absolute date. A timestamp in the future renders as "just now".
func FormatRelative(now, t time.Time) string {
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return t.Format("2006-01-02 15:04")
	}
}

package projects

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders the age of t relative to now as "Just now", "Xm ago",
// "Xh ago" or "Xd ago". Timestamps in the future count as "Just now".
func FormatTimeAgo(now, t time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	}
}

// Label is the one-line form used by the recent list: "<name> | <language> | <age>".
func (p Project) Label(now time.Time) string {
	return fmt.Sprintf("%s | %s | %s", p.Name, p.Language, FormatTimeAgo(now, p.LastModified))
}

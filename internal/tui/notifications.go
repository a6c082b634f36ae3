package tui

import (
	"fmt"
	"strings"

	"github.com/colare/recruit/pkg/domain"
)

// bellLabel renders the notification bell with an unread dot.
func bellLabel(unread int) string {
	if unread <= 0 {
		return dimStyle.Render("🔔")
	}
	return normalStyle.Render("🔔") + unreadDotStyle.Render("●") + dimStyle.Render(fmt.Sprintf("%d", unread))
}

// notificationsView renders the notifications overlay. cursor marks the
// highlighted row.
func notificationsView(feed domain.NotificationFeed, cursor, width int) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Notifications"))
	if feed.UnreadCount > 0 {
		b.WriteString("  " + accentStyle.Render(fmt.Sprintf("%d unread", feed.UnreadCount)))
	}
	b.WriteString("\n\n")

	if len(feed.Notifications) == 0 {
		b.WriteString("  " + dimStyle.Render("No notifications") + "\n")
		return b.String()
	}

	labelWidth := width - 8
	if labelWidth < 20 {
		labelWidth = 20
	}
	for i, n := range feed.Notifications {
		prefix := "    "
		labelStyle := normalStyle
		if i == cursor {
			prefix = "  " + accentStyle.Render("▸") + " "
			labelStyle = selectedStyle
		}
		dot := " "
		if !n.IsRead {
			dot = unreadDotStyle.Render("●")
		}
		b.WriteString(prefix + dot + " " + labelStyle.Render(truncStr(n.Label(), labelWidth)) + "\n")
		b.WriteString("      " + metaStyle.Render(formatWhen(n.CreatedAt.Time)) + "\n")
	}
	return b.String()
}

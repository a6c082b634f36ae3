package domain

// Notification is a single entry of the company notification feed.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message,omitempty"`
	Type      string    `json:"type,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Label is the text shown for a notification: message, then title, then a placeholder.
func (n Notification) Label() string {
	if n.Message != "" {
		return n.Message
	}
	if n.Title != "" {
		return n.Title
	}
	return "Notification"
}

// NotificationFeed is the payload of /api/notifications.
type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

package chat

// NotificationType distinguishes the two message-center sub-lists.
type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
)

// Notification is one row in the received-likes or comment-replies list.
type Notification struct {
	ID        string           `yaml:"id"`
	Type      NotificationType `yaml:"type"`
	UserName  string           `yaml:"user"`
	Avatar    string           `yaml:"avatar"`
	Content   string           `yaml:"content,omitempty"` // comment text; empty for likes
	Timestamp string           `yaml:"time"`
}

// FilterNotifications selects the notifications of one type, preserving order.
func FilterNotifications(items []Notification, t NotificationType) []Notification {
	out := make([]Notification, 0, len(items))
	for _, n := range items {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

package domain

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationSuccess NotificationType = "success"
)

type Notification struct {
	ID      string
	Type    NotificationType
	Message string

	// UserID — адресат; пустая строка = broadcast всем.
	UserID string

	AutoHide bool
	Duration int // ms, используется только при AutoHide
}

// VisibleTo — broadcast или адресовано именно этому пользователю.
func (n Notification) VisibleTo(userID string) bool {
	return n.UserID == "" || n.UserID == userID
}

package domain

// NotificationStyle distinguishes success from failure notifications.
type NotificationStyle int

const (
	// NotifySuccess reports a completed user action.
	NotifySuccess NotificationStyle = iota
	// NotifyFailure reports a failed operation.
	NotifyFailure
)

// String returns the string representation.
func (s NotificationStyle) String() string {
	if s == NotifyFailure {
		return "failure"
	}
	return "success"
}

// Notification is a one-way message shown to the user.
type Notification struct {
	Style   NotificationStyle
	Title   string
	Message string
}

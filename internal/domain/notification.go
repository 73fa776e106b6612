package domain

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a transient user-facing message. Rendering is left to the
// consumer.
type Notification struct {
	Level   NotificationLevel
	Message string
}

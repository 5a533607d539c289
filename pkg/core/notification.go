package core

// NotificationOptions carries the user-visible details of an error.
type NotificationOptions struct {
	Detail      string
	Stack       string
	Dismissable bool
	// Source identifies the document the notification is about.
	Source string
}

// Notification is a user-visible error record.
type Notification interface {
	ID() string
	Message() string
	Options() NotificationOptions
	Dismissed() bool
	Dismiss()
}

// Notifier is the host's notification surface.
type Notifier interface {
	AddError(message string, opts NotificationOptions) Notification
	// Notifications returns the notifications still visible.
	Notifications() []Notification
}

package model

type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// Notification is a transient user-facing message. At most one is visible at
// a time; a new one replaces the current one and restarts its expiry timer.
type Notification struct {
	Message string
	Kind    NotifyKind
}

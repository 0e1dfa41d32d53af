package domain

// NotificationKind identifies the mutation that produced a notification.
type NotificationKind string

const (
	NotificationCreated NotificationKind = "CREATED"
	NotificationUpdated NotificationKind = "UPDATED"
	NotificationDeleted NotificationKind = "DELETED"
)

// Notification is a mutation event. It exists only in transit between the
// orchestrator and currently subscribed observers; it is never stored.
type Notification struct {
	Kind  NotificationKind `json:"kind"`
	Funko Funko            `json:"funko"`
}

package ports

import "github.com/madirex/funko-server/internal/core/domain"

// NotificationHub multicasts mutation events to live subscribers. Publish is
// fire-and-forget: a slow subscriber loses events rather than stalling the
// publisher or other subscribers.
type NotificationHub interface {
	Publish(n domain.Notification)
	// Subscribe returns a stream of future notifications and a cancel
	// function that releases the subscription. Nothing is replayed.
	Subscribe() (<-chan domain.Notification, func())
}

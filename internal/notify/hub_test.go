package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/domain"
)

func notif(kind domain.NotificationKind, name string) domain.Notification {
	return domain.Notification{Kind: kind, Funko: domain.Funko{Name: name}}
}

func TestSubscriberObservesMutationsInOrder(t *testing.T) {
	h := NewHub(8, zerolog.Nop())

	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(notif(domain.NotificationCreated, "x"))
	h.Publish(notif(domain.NotificationUpdated, "x"))
	h.Publish(notif(domain.NotificationDeleted, "x"))

	want := []domain.NotificationKind{
		domain.NotificationCreated,
		domain.NotificationUpdated,
		domain.NotificationDeleted,
	}
	for i, kind := range want {
		select {
		case n := <-ch:
			if n.Kind != kind {
				t.Fatalf("event %d: got %s, want %s", i, n.Kind, kind)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestLateSubscriberSeesNoReplay(t *testing.T) {
	h := NewHub(8, zerolog.Nop())

	h.Publish(notif(domain.NotificationCreated, "early"))

	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(notif(domain.NotificationUpdated, "late"))

	n := <-ch
	if n.Kind != domain.NotificationUpdated {
		t.Fatalf("late subscriber must only see events after subscribing, got %s", n.Kind)
	}
	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra event: %+v", extra)
	default:
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	h := NewHub(1, zerolog.Nop())

	_, cancelSlow := h.Subscribe() // never drained
	defer cancelSlow()
	fast, cancelFast := h.Subscribe()
	defer cancelFast()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			h.Publish(notif(domain.NotificationCreated, "n"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}

	// The fast subscriber still got at least its buffer's worth.
	select {
	case <-fast:
	case <-time.After(time.Second):
		t.Fatalf("fast subscriber starved")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	h := NewHub(8, zerolog.Nop())

	_, cancel := h.Subscribe()
	cancel()
	cancel() // must not panic

	if h.Subscribers() != 0 {
		t.Fatalf("expected no subscribers, got %d", h.Subscribers())
	}
	// Publishing after cancel must not panic on the closed channel.
	h.Publish(notif(domain.NotificationDeleted, "gone"))
}

func TestConcurrentPublishersAndSubscribers(t *testing.T) {
	h := NewHub(256, zerolog.Nop())

	const subscribers = 4
	const events = 50

	var recv sync.WaitGroup
	counts := make([]int, subscribers)
	for i := 0; i < subscribers; i++ {
		ch, cancel := h.Subscribe()
		defer cancel()
		recv.Add(1)
		go func(i int, ch <-chan domain.Notification) {
			defer recv.Done()
			for j := 0; j < events; j++ {
				select {
				case <-ch:
					counts[i]++
				case <-time.After(2 * time.Second):
					return
				}
			}
		}(i, ch)
	}

	var pub sync.WaitGroup
	for p := 0; p < 2; p++ {
		pub.Add(1)
		go func() {
			defer pub.Done()
			for i := 0; i < events/2; i++ {
				h.Publish(notif(domain.NotificationCreated, "c"))
			}
		}()
	}
	pub.Wait()
	recv.Wait()

	for i, n := range counts {
		if n != events {
			t.Fatalf("subscriber %d received %d of %d events", i, n, events)
		}
	}
}

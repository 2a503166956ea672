package panel

import (
	"sync"
	"time"
)

const defaultToastDuration = 2500 * time.Millisecond

// Notifier emits transient on-screen messages. A new notification
// immediately replaces whatever is displayed; each one is cleared after
// a fixed duration.
type Notifier struct {
	sink NotificationSink
	ttl  time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewNotifier creates a Notifier over sink. A non-positive ttl falls
// back to the default toast duration.
func NewNotifier(sink NotificationSink, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = defaultToastDuration
	}
	return &Notifier{sink: sink, ttl: ttl}
}

// Success shows a success notification.
func (n *Notifier) Success(message string) {
	n.show(Notification{Message: message})
}

// Error shows an error notification.
func (n *Notifier) Error(message string) {
	n.show(Notification{Message: message, IsError: true})
}

func (n *Notifier) show(notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	n.gen++
	gen := n.gen
	n.sink.Display(notification)
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// A newer notification has taken over the display.
		if gen != n.gen {
			return
		}
		n.sink.Clear()
	})
}

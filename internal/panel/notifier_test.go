package panel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncSink struct {
	mu        sync.Mutex
	displayed []Notification
	cleared   int
}

func (s *syncSink) Display(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayed = append(s.displayed, n)
}

func (s *syncSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
}

func (s *syncSink) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

func (s *syncSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.displayed))
	for i, n := range s.displayed {
		out[i] = n.Message
	}
	return out
}

func TestNotifierDefaultTTL(t *testing.T) {
	n := NewNotifier(&syncSink{}, 0)
	assert.Equal(t, defaultToastDuration, n.ttl)
}

func TestNotifierSuccessAndErrorFlags(t *testing.T) {
	sink := &syncSink{}
	n := NewNotifier(sink, time.Minute)

	n.Success("saved")
	n.Error("boom")

	require.Len(t, sink.displayed, 2)
	assert.Equal(t, Notification{Message: "saved"}, sink.displayed[0])
	assert.Equal(t, Notification{Message: "boom", IsError: true}, sink.displayed[1])
	assert.Equal(t, 0, sink.clearCount())
}

func TestNotifierClearsAfterTTL(t *testing.T) {
	sink := &syncSink{}
	n := NewNotifier(sink, 10*time.Millisecond)

	n.Success("saved")

	require.Eventually(t, func() bool {
		return sink.clearCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestNotifierNewerNotificationSupersedesOlder(t *testing.T) {
	sink := &syncSink{}
	n := NewNotifier(sink, 25*time.Millisecond)

	n.Success("first")
	n.Error("second")

	assert.Equal(t, []string{"first", "second"}, sink.messages())

	// Only the second notification's expiry clears the display.
	require.Eventually(t, func() bool {
		return sink.clearCount() >= 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, sink.clearCount())
}

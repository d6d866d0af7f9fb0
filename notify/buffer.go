package notify

import (
	"context"
	"sync"
)

// Buffer is a Notifier that collects notifications in memory.  It is safe
// for concurrent use, which makes it handy in tests and dry runs.
type Buffer struct {
	mutex sync.Mutex
	sent  []Notification
}

// NewBuffer returns a fully initialized Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Send appends the notification to the buffer
func (buffer *Buffer) Send(_ context.Context, notification Notification) error {
	buffer.mutex.Lock()
	defer buffer.mutex.Unlock()

	buffer.sent = append(buffer.sent, notification)
	return nil
}

// Sent returns a copy of every notification sent so far
func (buffer *Buffer) Sent() []Notification {
	buffer.mutex.Lock()
	defer buffer.mutex.Unlock()

	result := make([]Notification, len(buffer.sent))
	copy(result, buffer.sent)
	return result
}

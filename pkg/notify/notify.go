package notify

import (
	"sync"
	"time"

	"github.com/askholmes/holmes/pkg/model"
)

// DefaultTTL is how long a notification stays visible without a dismissal
const DefaultTTL = 3 * time.Second

// Queue holds at most one visible notification. Posting replaces the current
// one and restarts the auto-dismiss timer; there is no backlog.
type Queue struct {
	mu       sync.Mutex
	current  *model.Notification
	timer    *time.Timer
	ttl      time.Duration
	onChange func(*model.Notification)
}

// Option is a functional option for Queue
type Option func(*Queue)

// WithTTL overrides the auto-dismiss delay
func WithTTL(ttl time.Duration) Option {
	return func(q *Queue) {
		q.ttl = ttl
	}
}

// WithObserver registers a callback invoked with the new notification on
// every post, and with nil on every dismissal or expiry.
func WithObserver(fn func(*model.Notification)) Option {
	return func(q *Queue) {
		q.onChange = fn
	}
}

// New creates a notification queue
func New(opts ...Option) *Queue {
	q := &Queue{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Post replaces the visible notification and restarts the expiry timer
func (q *Queue) Post(message string, kind model.NotifyKind) {
	q.mu.Lock()

	if q.timer != nil {
		q.timer.Stop()
	}

	n := &model.Notification{Message: message, Kind: kind}
	q.current = n
	q.timer = time.AfterFunc(q.ttl, func() {
		q.expire(n)
	})

	onChange := q.onChange
	q.mu.Unlock()

	if onChange != nil {
		onChange(n)
	}
}

// Dismiss clears the visible notification immediately
func (q *Queue) Dismiss() {
	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	cleared := q.current != nil
	q.current = nil
	onChange := q.onChange
	q.mu.Unlock()

	if cleared && onChange != nil {
		onChange(nil)
	}
}

// Current returns the visible notification, or nil
func (q *Queue) Current() *model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current
}

// expire clears the notification only if it is still the visible one; a
// newer post owns its own timer.
func (q *Queue) expire(n *model.Notification) {
	q.mu.Lock()
	if q.current != n {
		q.mu.Unlock()
		return
	}
	q.current = nil
	q.timer = nil
	onChange := q.onChange
	q.mu.Unlock()

	if onChange != nil {
		onChange(nil)
	}
}

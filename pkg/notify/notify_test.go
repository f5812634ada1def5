package notify_test

import (
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/askholmes/holmes/pkg/model"
	"github.com/askholmes/holmes/pkg/notify"
)

func TestPostAndExpire(t *testing.T) {
	q := notify.New(notify.WithTTL(50 * time.Millisecond))

	q.Post("saved", model.NotifySuccess)
	n := q.Current()
	gt.V(t, n).NotNil()
	gt.Equal(t, n.Message, "saved")
	gt.Equal(t, n.Kind, model.NotifySuccess)

	time.Sleep(120 * time.Millisecond)
	gt.Nil(t, q.Current())
}

func TestPostReplacesCurrent(t *testing.T) {
	q := notify.New(notify.WithTTL(50 * time.Millisecond))

	q.Post("first", model.NotifySuccess)
	time.Sleep(30 * time.Millisecond)
	q.Post("second", model.NotifyError)

	// The first notification's timer would have fired by now; the second
	// must still be visible because posting restarted the countdown.
	time.Sleep(30 * time.Millisecond)
	n := q.Current()
	gt.V(t, n).NotNil()
	gt.Equal(t, n.Message, "second")

	time.Sleep(60 * time.Millisecond)
	gt.Nil(t, q.Current())
}

func TestDismiss(t *testing.T) {
	q := notify.New(notify.WithTTL(time.Hour))

	q.Post("sticky", model.NotifyError)
	gt.V(t, q.Current()).NotNil()

	q.Dismiss()
	gt.Nil(t, q.Current())

	// Dismissing with nothing visible is harmless
	q.Dismiss()
	gt.Nil(t, q.Current())
}

func TestObserver(t *testing.T) {
	var mu sync.Mutex
	var seen []*model.Notification

	q := notify.New(
		notify.WithTTL(30*time.Millisecond),
		notify.WithObserver(func(n *model.Notification) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, n)
		}),
	)

	q.Post("hello", model.NotifySuccess)
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	gt.A(t, seen).Length(2)
	gt.V(t, seen[0]).NotNil()
	gt.Equal(t, seen[0].Message, "hello")
	gt.Nil(t, seen[1])
}

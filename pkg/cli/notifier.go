package cli

import (
	"github.com/askholmes/holmes/pkg/model"
)

// captureNotifier keeps the last posted notification so one-shot commands
// can surface workflow outcome messages as their own output. The console
// uses a real notify.Queue instead.
type captureNotifier struct {
	last *model.Notification
}

func (n *captureNotifier) Post(message string, kind model.NotifyKind) {
	n.last = &model.Notification{Message: message, Kind: kind}
}

func (n *captureNotifier) message() string {
	if n.last == nil {
		return ""
	}
	return n.last.Message
}

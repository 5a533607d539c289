// Package notify implements the failure notification policy and an
// in-memory notification center for hosts without their own.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/lenient/pkg/core"
)

// Center is an in-memory core.Notifier. Notifications stay visible until
// they are dismissed; they never expire on their own.
type Center struct {
	mu     sync.Mutex
	items  []*notification
	logger *slog.Logger
}

// NewCenter creates an empty center. A nil logger disables logging.
func NewCenter(logger *slog.Logger) *Center {
	return &Center{logger: logger}
}

// AddError implements core.Notifier.
func (c *Center) AddError(message string, opts core.NotificationOptions) core.Notification {
	n := &notification{
		id:      uuid.NewString(),
		message: message,
		opts:    opts,
		created: time.Now(),
		center:  c,
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Error(message, "id", n.id, "detail", opts.Detail, "source", opts.Source)
	}
	return n
}

// Notifications implements core.Notifier.
func (c *Center) Notifications() []core.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]core.Notification, 0, len(c.items))
	for _, n := range c.items {
		if !n.dismissed {
			visible = append(visible, n)
		}
	}
	return visible
}

// All returns every notification ever added, dismissed ones included.
func (c *Center) All() []core.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := make([]core.Notification, len(c.items))
	for i, n := range c.items {
		all[i] = n
	}
	return all
}

type notification struct {
	id        string
	message   string
	opts      core.NotificationOptions
	created   time.Time
	dismissed bool
	center    *Center
}

func (n *notification) ID() string                        { return n.id }
func (n *notification) Message() string                   { return n.message }
func (n *notification) Options() core.NotificationOptions { return n.opts }

func (n *notification) Dismissed() bool {
	n.center.mu.Lock()
	defer n.center.mu.Unlock()
	return n.dismissed
}

func (n *notification) Dismiss() {
	n.center.mu.Lock()
	n.dismissed = true
	n.center.mu.Unlock()

	if n.center.logger != nil {
		n.center.logger.Debug("notification dismissed", "id", n.id, "message", n.message)
	}
}

var _ core.Notifier = (*Center)(nil)

// filepath: internal/workflow/notifications.go
package workflow

import (
	"time"

	"voicejournal/internal/logging"
)

// NotificationKind names a non-blocking message from the coordinator.
type NotificationKind string

const (
	NotifyStorageLow          NotificationKind = "storage.low"
	NotifyEnrichmentCompleted NotificationKind = "enrichment.completed"
	NotifyEnrichmentFailed    NotificationKind = "enrichment.failed"
)

// Notification is queued for whoever drains Notifications().
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	EntryID     string           `json:"entry_id,omitempty"`
	AvailableMB int64            `json:"available_mb,omitempty"`
	Message     string           `json:"message"`
	Err         error            `json:"-"`
	At          time.Time        `json:"at"`
}

const defaultNotificationBuffer = 32

// notify never blocks. Notifications are dropped when nobody drains the queue.
func (c *Coordinator) notify(n Notification) {
	n.At = c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.notes <- n:
	default:
		logging.Log.Debugf("Notification queue full, dropping %s", n.Kind)
	}
}

// Notifications returns the queue of coordinator notifications. It is closed by Shutdown.
func (c *Coordinator) Notifications() <-chan Notification {
	return c.notes
}

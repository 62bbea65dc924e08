package store

import (
	"context"
	"time"

	"github.com/nhle/fleet-dispatch/internal/model"
)

// Snapshot is the locally cached copy of the remote fleet data, used
// to warm-start the UI before the first fetch completes.
type Snapshot struct {
	Loads     []model.Load
	Drivers   []model.Driver
	Activity  []model.Activity
	FetchedAt time.Time
}

// Store defines the persistence interface for the local cache and
// notifications.
type Store interface {
	// SaveSnapshot atomically replaces the cached fleet data.
	SaveSnapshot(ctx context.Context, snap Snapshot) error

	// LoadSnapshot reads the cached fleet data. A zero FetchedAt means
	// the cache has never been written.
	LoadSnapshot(ctx context.Context) (Snapshot, error)

	// CreateNotification inserts a new notification record.
	CreateNotification(ctx context.Context, n model.Notification) error

	// GetUnreadNotifications retrieves all unread notifications,
	// newest first.
	GetUnreadNotifications(ctx context.Context) ([]model.Notification, error)

	// MarkNotificationRead marks a single notification as read.
	MarkNotificationRead(ctx context.Context, id string) error

	Close() error
}

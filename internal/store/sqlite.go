package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/fleet-dispatch/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveSnapshot atomically replaces the cached loads, drivers, and
// activity feed in a single transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"loads", "drivers", "activity"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertLoads(ctx, tx, snap.Loads); err != nil {
		return err
	}
	if err := insertDrivers(ctx, tx, snap.Drivers); err != nil {
		return err
	}
	if err := insertActivity(ctx, tx, snap.Activity); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO cache_meta (key, value) VALUES ('fetched_at', ?)`,
		snap.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording fetch time: %w", err)
	}

	return tx.Commit()
}

func insertLoads(ctx context.Context, tx *sqlx.Tx, loads []model.Load) error {
	const query = `
		INSERT INTO loads (
			id, load_id, broker_name, broker_load_number, driver_id,
			status, load_type, rate, temperature, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing load insert: %w", err)
	}
	defer stmt.Close()

	for _, ld := range loads {
		_, err = stmt.ExecContext(ctx,
			ld.ID, ld.LoadID, ld.BrokerName, ld.BrokerLoadNumber, ld.DriverID,
			ld.Status, ld.LoadType, ld.Rate, ld.Temperature,
			ld.CreatedAt.UTC(), ld.UpdatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("inserting load %s: %w", ld.LoadID, err)
		}
	}
	return nil
}

func insertDrivers(ctx context.Context, tx *sqlx.Tx, drivers []model.Driver) error {
	const query = `
		INSERT INTO drivers (
			id, name, status, truck_number,
			current_location_city, current_location_state,
			phone, email, available_date, available_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing driver insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range drivers {
		_, err = stmt.ExecContext(ctx,
			d.ID, d.Name, d.Status, d.TruckNumber,
			d.CurrentLocationCity, d.CurrentLocationState,
			d.Phone, d.Email, d.AvailableDate, d.AvailableTime,
		)
		if err != nil {
			return fmt.Errorf("inserting driver %d: %w", d.ID, err)
		}
	}
	return nil
}

func insertActivity(ctx context.Context, tx *sqlx.Tx, entries []model.Activity) error {
	const query = `
		INSERT INTO activity (
			activity_type, activity_id, note_id, load_id,
			note_text, note_type, previous_status, new_status,
			changed_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing activity insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range entries {
		_, err = stmt.ExecContext(ctx,
			a.Type, a.ActivityID, a.NoteID, a.LoadID,
			a.NoteText, a.NoteType, a.PreviousStatus, a.NewStatus,
			a.ChangedBy, a.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("inserting activity for load %s: %w", a.LoadID, err)
		}
	}
	return nil
}

// LoadSnapshot reads the cached fleet data. A zero FetchedAt means the
// cache has never been written.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	var fetchedAt string
	err := s.db.GetContext(ctx, &fetchedAt,
		"SELECT value FROM cache_meta WHERE key = 'fetched_at'",
	)
	if err == sql.ErrNoRows {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("reading fetch time: %w", err)
	}
	if snap.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt); err != nil {
		return snap, fmt.Errorf("parsing fetch time %q: %w", fetchedAt, err)
	}

	err = s.db.SelectContext(ctx, &snap.Loads,
		"SELECT * FROM loads ORDER BY created_at DESC",
	)
	if err != nil {
		return snap, fmt.Errorf("querying cached loads: %w", err)
	}

	err = s.db.SelectContext(ctx, &snap.Drivers,
		"SELECT * FROM drivers ORDER BY name",
	)
	if err != nil {
		return snap, fmt.Errorf("querying cached drivers: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM activity ORDER BY created_at DESC",
	)
	if err != nil {
		return snap, fmt.Errorf("querying cached activity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return snap, err
		}
		snap.Activity = append(snap.Activity, a)
	}

	return snap, rows.Err()
}

// CreateNotification inserts a new notification record.
func (s *SQLiteStore) CreateNotification(
	ctx context.Context,
	n model.Notification,
) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, load_id, message, read, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.LoadID, n.Message,
		boolToInt(n.Read), n.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

// GetUnreadNotifications retrieves all notifications that have not been read,
// ordered by creation time descending.
func (s *SQLiteStore) GetUnreadNotifications(
	ctx context.Context,
) ([]model.Notification, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM notifications WHERE read = 0 ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying unread notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkNotificationRead marks a single notification as read.
func (s *SQLiteStore) MarkNotificationRead(
	ctx context.Context,
	id string,
) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("marking notification %s as read: %w", id, err)
	}
	return nil
}

// scanActivity scans an activity row from a sqlx.Rows result set.
func scanActivity(rows *sqlx.Rows) (model.Activity, error) {
	var (
		a         model.Activity
		createdAt time.Time
	)

	err := rows.Scan(
		&a.Type, &a.ActivityID, &a.NoteID, &a.LoadID,
		&a.NoteText, &a.NoteType, &a.PreviousStatus, &a.NewStatus,
		&a.ChangedBy, &createdAt,
	)
	if err != nil {
		return model.Activity{}, fmt.Errorf("scanning activity row: %w", err)
	}

	a.CreatedAt = createdAt
	return a, nil
}

// scanNotification scans a notification row from a sqlx.Rows result set.
func scanNotification(rows *sqlx.Rows) (model.Notification, error) {
	var (
		n         model.Notification
		readInt   int
		createdAt time.Time
	)

	err := rows.Scan(
		&n.ID, &n.LoadID, &n.Message, &readInt, &createdAt,
	)
	if err != nil {
		return model.Notification{}, fmt.Errorf("scanning notification row: %w", err)
	}

	n.Read = readInt != 0
	n.CreatedAt = createdAt

	return n, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS loads (
	id                 INTEGER PRIMARY KEY,
	load_id            TEXT NOT NULL UNIQUE,
	broker_name        TEXT NOT NULL DEFAULT '',
	broker_load_number TEXT NOT NULL DEFAULT '',
	driver_id          INTEGER,
	status             TEXT NOT NULL DEFAULT '',
	load_type          TEXT NOT NULL DEFAULT '',
	rate               REAL NOT NULL DEFAULT 0,
	temperature        TEXT NOT NULL DEFAULT '',
	created_at         DATETIME NOT NULL,
	updated_at         DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS drivers (
	id                     INTEGER PRIMARY KEY,
	name                   TEXT NOT NULL,
	status                 TEXT NOT NULL DEFAULT '',
	truck_number           TEXT NOT NULL DEFAULT '',
	current_location_city  TEXT NOT NULL DEFAULT '',
	current_location_state TEXT NOT NULL DEFAULT '',
	phone                  TEXT NOT NULL DEFAULT '',
	email                  TEXT NOT NULL DEFAULT '',
	available_date         TEXT NOT NULL DEFAULT '',
	available_time         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS activity (
	activity_type   TEXT NOT NULL,
	activity_id     INTEGER NOT NULL DEFAULT 0,
	note_id         INTEGER NOT NULL DEFAULT 0,
	load_id         TEXT NOT NULL,
	note_text       TEXT NOT NULL DEFAULT '',
	note_type       TEXT NOT NULL DEFAULT '',
	previous_status TEXT NOT NULL DEFAULT '',
	new_status      TEXT NOT NULL DEFAULT '',
	changed_by      TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	load_id    TEXT NOT NULL,
	message    TEXT NOT NULL,
	read       INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cache_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_loads_status ON loads(status);
CREATE INDEX IF NOT EXISTS idx_loads_created_at ON loads(created_at);
CREATE INDEX IF NOT EXISTS idx_activity_created ON activity(created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_notifications_load_id
	ON notifications(load_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}

package sqlite

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

CREATE TABLE IF NOT EXISTS goals (
	id                    TEXT PRIMARY KEY,
	title                 TEXT NOT NULL,
	weekly_target_minutes INTEGER NOT NULL CHECK (weekly_target_minutes > 0),
	week_start_day        INTEGER NOT NULL CHECK (week_start_day BETWEEN 0 AND 6),
	created_at            TEXT NOT NULL,
	is_active             INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS records (
	id                    TEXT PRIMARY KEY,
	goal_id               TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
	date                  TEXT NOT NULL,
	day                   TEXT NOT NULL,
	duration_minutes      INTEGER NOT NULL DEFAULT 0,
	start_time            TEXT,
	end_time              TEXT,
	clock_in_time         TEXT,
	clock_out_time        TEXT,
	work_duration_minutes INTEGER NOT NULL DEFAULT 0,
	notes                 TEXT NOT NULL DEFAULT '',
	created_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_goals_active ON goals(is_active, created_at);
CREATE INDEX IF NOT EXISTS idx_records_goal_date ON records(goal_id, date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE UNIQUE INDEX IF NOT EXISTS idx_records_clock_day
	ON records(goal_id, day)
	WHERE clock_in_time IS NOT NULL OR clock_out_time IS NOT NULL;

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
ALTER TABLE records ADD COLUMN clock_session INTEGER NOT NULL DEFAULT 0;

UPDATE records SET clock_session = 1
	WHERE clock_in_time IS NOT NULL OR clock_out_time IS NOT NULL;

DROP INDEX IF EXISTS idx_records_clock_day;

CREATE UNIQUE INDEX IF NOT EXISTS idx_records_clock_session_day
	ON records(goal_id, day)
	WHERE clock_session = 1 OR clock_in_time IS NOT NULL OR clock_out_time IS NOT NULL;

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}

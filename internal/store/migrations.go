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

CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	next_id    INTEGER NOT NULL DEFAULT 1 CHECK(next_id >= 1),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
	project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	id          INTEGER NOT NULL CHECK(id >= 1),
	description TEXT NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	priority    INTEGER NOT NULL DEFAULT 2 CHECK(priority BETWEEN 1 AND 3),
	due_date    DATETIME,
	category    TEXT NOT NULL DEFAULT '',
	parent_id   INTEGER,
	recurrence  TEXT NOT NULL DEFAULT ''
		CHECK(recurrence IN ('', 'daily', 'weekly', 'monthly')),
	depends_on  TEXT NOT NULL DEFAULT '[]',
	PRIMARY KEY (project_id, id)
);

CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_parent_id ON tasks(project_id, parent_id);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(project_id, category);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

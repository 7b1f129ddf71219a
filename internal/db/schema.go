package db

// position columns keep dataset order, which adjacency and search results
// depend on.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clusters (
		key      TEXT PRIMARY KEY,
		color    TEXT NOT NULL DEFAULT '',
		label    TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		key      TEXT PRIMARY KEY,
		image    TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS nodes (
		key      TEXT PRIMARY KEY,
		label    TEXT NOT NULL DEFAULT '',
		tag      TEXT NOT NULL REFERENCES tags(key),
		cluster  TEXT NOT NULL REFERENCES clusters(key),
		url      TEXT,
		x        REAL NOT NULL DEFAULT 0,
		y        REAL NOT NULL DEFAULT 0,
		size     REAL NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS node_provenance (
		node_key       TEXT NOT NULL REFERENCES nodes(key) ON DELETE CASCADE,
		provenance_key TEXT NOT NULL,
		position       INTEGER NOT NULL,
		PRIMARY KEY (node_key, provenance_key)
	)`,
	`CREATE TABLE IF NOT EXISTS edges (
		source   TEXT NOT NULL REFERENCES nodes(key) ON DELETE CASCADE,
		target   TEXT NOT NULL REFERENCES nodes(key) ON DELETE CASCADE,
		weight   REAL,
		position INTEGER NOT NULL,
		PRIMARY KEY (source, target)
	)`,
	`CREATE TABLE IF NOT EXISTS provenance (
		key          TEXT PRIMARY KEY,
		abbreviation TEXT NOT NULL DEFAULT '',
		name         TEXT NOT NULL DEFAULT '',
		citation     TEXT NOT NULL DEFAULT '',
		doi          TEXT NOT NULL DEFAULT '',
		position     INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		label           TEXT NOT NULL,
		position        INTEGER NOT NULL,
		text            TEXT NOT NULL,
		level           TEXT NOT NULL DEFAULT '',
		tense           TEXT NOT NULL DEFAULT '',
		context         TEXT NOT NULL DEFAULT '',
		machine_drafted INTEGER NOT NULL DEFAULT 0,
		human_edited    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (label, position)
	)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS nodes_fts USING fts5(key UNINDEXED, label)`,
}

// tables in delete order
var tables = []string{"nodes_fts", "items", "provenance", "edges", "node_provenance", "nodes", "tags", "clusters", "meta"}

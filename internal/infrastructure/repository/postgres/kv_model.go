package postgres

import "time"

const kvEntriesTable = "kv_entries"

type kvEntryTableModel struct {
	Workspace string    `db:"workspace"`
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

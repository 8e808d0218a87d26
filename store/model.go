package store

import "database/sql"

// NoteRecord is a row of the notes table as the drivers return it.
type NoteRecord struct {
	ID        int64        `db:"id"`
	Title     string       `db:"title"`
	Content   string       `db:"content"`
	CreatedAt sql.NullTime `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

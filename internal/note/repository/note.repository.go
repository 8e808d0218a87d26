package repository

import (
	"context"
	"database/sql"

	"quicknote/config/database"
	"quicknote/internal/note/model"
	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"
	"quicknote/store"
)

type NoteRepository struct {
	Pool *database.Pool
}

func NewNoteRepository(pool *database.Pool) *NoteRepository {
	return &NoteRepository{Pool: pool}
}

func (r *NoteRepository) Create(ctx context.Context, title, content string) (int64, error) {
	db, err := r.Pool.DB()
	if err != nil {
		return 0, err
	}

	var id int64
	if r.Pool.Dialect().Returning {
		err = db.QueryRowxContext(ctx, db.Rebind(`INSERT INTO notes (title, content) VALUES (?, ?) RETURNING id`),
			title, content).Scan(&id)
	} else {
		var res sql.Result
		res, err = db.ExecContext(ctx, db.Rebind(`INSERT INTO notes (title, content) VALUES (?, ?)`), title, content)
		if err == nil {
			id, err = res.LastInsertId()
		}
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to create note: %v", err)
		return 0, apperr.Store(apperr.OpCreate, err)
	}
	return id, nil
}

func (r *NoteRepository) List(ctx context.Context) ([]model.Note, error) {
	db, err := r.Pool.DB()
	if err != nil {
		return nil, err
	}

	var records []store.NoteRecord
	err = db.SelectContext(ctx, &records,
		`SELECT id, title, content, created_at, updated_at FROM notes ORDER BY id DESC`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes: %v", err)
		return nil, apperr.Store(apperr.OpList, err)
	}

	notes := make([]model.Note, 0, len(records))
	for _, rec := range records {
		notes = append(notes, toNote(rec))
	}
	return notes, nil
}

// Update rewrites title and content and refreshes updated_at. It returns the
// number of rows matched; a missing id is not an error.
func (r *NoteRepository) Update(ctx context.Context, id int64, title, content string) (int64, error) {
	db, err := r.Pool.DB()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx,
		db.Rebind(`UPDATE notes SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`),
		title, content, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to update note %d: %v", id, err)
		return 0, apperr.Store(apperr.OpUpdate, err)
	}
	return affected(res), nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	db, err := r.Pool.DB()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM notes WHERE id = ?`), id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %d: %v", id, err)
		return 0, apperr.Store(apperr.OpDelete, err)
	}
	return affected(res), nil
}

// affected is best effort: some drivers cannot report it and the caller only logs it.
func affected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return -1
	}
	return n
}

func toNote(rec store.NoteRecord) model.Note {
	return model.Note{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		CreatedAt: formatTime(rec.CreatedAt),
		UpdatedAt: formatTime(rec.UpdatedAt),
	}
}

func formatTime(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format(model.TimeLayout)
	return &s
}

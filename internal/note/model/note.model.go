package model

// TimeLayout renders note timestamps as YYYY-MM-DD HH:MM:SS.
const TimeLayout = "2006-01-02 15:04:05"

// MaxQuickTitleLen is the number of characters kept when a title is derived from content.
const MaxQuickTitleLen = 40

type Note struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

type QuickNoteRequest struct {
	Content string `json:"content" validate:"notblank"`
}

type UpdateNoteRequest struct {
	ID      int64  `json:"id"`
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

type DeleteNoteRequest struct {
	ID int64 `json:"id"`
}

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ChangeEvent is published after a note is written.
type ChangeEvent struct {
	Action string `json:"action"`
	ID     int64  `json:"id"`
}

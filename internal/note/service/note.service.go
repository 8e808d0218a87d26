package service

import (
	"context"
	"strings"
	"time"

	"quicknote/internal/note/model"
	"quicknote/pkg/logger"
	"quicknote/pkg/validator"
)

// NoteStore is the persistence the service needs; *repository.NoteRepository implements it.
type NoteStore interface {
	Create(ctx context.Context, title, content string) (int64, error)
	List(ctx context.Context) ([]model.Note, error)
	Update(ctx context.Context, id int64, title, content string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Notifier receives an event after every successful write. It must not block.
type Notifier interface {
	NotesChanged(event model.ChangeEvent)
}

type NoteService struct {
	Repo     NoteStore
	Notifier Notifier

	validate *validator.Validator
	now      func() time.Time
}

// NewNoteService builds the service. notifier may be nil.
func NewNoteService(repo NoteStore, notifier Notifier) *NoteService {
	return &NoteService{
		Repo:     repo,
		Notifier: notifier,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *NoteService) CreateNote(ctx context.Context, req model.CreateNoteRequest) (int64, error) {
	if err := s.validate.Validate(req); err != nil {
		return 0, err
	}
	id, err := s.Repo.Create(ctx, req.Title, req.Content)
	if err != nil {
		return 0, err
	}
	s.notify(model.ActionCreate, id)
	return id, nil
}

// CreateNoteQuick derives the title from the content and stores the content as given.
func (s *NoteService) CreateNoteQuick(ctx context.Context, req model.QuickNoteRequest) (int64, error) {
	if err := s.validate.Validate(req); err != nil {
		return 0, err
	}
	return s.CreateNote(ctx, model.CreateNoteRequest{
		Title:   QuickTitle(req.Content, s.now()),
		Content: req.Content,
	})
}

func (s *NoteService) ListNotes(ctx context.Context) ([]model.Note, error) {
	return s.Repo.List(ctx)
}

func (s *NoteService) UpdateNote(ctx context.Context, req model.UpdateNoteRequest) error {
	if err := s.validate.Validate(req); err != nil {
		return err
	}
	n, err := s.Repo.Update(ctx, req.ID, req.Title, req.Content)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Sugar.Debugf("update_note: no note with id %d", req.ID)
	}
	s.notify(model.ActionUpdate, req.ID)
	return nil
}

func (s *NoteService) DeleteNote(ctx context.Context, req model.DeleteNoteRequest) error {
	n, err := s.Repo.Delete(ctx, req.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Sugar.Debugf("delete_note: no note with id %d", req.ID)
	}
	s.notify(model.ActionDelete, req.ID)
	return nil
}

func (s *NoteService) notify(action string, id int64) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.NotesChanged(model.ChangeEvent{Action: action, ID: id})
}

// QuickTitle returns the first line of the trimmed content, cut to
// model.MaxQuickTitleLen characters, or a 快记-YYYYMMDD-HHMMSS placeholder
// when that line is blank.
func QuickTitle(content string, now time.Time) string {
	first, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	first = strings.TrimSuffix(first, "\r")

	if runes := []rune(first); len(runes) > model.MaxQuickTitleLen {
		first = string(runes[:model.MaxQuickTitleLen])
	}
	if strings.TrimSpace(first) == "" {
		return "快记-" + now.Format("20060102-150405")
	}
	return first
}

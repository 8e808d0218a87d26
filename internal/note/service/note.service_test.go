package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/internal/note/model"
	"quicknote/pkg/apperr"
)

type fakeStore struct {
	created  []model.CreateNoteRequest
	updated  []model.UpdateNoteRequest
	deleted  []int64
	nextID   int64
	affected int64
	err      error
}

func (f *fakeStore) Create(_ context.Context, title, content string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.created = append(f.created, model.CreateNoteRequest{Title: title, Content: content})
	return f.nextID, nil
}

func (f *fakeStore) List(_ context.Context) ([]model.Note, error) {
	return []model.Note{}, f.err
}

func (f *fakeStore) Update(_ context.Context, id int64, title, content string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.updated = append(f.updated, model.UpdateNoteRequest{ID: id, Title: title, Content: content})
	return f.affected, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deleted = append(f.deleted, id)
	return f.affected, nil
}

type recordingNotifier struct {
	events []model.ChangeEvent
}

func (n *recordingNotifier) NotesChanged(e model.ChangeEvent) {
	n.events = append(n.events, e)
}

func newTestService() (*NoteService, *fakeStore, *recordingNotifier) {
	store := &fakeStore{}
	notifier := &recordingNotifier{}
	svc := NewNoteService(store, notifier)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 8, 5, 9, 0, time.Local) }
	return svc, store, notifier
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Field
}

func TestCreateNote(t *testing.T) {
	svc, store, notifier := newTestService()

	id, err := svc.CreateNote(context.Background(), model.CreateNoteRequest{Title: "Title", Content: "Body"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, []model.CreateNoteRequest{{Title: "Title", Content: "Body"}}, store.created)
	assert.Equal(t, []model.ChangeEvent{{Action: model.ActionCreate, ID: 1}}, notifier.events)
}

func TestCreateNoteValidation(t *testing.T) {
	svc, store, notifier := newTestService()

	_, err := svc.CreateNote(context.Background(), model.CreateNoteRequest{Title: "", Content: "x"})
	assert.Equal(t, apperr.FieldTitle, fieldOf(t, err))
	assert.Equal(t, "标题不能为空", err.Error())

	_, err = svc.CreateNote(context.Background(), model.CreateNoteRequest{Title: "x", Content: "  \n"})
	assert.Equal(t, apperr.FieldContent, fieldOf(t, err))

	assert.Empty(t, store.created)
	assert.Empty(t, notifier.events)
}

func TestCreateNoteStoreError(t *testing.T) {
	svc, store, notifier := newTestService()
	store.err = apperr.Store(apperr.OpCreate, errors.New("down"))

	_, err := svc.CreateNote(context.Background(), model.CreateNoteRequest{Title: "t", Content: "c"})
	assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
	assert.Empty(t, notifier.events)
}

func TestCreateNoteQuick(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.CreateNoteQuick(context.Background(), model.QuickNoteRequest{Content: "Hello\nworld"})
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, "Hello", store.created[0].Title)
	assert.Equal(t, "Hello\nworld", store.created[0].Content)
}

func TestCreateNoteQuickKeepsUntrimmedContent(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.CreateNoteQuick(context.Background(), model.QuickNoteRequest{Content: "\n  todo: call back\r\nlater "})
	require.NoError(t, err)
	assert.Equal(t, "todo: call back", store.created[0].Title)
	assert.Equal(t, "\n  todo: call back\r\nlater ", store.created[0].Content)
}

func TestCreateNoteQuickEmpty(t *testing.T) {
	svc, store, _ := newTestService()

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreateNoteQuick(context.Background(), model.QuickNoteRequest{Content: content})
		assert.Equal(t, apperr.FieldContent, fieldOf(t, err))
	}
	assert.Empty(t, store.created)
}

func TestQuickTitleTruncates(t *testing.T) {
	now := time.Now()

	long := strings.Repeat("a", 100)
	assert.Equal(t, strings.Repeat("a", 40), QuickTitle(long, now))

	wide := strings.Repeat("笔", 41) + "\nrest"
	title := QuickTitle(wide, now)
	assert.Equal(t, 40, len([]rune(title)))
	assert.Equal(t, strings.Repeat("笔", 40), title)

	assert.Equal(t, "short", QuickTitle("short", now))
}

func TestQuickTitleFallback(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	assert.Equal(t, "快记-20260102-030405", QuickTitle("", now))
	assert.Equal(t, "快记-20260102-030405", QuickTitle(" \n ", now))
}

func TestListNotes(t *testing.T) {
	svc, _, _ := newTestService()

	notes, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
}

func TestUpdateNote(t *testing.T) {
	svc, store, notifier := newTestService()
	store.affected = 1

	err := svc.UpdateNote(context.Background(), model.UpdateNoteRequest{ID: 4, Title: "t2", Content: "c2"})
	require.NoError(t, err)
	assert.Equal(t, []model.UpdateNoteRequest{{ID: 4, Title: "t2", Content: "c2"}}, store.updated)
	assert.Equal(t, []model.ChangeEvent{{Action: model.ActionUpdate, ID: 4}}, notifier.events)
}

func TestUpdateNoteMissingIDSucceeds(t *testing.T) {
	svc, store, _ := newTestService()
	store.affected = 0

	assert.NoError(t, svc.UpdateNote(context.Background(), model.UpdateNoteRequest{ID: 99, Title: "t", Content: "c"}))
}

func TestUpdateNoteValidation(t *testing.T) {
	svc, store, _ := newTestService()

	err := svc.UpdateNote(context.Background(), model.UpdateNoteRequest{ID: 1, Title: " ", Content: "c"})
	assert.Equal(t, apperr.FieldTitle, fieldOf(t, err))
	assert.Empty(t, store.updated)
}

func TestDeleteNote(t *testing.T) {
	svc, store, notifier := newTestService()

	require.NoError(t, svc.DeleteNote(context.Background(), model.DeleteNoteRequest{ID: 8}))
	require.NoError(t, svc.DeleteNote(context.Background(), model.DeleteNoteRequest{ID: 8}))
	assert.Equal(t, []int64{8, 8}, store.deleted)
	assert.Len(t, notifier.events, 2)
}

func TestNilNotifier(t *testing.T) {
	svc := NewNoteService(&fakeStore{}, nil)
	_, err := svc.CreateNote(context.Background(), model.CreateNoteRequest{Title: "t", Content: "c"})
	assert.NoError(t, err)
}

package note

import (
	"context"

	"quicknote/internal/command"
	"quicknote/internal/note/model"
	"quicknote/internal/note/service"
)

// Command names as the shell invokes them.
const (
	CmdCreateNoteQuick = "create_note_quick"
	CmdCreateNote      = "create_note"
	CmdListNotes       = "list_notes"
	CmdUpdateNote      = "update_note"
	CmdDeleteNote      = "delete_note"
)

// RegisterCommands exposes the note service on reg. Update and delete
// return nil, which transports encode as null.
func RegisterCommands(reg *command.Registry, svc *service.NoteService) {
	reg.Register(CmdCreateNoteQuick, command.Bind(CmdCreateNoteQuick,
		func(ctx context.Context, req model.QuickNoteRequest) (any, error) {
			return svc.CreateNoteQuick(ctx, req)
		}))

	reg.Register(CmdCreateNote, command.Bind(CmdCreateNote,
		func(ctx context.Context, req model.CreateNoteRequest) (any, error) {
			return svc.CreateNote(ctx, req)
		}))

	reg.Register(CmdListNotes, command.Bind(CmdListNotes,
		func(ctx context.Context, _ struct{}) (any, error) {
			return svc.ListNotes(ctx)
		}))

	reg.Register(CmdUpdateNote, command.Bind(CmdUpdateNote,
		func(ctx context.Context, req model.UpdateNoteRequest) (any, error) {
			return nil, svc.UpdateNote(ctx, req)
		}))

	reg.Register(CmdDeleteNote, command.Bind(CmdDeleteNote,
		func(ctx context.Context, req model.DeleteNoteRequest) (any, error) {
			return nil, svc.DeleteNote(ctx, req)
		}))
}

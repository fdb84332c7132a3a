package cli

import (
	"context"
	"fmt"
)

func (a *App) noteAdd(ctx context.Context, taskID int64) error {
	content, err := promptLine(a.in, a.out, "Note content")
	if err != nil {
		return err
	}

	view, err := a.services.Notes.AddNote(ctx, taskID, content)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Note %d added to task %d.\n", view.NoteID, view.TaskID)
	return nil
}

func (a *App) noteList(ctx context.Context, taskID int64) error {
	views, err := a.services.Notes.ListNotes(ctx, taskID)
	if err != nil {
		return err
	}

	if len(views) == 0 {
		fmt.Fprintln(a.out, "No notes on this task.")
		return nil
	}

	printNoteList(a.out, views)
	return nil
}

func (a *App) noteEdit(ctx context.Context, noteID int64) error {
	content, err := promptLine(a.in, a.out, "New content")
	if err != nil {
		return err
	}

	view, err := a.services.Notes.EditNote(ctx, noteID, content)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Note %d updated.\n", view.NoteID)
	return nil
}

func (a *App) noteDelete(ctx context.Context, noteID int64) error {
	if err := a.services.Notes.DeleteNote(ctx, noteID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Note %d deleted.\n", noteID)
	return nil
}

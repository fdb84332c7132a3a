package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/internal/session"
	"github.com/amekhanov/taskvault/internal/store"
	"github.com/amekhanov/taskvault/models"
)

// noteService is the concrete implementation of [NoteService]. A note has
// no owner column of its own; every access is authorised through the task
// it belongs to.
type noteService struct {
	noteRepository store.NoteRepository
	taskRepository store.TaskRepository
	session        *session.Context
	logger         *logger.Logger
}

// NewNoteService constructs a [NoteService] bound to the given repositories
// and session context.
func NewNoteService(
	noteRepository store.NoteRepository,
	taskRepository store.TaskRepository,
	sess *session.Context,
	logger *logger.Logger,
) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		taskRepository: taskRepository,
		session:        sess,
		logger:         logger,
	}
}

// AddNote encrypts content under the session cipher and attaches it to an
// owned task.
func (s *noteService) AddNote(ctx context.Context, taskID int64, content string) (models.NoteView, error) {
	log := logger.FromContextOr(ctx, s.logger)

	cipher, err := s.session.CurrentCipher()
	if err != nil {
		return models.NoteView{}, err
	}

	if content == "" {
		return models.NoteView{}, ErrInvalidDataProvided
	}

	if _, err := s.assertTaskAccessible(ctx, taskID); err != nil {
		return models.NoteView{}, err
	}

	blob, err := cipher.Encrypt(content)
	if err != nil {
		log.Err(err).Msg("note encryption failed")
		return models.NoteView{}, fmt.Errorf("note encryption failed: %w", err)
	}

	now := time.Now().UTC()
	note := models.TaskNote{
		TaskID:      taskID,
		ContentBlob: blob,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("task_id", taskID).Msg("note creation ended with error")
		return models.NoteView{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return s.decryptNote(created)
}

// ListNotes returns all decrypted notes of an owned task, oldest first.
func (s *noteService) ListNotes(ctx context.Context, taskID int64) ([]models.NoteView, error) {
	log := logger.FromContextOr(ctx, s.logger)

	if err := s.session.RequireAuthenticated(); err != nil {
		return nil, err
	}

	if _, err := s.assertTaskAccessible(ctx, taskID); err != nil {
		return nil, err
	}

	notes, err := s.noteRepository.FindNotesByTask(ctx, taskID)
	if err != nil {
		log.Err(err).Int64("task_id", taskID).Msg("note listing ended with error")
		return nil, fmt.Errorf("note listing ended with error: %w", err)
	}

	views := make([]models.NoteView, 0, len(notes))
	for _, note := range notes {
		view, err := s.decryptNote(note)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

// EditNote replaces the note content, re-encrypting with a fresh nonce.
func (s *noteService) EditNote(ctx context.Context, noteID int64, content string) (models.NoteView, error) {
	log := logger.FromContextOr(ctx, s.logger)

	cipher, err := s.session.CurrentCipher()
	if err != nil {
		return models.NoteView{}, err
	}

	if content == "" {
		return models.NoteView{}, ErrInvalidDataProvided
	}

	note, err := s.getAccessibleNote(ctx, noteID)
	if err != nil {
		return models.NoteView{}, err
	}

	blob, err := cipher.Encrypt(content)
	if err != nil {
		log.Err(err).Msg("note encryption failed")
		return models.NoteView{}, fmt.Errorf("note encryption failed: %w", err)
	}

	note.ContentBlob = blob
	note.UpdatedAt = time.Now().UTC()

	updated, err := s.noteRepository.UpdateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note update ended with error")
		return models.NoteView{}, fmt.Errorf("note update ended with error: %w", err)
	}

	return s.decryptNote(updated)
}

// DeleteNote removes a note reachable through an owned task.
func (s *noteService) DeleteNote(ctx context.Context, noteID int64) error {
	log := logger.FromContextOr(ctx, s.logger)

	if err := s.session.RequireAuthenticated(); err != nil {
		return err
	}

	note, err := s.getAccessibleNote(ctx, noteID)
	if err != nil {
		return err
	}

	if err := s.noteRepository.DeleteNote(ctx, note.NoteID); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}

// getAccessibleNote loads a note and authorises it through its task.
func (s *noteService) getAccessibleNote(ctx context.Context, noteID int64) (models.TaskNote, error) {
	note, err := s.noteRepository.FindNoteByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.TaskNote{}, ErrNoteNotFound
		}
		return models.TaskNote{}, fmt.Errorf("note lookup ended with error: %w", err)
	}

	if _, err := s.assertTaskAccessible(ctx, note.TaskID); err != nil {
		return models.TaskNote{}, err
	}

	return note, nil
}

// assertTaskAccessible verifies the task exists and belongs to the
// authenticated user.
func (s *noteService) assertTaskAccessible(ctx context.Context, taskID int64) (models.Task, error) {
	task, err := s.taskRepository.FindTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("task lookup ended with error: %w", err)
	}

	user, err := s.session.CurrentUser()
	if err != nil {
		return models.Task{}, err
	}

	if task.OwnerID != user.UserID {
		return models.Task{}, ErrAccessDenied
	}

	return task, nil
}

// decryptNote converts a stored note into its plaintext view.
func (s *noteService) decryptNote(note models.TaskNote) (models.NoteView, error) {
	cipher, err := s.session.CurrentCipher()
	if err != nil {
		return models.NoteView{}, err
	}

	content, err := cipher.Decrypt(note.ContentBlob)
	if err != nil {
		return models.NoteView{}, fmt.Errorf("note decryption failed for note %d: %w", note.NoteID, err)
	}

	return models.NoteView{
		NoteID:    note.NoteID,
		TaskID:    note.TaskID,
		Content:   content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

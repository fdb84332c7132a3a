package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amekhanov/taskvault/internal/crypto"
	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/internal/session"
	"github.com/amekhanov/taskvault/internal/store"
	"github.com/amekhanov/taskvault/models"
)

// taskService is the concrete implementation of [TaskService]. Plaintext
// exists only inside its methods; everything that reaches the repository
// is an opaque blob.
type taskService struct {
	taskRepository store.TaskRepository
	session        *session.Context
	logger         *logger.Logger
}

// NewTaskService constructs a [TaskService] bound to the given repository
// and session context.
func NewTaskService(taskRepository store.TaskRepository, sess *session.Context, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		session:        sess,
		logger:         logger,
	}
}

// CreateTask encrypts the title and description under the session's cipher
// and persists the task for the authenticated user.
//
// An empty description stays absent (NULL) rather than being stored as an
// encrypted empty string; an empty title is rejected with
// ErrInvalidDataProvided.
func (s *taskService) CreateTask(ctx context.Context, input CreateTaskInput) (models.TaskView, error) {
	log := logger.FromContextOr(ctx, s.logger)

	user, cipher, err := s.sessionState()
	if err != nil {
		return models.TaskView{}, err
	}

	if input.Title == "" {
		return models.TaskView{}, ErrInvalidDataProvided
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.TaskView{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidDataProvided, priority)
	}

	titleBlob, err := cipher.Encrypt(input.Title)
	if err != nil {
		log.Err(err).Msg("title encryption failed")
		return models.TaskView{}, fmt.Errorf("title encryption failed: %w", err)
	}

	var descriptionBlob models.EncryptedField
	if input.Description != "" {
		descriptionBlob, err = cipher.Encrypt(input.Description)
		if err != nil {
			log.Err(err).Msg("description encryption failed")
			return models.TaskView{}, fmt.Errorf("description encryption failed: %w", err)
		}
	}

	now := time.Now().UTC()
	task := models.Task{
		OwnerID:         user.UserID,
		TitleBlob:       titleBlob,
		DescriptionBlob: descriptionBlob,
		Status:          models.StatusPending,
		Priority:        priority,
		DueDate:         input.DueDate,
		Category:        input.Category,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.taskRepository.CreateTask(ctx, task)
	if err != nil {
		log.Err(err).Msg("task creation ended with error")
		return models.TaskView{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	return s.decryptTask(created)
}

// ListTasks returns all of the authenticated user's tasks, decrypted,
// newest first.
func (s *taskService) ListTasks(ctx context.Context) ([]models.TaskView, error) {
	log := logger.FromContextOr(ctx, s.logger)

	user, _, err := s.sessionState()
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepository.FindTasksByOwner(ctx, user.UserID)
	if err != nil {
		log.Err(err).Msg("task listing ended with error")
		return nil, fmt.Errorf("task listing ended with error: %w", err)
	}

	views := make([]models.TaskView, 0, len(tasks))
	for _, task := range tasks {
		view, err := s.decryptTask(task)
		if err != nil {
			// A failed tag check on one record must surface, not be
			// skipped: silently dropping it would present tampered or
			// corrupted data as a shorter, valid list.
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

// GetTask returns a single decrypted task owned by the authenticated user.
func (s *taskService) GetTask(ctx context.Context, taskID int64) (models.TaskView, error) {
	if err := s.session.RequireAuthenticated(); err != nil {
		return models.TaskView{}, err
	}

	task, err := s.getOwnedTask(ctx, taskID)
	if err != nil {
		return models.TaskView{}, err
	}

	return s.decryptTask(task)
}

// EditTask applies a partial update. Text fields are re-encrypted with a
// fresh nonce; clearing the description removes the blob entirely.
func (s *taskService) EditTask(ctx context.Context, taskID int64, input EditTaskInput) (models.TaskView, error) {
	log := logger.FromContextOr(ctx, s.logger)

	_, cipher, err := s.sessionState()
	if err != nil {
		return models.TaskView{}, err
	}

	task, err := s.getOwnedTask(ctx, taskID)
	if err != nil {
		return models.TaskView{}, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return models.TaskView{}, ErrInvalidDataProvided
		}
		blob, err := cipher.Encrypt(*input.Title)
		if err != nil {
			log.Err(err).Msg("title encryption failed")
			return models.TaskView{}, fmt.Errorf("title encryption failed: %w", err)
		}
		task.TitleBlob = blob
	}

	if input.Description != nil {
		if *input.Description == "" {
			task.DescriptionBlob = nil
		} else {
			blob, err := cipher.Encrypt(*input.Description)
			if err != nil {
				log.Err(err).Msg("description encryption failed")
				return models.TaskView{}, fmt.Errorf("description encryption failed: %w", err)
			}
			task.DescriptionBlob = blob
		}
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return models.TaskView{}, fmt.Errorf("%w: unknown status %q", ErrInvalidDataProvided, *input.Status)
		}
		task.Status = *input.Status
	}

	if input.Priority != nil {
		if !input.Priority.Valid() {
			return models.TaskView{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidDataProvided, *input.Priority)
		}
		task.Priority = *input.Priority
	}

	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}

	if input.Category != nil {
		task.Category = *input.Category
	}

	task.UpdatedAt = time.Now().UTC()

	updated, err := s.taskRepository.UpdateTask(ctx, task)
	if err != nil {
		log.Err(err).Int64("task_id", taskID).Msg("task update ended with error")
		return models.TaskView{}, fmt.Errorf("task update ended with error: %w", err)
	}

	return s.decryptTask(updated)
}

// MarkDone transitions the task to COMPLETED.
func (s *taskService) MarkDone(ctx context.Context, taskID int64) (models.TaskView, error) {
	status := models.StatusCompleted
	return s.EditTask(ctx, taskID, EditTaskInput{Status: &status})
}

// DeleteTask removes an owned task together with its notes.
func (s *taskService) DeleteTask(ctx context.Context, taskID int64) error {
	log := logger.FromContextOr(ctx, s.logger)

	if err := s.session.RequireAuthenticated(); err != nil {
		return err
	}

	task, err := s.getOwnedTask(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepository.DeleteTask(ctx, task.TaskID); err != nil {
		log.Err(err).Int64("task_id", taskID).Msg("task deletion ended with error")
		return fmt.Errorf("task deletion ended with error: %w", err)
	}

	return nil
}

// getOwnedTask loads the task and enforces that it belongs to the
// authenticated user. The ownership check runs on every access so that a
// leaked task id is useless to another account.
func (s *taskService) getOwnedTask(ctx context.Context, taskID int64) (models.Task, error) {
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

// decryptTask converts a stored task into its plaintext view using the
// session cipher. Decryption errors propagate untouched.
func (s *taskService) decryptTask(task models.Task) (models.TaskView, error) {
	cipher, err := s.session.CurrentCipher()
	if err != nil {
		return models.TaskView{}, err
	}

	title, err := cipher.Decrypt(task.TitleBlob)
	if err != nil {
		return models.TaskView{}, fmt.Errorf("title decryption failed for task %d: %w", task.TaskID, err)
	}

	description, err := cipher.Decrypt(task.DescriptionBlob)
	if err != nil {
		return models.TaskView{}, fmt.Errorf("description decryption failed for task %d: %w", task.TaskID, err)
	}

	return models.TaskView{
		TaskID:      task.TaskID,
		Title:       title,
		Description: description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Category:    task.Category,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}, nil
}

// sessionState fetches the authenticated identity and cipher in one step.
func (s *taskService) sessionState() (models.User, *crypto.FieldCipher, error) {
	user, err := s.session.CurrentUser()
	if err != nil {
		return models.User{}, nil, err
	}
	cipher, err := s.session.CurrentCipher()
	if err != nil {
		return models.User{}, nil, err
	}
	return user, cipher, nil
}

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/repositories_mock.go -package=mock

import (
	"context"

	"github.com/amekhanov/taskvault/models"
)

// UserRepository is the identity store consumed by the authentication flow.
// The crypto core never owns storage; it only reads and writes identity
// records (username, password hash, salt) through this boundary.
type UserRepository interface {
	// CreateUser persists a new account and returns it with the
	// server-assigned UserID and CreatedAt.
	// Returns ErrUsernameAlreadyExists on a username collision.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the account with the given username or
	// ErrNoUserWasFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID returns the account with the given id or
	// ErrNoUserWasFound.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// TaskRepository persists tasks with their encrypted title and description
// blobs. It never sees plaintext.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	FindTaskByID(ctx context.Context, taskID int64) (models.Task, error)
	// FindTasksByOwner returns the owner's tasks, newest first.
	FindTasksByOwner(ctx context.Context, ownerID int64) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)
	// DeleteTask removes the task; attached notes go with it.
	DeleteTask(ctx context.Context, taskID int64) error
}

// NoteRepository persists task notes with their encrypted content blobs.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.TaskNote) (models.TaskNote, error)
	FindNoteByID(ctx context.Context, noteID int64) (models.TaskNote, error)
	// FindNotesByTask returns the task's notes, oldest first.
	FindNotesByTask(ctx context.Context, taskID int64) ([]models.TaskNote, error)
	UpdateNote(ctx context.Context, note models.TaskNote) (models.TaskNote, error)
	DeleteNote(ctx context.Context, noteID int64) error
}

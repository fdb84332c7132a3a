package service

import (
	"context"

	"github.com/amekhanov/taskvault/models"
)

// AuthService orchestrates registration, login and logout around the
// crypto core: it owns no storage and no key material of its own.
type AuthService interface {
	// Register creates a new account: validates the input, hashes the
	// password, generates the per-user key-derivation salt and persists
	// the identity record. It does not log the new user in.
	Register(ctx context.Context, username, password string) (models.User, error)

	// Login verifies the credentials, derives the user's encryption key
	// from the process master key and the stored salt, and populates the
	// session with the identity and its unlocked field cipher.
	// Unknown username and wrong password both fail with
	// ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) error

	// Logout clears the session unconditionally.
	Logout()

	// CurrentUser returns the authenticated identity, or
	// session.ErrNotAuthenticated.
	CurrentUser() (models.User, error)
}

// CreateTaskInput carries the plaintext attributes of a new task.
// Encryption happens inside the service.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     string
	Category    string
}

// EditTaskInput carries partial task updates. Nil fields are left
// unchanged; a pointer to an empty string clears the field.
type EditTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.Priority
	DueDate     *string
	Category    *string
}

// TaskService implements encrypted task CRUD on behalf of the
// authenticated session. Every method gates on the session before
// touching the cipher.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (models.TaskView, error)
	ListTasks(ctx context.Context) ([]models.TaskView, error)
	GetTask(ctx context.Context, taskID int64) (models.TaskView, error)
	EditTask(ctx context.Context, taskID int64, input EditTaskInput) (models.TaskView, error)
	MarkDone(ctx context.Context, taskID int64) (models.TaskView, error)
	DeleteTask(ctx context.Context, taskID int64) error
}

// NoteService implements encrypted note CRUD. Access to a note is always
// gated through ownership of its task.
type NoteService interface {
	AddNote(ctx context.Context, taskID int64, content string) (models.NoteView, error)
	ListNotes(ctx context.Context, taskID int64) ([]models.NoteView, error)
	EditNote(ctx context.Context, noteID int64, content string) (models.NoteView, error)
	DeleteNote(ctx context.Context, noteID int64) error
}

package models

import "time"

// Task is the persisted form of a task. Title and description are stored
// only as ciphertext; the plaintext never reaches the storage layer.
type Task struct {
	// TaskID is the internal unique identifier of the task.
	TaskID int64 `json:"task_id"`

	// OwnerID references the user the task belongs to. Every read and
	// write is authorised against it.
	OwnerID int64 `json:"-"`

	// TitleBlob is the encrypted task title. Always present.
	TitleBlob EncryptedField `json:"-"`

	// DescriptionBlob is the encrypted description, empty when the task
	// has none.
	DescriptionBlob EncryptedField `json:"-"`

	// Status is the lifecycle state, one of the TaskStatus constants.
	Status TaskStatus `json:"status"`

	// Priority is one of the Priority constants.
	Priority Priority `json:"priority"`

	// DueDate is an optional YYYY-MM-DD date kept in plaintext so that
	// storage can sort and filter on it.
	DueDate string `json:"due_date,omitempty"`

	// Category is an optional plaintext label.
	Category string `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskView is the decrypted representation handed to the presentation
// layer. It exists only in memory while a session is active.
type TaskView struct {
	TaskID      int64
	Title       string
	Description string
	Status      TaskStatus
	Priority    Priority
	DueDate     string
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

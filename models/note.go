package models

import "time"

// TaskNote is the persisted form of a note attached to a task. The note
// body is stored only as ciphertext. Notes carry no owner of their own;
// access is always authorised through the parent task.
type TaskNote struct {
	// NoteID is the internal unique identifier of the note.
	NoteID int64 `json:"note_id"`

	// TaskID references the task the note belongs to.
	TaskID int64 `json:"task_id"`

	// ContentBlob is the encrypted note body. Always present.
	ContentBlob EncryptedField `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the TaskNote model.
func (n TaskNote) TableName() string {
	return "task_notes"
}

// NoteView is the decrypted representation handed to the presentation
// layer.
type NoteView struct {
	NoteID    int64
	TaskID    int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

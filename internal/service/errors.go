package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a required input (username,
	// password, title, note content) is empty.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrUsernameAlreadyTaken is returned by registration when the requested
	// username already belongs to an account.
	ErrUsernameAlreadyTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned by login for both an unknown
	// username and a wrong password. The two cases are deliberately
	// indistinguishable so that login failures cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTaskNotFound is returned when the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoteNotFound is returned when the requested note does not exist.
	ErrNoteNotFound = errors.New("note not found")

	// ErrAccessDenied is returned when an authenticated user addresses a
	// task or note owned by a different account.
	ErrAccessDenied = errors.New("access denied")
)

package models

import "time"

// User represents an account entity used for authentication and per-user
// key derivation. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It doubles as the domain-separation input for key derivation,
	// so it must be positive and stable for the account's lifetime.
	UserID int64 `json:"-"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash is the self-contained Argon2id hash of the user's
	// password (PHC string format). Never contains plaintext.
	PasswordHash string `json:"-"`

	// Salt is the per-user key-derivation salt, at least 16 bytes,
	// generated once at registration and immutable afterwards.
	// The salt is not a secret; it is stored alongside the account.
	Salt []byte `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Package session holds the authenticated identity and its unlocked field
// cipher for the duration of a working session.
//
// The Context is a single process-local slot: this matches the one
// interactive user per process model of the CLI. In a multi-user server
// deployment it must become per-request state instead of a shared value —
// only the master key store and the key deriver are safe to share, because
// they are immutable after construction.
package session

import (
	"sync"

	"github.com/amekhanov/taskvault/internal/crypto"
	"github.com/amekhanov/taskvault/models"
)

// Context is the in-memory session slot. It is either fully populated
// (identity and cipher both present) or fully empty — never partial.
// All cipher-dependent operations must pass RequireAuthenticated first.
type Context struct {
	mu     sync.RWMutex
	user   *models.User
	cipher *crypto.FieldCipher
}

// New returns an anonymous (empty) session context.
func New() *Context {
	return &Context{}
}

// Activate transitions the session from anonymous to authenticated.
// Both arguments must be present, otherwise [ErrInvalidSession] is returned
// and the slot stays untouched: a half-populated session must not exist.
func (c *Context) Activate(user *models.User, cipher *crypto.FieldCipher) error {
	if user == nil || cipher == nil {
		return ErrInvalidSession
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = user
	c.cipher = cipher
	return nil
}

// Deactivate clears the session unconditionally. Calling it on an already
// anonymous session is a no-op, which makes logout safe to call at any time.
func (c *Context) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = nil
	c.cipher = nil
}

// RequireAuthenticated fails with [ErrNotAuthenticated] unless the session
// is populated.
func (c *Context) RequireAuthenticated() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil || c.cipher == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// IsAuthenticated reports whether the session is populated.
func (c *Context) IsAuthenticated() bool {
	return c.RequireAuthenticated() == nil
}

// CurrentUser returns the authenticated identity, or
// [ErrNotAuthenticated] when the session is anonymous.
func (c *Context) CurrentUser() (models.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil || c.cipher == nil {
		return models.User{}, ErrNotAuthenticated
	}
	return *c.user, nil
}

// CurrentCipher returns the field cipher bound to the authenticated user's
// derived key, or [ErrNotAuthenticated] when the session is anonymous.
func (c *Context) CurrentCipher() (*crypto.FieldCipher, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil || c.cipher == nil {
		return nil, ErrNotAuthenticated
	}
	return c.cipher, nil
}

package session

import "errors"

var (
	// ErrInvalidSession is returned by Activate when the identity or the
	// cipher is missing. A session is populated atomically or not at all.
	ErrInvalidSession = errors.New("session requires both identity and cipher")

	// ErrNotAuthenticated gates every cipher-dependent operation while the
	// session is anonymous.
	ErrNotAuthenticated = errors.New("not authenticated")
)

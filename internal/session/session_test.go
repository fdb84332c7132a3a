package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/amekhanov/taskvault/internal/crypto"
	"github.com/amekhanov/taskvault/models"
)

func newTestCipher(t *testing.T) *crypto.FieldCipher {
	t.Helper()
	c, err := crypto.NewFieldCipher(bytes.Repeat([]byte{0x77}, crypto.UserKeySize))
	if err != nil {
		t.Fatalf("NewFieldCipher error: %v", err)
	}
	return c
}

func TestContext_AnonymousByDefault(t *testing.T) {
	s := New()

	if s.IsAuthenticated() {
		t.Fatal("fresh session must be anonymous")
	}
	if err := s.RequireAuthenticated(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := s.CurrentUser(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("CurrentUser: expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := s.CurrentCipher(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("CurrentCipher: expected ErrNotAuthenticated, got %v", err)
	}
}

func TestContext_ActivateAndDeactivate(t *testing.T) {
	s := New()
	cipher := newTestCipher(t)

	if err := s.Activate(&models.User{UserID: 1, Username: "alice"}, cipher); err != nil {
		t.Fatalf("Activate error: %v", err)
	}

	if !s.IsAuthenticated() {
		t.Fatal("session must be authenticated after Activate")
	}

	user, err := s.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("CurrentUser = %q, want alice", user.Username)
	}

	got, err := s.CurrentCipher()
	if err != nil {
		t.Fatalf("CurrentCipher error: %v", err)
	}
	if got != cipher {
		t.Fatal("CurrentCipher returned a different cipher")
	}

	s.Deactivate()

	if s.IsAuthenticated() {
		t.Fatal("session must be anonymous after Deactivate")
	}
}

func TestContext_ActivateRejectsPartialState(t *testing.T) {
	s := New()

	if err := s.Activate(nil, newTestCipher(t)); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("nil user: expected ErrInvalidSession, got %v", err)
	}
	if err := s.Activate(&models.User{UserID: 1}, nil); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("nil cipher: expected ErrInvalidSession, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatal("failed activation must leave the session anonymous")
	}
}

func TestContext_DeactivateIsIdempotent(t *testing.T) {
	s := New()
	s.Deactivate()
	s.Deactivate()

	if s.IsAuthenticated() {
		t.Fatal("session must stay anonymous")
	}
}

func TestContext_ReloginReplacesIdentity(t *testing.T) {
	s := New()

	if err := s.Activate(&models.User{UserID: 1, Username: "alice"}, newTestCipher(t)); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	if err := s.Activate(&models.User{UserID: 2, Username: "bob"}, newTestCipher(t)); err != nil {
		t.Fatalf("Activate error: %v", err)
	}

	user, err := s.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser error: %v", err)
	}
	if user.UserID != 2 || user.Username != "bob" {
		t.Fatalf("CurrentUser = %+v, want bob", user)
	}
}

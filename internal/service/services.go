package service

import (
	"github.com/amekhanov/taskvault/internal/crypto"
	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/internal/session"
	"github.com/amekhanov/taskvault/internal/store"
)

// Services bundles every application service over a shared session context.
type Services struct {
	Auth  AuthService
	Tasks TaskService
	Notes NoteService

	// Session is exposed so that the presentation layer can gate commands
	// without reaching into individual services.
	Session *session.Context
}

// NewServices wires the repositories, the crypto core and a fresh anonymous
// session into the full service set.
func NewServices(
	storages *store.Storages,
	hasher crypto.PasswordHasher,
	deriver *crypto.KeyDeriver,
	log *logger.Logger,
) *Services {
	sess := session.New()

	return &Services{
		Auth:    NewAuthService(storages.Users, hasher, deriver, sess, log),
		Tasks:   NewTaskService(storages.Tasks, sess, log),
		Notes:   NewNoteService(storages.Notes, storages.Tasks, sess, log),
		Session: sess,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amekhanov/taskvault/internal/crypto"
	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/internal/session"
	"github.com/amekhanov/taskvault/internal/store"
	"github.com/amekhanov/taskvault/models"
)

// authService is the concrete implementation of [AuthService].
// It glues the identity store, the password hasher, the key deriver and
// the session context together; key material passes through it only as
// local variables on the login path.
type authService struct {
	// userRepository is the data-access layer used to create and look up
	// identity records.
	userRepository store.UserRepository

	// hasher performs one-way Argon2id credential hashing. Independent of
	// the encryption chain.
	hasher crypto.PasswordHasher

	// deriver recomputes the per-user encryption key at every login from
	// the process master key and the account's stored salt.
	deriver *crypto.KeyDeriver

	// session is the single process-local session slot populated on
	// successful login.
	session *session.Context

	// logger is the fallback for calls whose context carries no
	// command-scoped logger.
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given identity
// repository, crypto components and session context.
//
// The returned service is safe for concurrent use; all fields are read-only
// after construction and the session guards its own state.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	deriver *crypto.KeyDeriver,
	sess *session.Context,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		deriver:        deriver,
		session:        sess,
		logger:         logger,
	}
}

// Register implements [AuthService].
//
// Returns:
//   - ErrInvalidDataProvided if the trimmed username or the password is empty.
//   - ErrUsernameAlreadyTaken if the username already belongs to an account.
//   - A wrapped storage or crypto error otherwise.
func (a *authService) Register(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContextOr(ctx, a.logger)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		log.Error().Msg("empty username or password provided for registration")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, crypto.ErrEmptyPassword) {
			return models.User{}, ErrInvalidDataProvided
		}
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	salt, err := crypto.GenerateUserSalt(crypto.MinSaltSize)
	if err != nil {
		log.Err(err).Msg("salt generation failed")
		return models.User{}, fmt.Errorf("salt generation failed: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			return models.User{}, ErrUsernameAlreadyTaken
		}
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login implements [AuthService].
//
// An unknown username and a wrong password both produce
// [ErrInvalidCredentials]; only the structured log distinguishes them.
// On success the derived key exists solely inside the constructed
// [crypto.FieldCipher] installed into the session.
func (a *authService) Login(ctx context.Context, username, password string) error {
	log := logger.FromContextOr(ctx, a.logger)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("username", username).Msg("login attempt for unknown user")
			return ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return fmt.Errorf("user search by username failed: %w", err)
	}

	ok, err := a.hasher.Verify(password, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("password verification failed")
		return fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Warn().Int64("id", foundUser.UserID).Str("username", foundUser.Username).Msg("wrong password")
		return ErrInvalidCredentials
	}

	userKey, err := a.deriver.DeriveUserKey(foundUser.Salt, foundUser.UserID)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("user key derivation failed")
		return fmt.Errorf("user key derivation failed: %w", err)
	}

	cipher, err := crypto.NewFieldCipher(userKey)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("field cipher construction failed")
		return fmt.Errorf("field cipher construction failed: %w", err)
	}

	if err := a.session.Activate(&foundUser, cipher); err != nil {
		return fmt.Errorf("session activation failed: %w", err)
	}

	return nil
}

// Logout implements [AuthService]. It is safe to call at any time, even
// when no one is logged in.
func (a *authService) Logout() {
	a.session.Deactivate()
}

// CurrentUser implements [AuthService].
func (a *authService) CurrentUser() (models.User, error) {
	return a.session.CurrentUser()
}

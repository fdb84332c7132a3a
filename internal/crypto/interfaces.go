package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher provides one-way credential hashing for the login path.
// It is independent of the encryption chain: it protects authentication,
// not data at rest.
type PasswordHasher interface {
	// Hash derives a self-contained Argon2id hash string (algorithm,
	// parameters and salt encoded in the output) suitable for storage.
	// Fails with ErrEmptyPassword for an empty password.
	Hash(password string) (string, error)

	// Verify reports whether password matches storedHash. Clean mismatches
	// and malformed stored hashes both yield (false, nil) — verification
	// failure is a login failure, never a fatal error.
	Verify(password, storedHash string) (bool, error)
}

// GenerateUserSalt reads n random bytes from the OS CSPRNG for use as a
// per-user key-derivation salt. Returns an error if the random read fails.
func GenerateUserSalt(n int) ([]byte, error) {
	return randomBytes(n)
}

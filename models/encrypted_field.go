package models

// EncryptedField is an opaque encrypted value as persisted in storage:
// a 12-byte nonce followed by the AES-GCM ciphertext and tag. Only the
// crypto layer may interpret its contents.
type EncryptedField []byte

// IsEmpty reports whether the field holds no ciphertext at all, which is
// how an absent optional value is stored.
func (f EncryptedField) IsEmpty() bool {
	return len(f) == 0
}

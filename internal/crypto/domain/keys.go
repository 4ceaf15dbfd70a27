package domain

// MasterKey represents the process-wide root secret of the key hierarchy.
//
// The master key is provisioned outside the system, loaded once at startup from
// a trusted configuration source (never from the database it protects), held in
// memory for the process lifetime, and never persisted or logged by this engine.
// Every dataset key descends from it via PBKDF2 with a per-dataset salt, so
// compromise of a derived key never reveals the root.
type MasterKey struct {
	Key []byte
}

// Close zeroes the master key material. Call during process shutdown.
func (m *MasterKey) Close() {
	Zero(m.Key)
	m.Key = nil
}

// KeyPair holds the two keys derived for one dataset.
//
// EncryptionKey is the PBKDF2-derived dataset key used by the AEAD engine.
// HashKey is derived from the dataset key with a fixed context label and is
// used exclusively for the deterministic search hash, so the two purposes
// never share a key even though both descend from the same dataset key.
type KeyPair struct {
	EncryptionKey []byte
	HashKey       []byte
}

// ProtectedField bundles the two persisted representations of one field value:
// the non-deterministic ciphertext and, for fields that must support
// exact-match lookup, the deterministic search hash.
type ProtectedField struct {
	// EncryptedValue is base64(nonce || ciphertext || tag), or "" for empty input.
	EncryptedValue string
	// SearchHash is the 64-character lowercase hex HMAC digest, or "" for empty input.
	SearchHash string
}

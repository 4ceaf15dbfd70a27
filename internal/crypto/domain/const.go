package domain

const (
	// KeySize is the required size in bytes for master keys, dataset salts,
	// dataset keys, and hash keys (256 bits).
	KeySize = 32

	// NonceSize is the AES-GCM nonce size in bytes (96 bits), generated fresh
	// per encryption.
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag size in bytes (128 bits).
	TagSize = 16

	// PBKDF2Iterations is the iteration count for dataset key derivation.
	// Tunable constant, never user input; changing it invalidates every
	// previously derived dataset key.
	PBKDF2Iterations = 100_000

	// HashKeyContext is the fixed label that separates the hashing key from the
	// encryption use of a dataset key. Key-separation step, must stay constant.
	HashKeyContext = "fieldcrypt-search-hash-v1"
)

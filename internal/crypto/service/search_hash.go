package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSearchHasher implements SearchHasher with HMAC-SHA256.
//
// The hash is deterministic: the same plaintext under the same
// dataset always yields the same 64-character hex digest, which is what makes
// an equality-indexed lookup column possible without storing or comparing
// plaintext. One-wayness comes from HMAC under the dataset's dedicated hash
// key, which never leaves the process.
type HMACSearchHasher struct{}

// NewHMACSearchHasher creates a new HMACSearchHasher instance.
func NewHMACSearchHasher() *HMACSearchHasher {
	return &HMACSearchHasher{}
}

// SearchHash computes the lookup fingerprint of a field value.
//
// Empty plaintext returns "", matching the encryption engine's empty-input
// convention so a missing optional field never produces a spurious lookup key.
func (h *HMACSearchHasher) SearchHash(plaintext string, hashKey []byte) string {
	if plaintext == "" {
		return ""
	}

	mac := hmac.New(sha256.New, hashKey)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

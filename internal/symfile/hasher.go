package symfile

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// TokenHexLength is the number of hex characters a token carries after its prefix.
const TokenHexLength = sha256.Size * 2

// Hasher derives pseudonymous tokens from names using HMAC-SHA256.
// A Hasher holds no mutable state and is safe for concurrent use.
type Hasher struct {
	key    []byte
	prefix string
}

// NewHasher creates a Hasher keyed by hashPhrase. Every token it returns
// starts with prefix.
func NewHasher(hashPhrase []byte, prefix string) (*Hasher, error) {
	if len(hashPhrase) == 0 {
		return nil, ErrEmptyHashPhrase
	}
	key := make([]byte, len(hashPhrase))
	copy(key, hashPhrase)
	return &Hasher{key: key, prefix: prefix}, nil
}

// Prefix returns the vendor prefix prepended to every token.
func (h *Hasher) Prefix() string {
	return h.prefix
}

// Hash returns prefix + lowercase hex(HMAC-SHA256(key, name)).
func (h *Hasher) Hash(name string) string {
	mac := hmac.New(sha256.New, h.key)
	_, _ = mac.Write([]byte(name))
	return h.prefix + hex.EncodeToString(mac.Sum(nil))
}

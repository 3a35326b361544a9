package domain

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"

	"go.trai.ch/zerr"
)

// HashSize is the size of a content hash in bytes.
const HashSize = sha1.Size

// Hash is the SHA-1 digest of an output file's exact bytes.
type Hash [HashSize]byte

// HashBytes computes the content hash of data.
func HashBytes(data []byte) Hash {
	return Hash(sha1.Sum(data)) //nolint:gosec // see import
}

// ParseHash decodes a lowercase or uppercase hex string into a Hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != hex.EncodedLen(HashSize) {
		return h, zerr.With(ErrInvalidHash, "hash", s)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, zerr.With(zerr.Wrap(err, ErrInvalidHash.Error()), "hash", s)
	}
	return h, nil
}

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Fingerprint algorithms.
//
// A fingerprint is a 16 hex character digest. Three algorithms are
// supported, selectable via Config.HashAlgorithm. The same hasher is used
// for Directory.Fingerprint and for LoadReport.Digest, so a file that is
// already in canonical form has a digest equal to the fingerprint of the
// directory loaded from it.
package patron

import (
	"fmt"
	"hash"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Best distribution
)

// ParseAlgorithm maps a configuration name to an algorithm constant.
func ParseAlgorithm(name string) (int, bool) {
	switch name {
	case "xxh3", "xxhash3", "":
		return AlgXXHash3, true
	case "fnv1a", "fnv":
		return AlgFNV1a, true
	case "blake2b":
		return AlgBlake2b, true
	default:
		return 0, false
	}
}

// newHasher returns a streaming hasher for alg.
func newHasher(alg int) hash.Hash {
	switch alg {
	case AlgFNV1a:
		return fnv.New64a()
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		return h
	default:
		return xxh3.New()
	}
}

// sum formats the hasher state as 16 hex characters.
func sum(h hash.Hash) string {
	if h64, ok := h.(hash.Hash64); ok {
		return fmt.Sprintf("%016x", h64.Sum64())
	}
	return fmt.Sprintf("%016x", h.Sum(nil))
}

// Fingerprint digests the canonical encoding of every entry in order. Two
// directories with the same entries in the same order share a fingerprint.
func (d *Directory) Fingerprint() string {
	h := newHasher(d.config.HashAlgorithm)
	for _, e := range d.entries {
		h.Write([]byte(Encode(e)))
		h.Write([]byte{'\n'})
	}
	return sum(h)
}

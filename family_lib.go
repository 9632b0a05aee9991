package mhash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	twmbmurmur3 "github.com/twmb/murmur3"
	"github.com/zeebo/xxh3"

	mhasherrors "github.com/tamirms/mhash/errors"
)

// XXH3 uses xxHash3-64 with the member id as seed.
//
// Every member hashes the whole key, so XXH3 needs more work per member
// than Prefix but rarely needs more than one or two members.
type XXH3 struct{}

// Hash implements Family.
func (XXH3) Hash(key []byte, id uint64) uint64 {
	return xxh3.HashSeed(key, id)
}

// XXH3String is XXH3 for string keys.
type XXH3String struct{}

// Hash implements Family.
func (XXH3String) Hash(key string, id uint64) uint64 {
	return xxh3.HashStringSeed(key, id)
}

// XXHash derives members from a single xxHash64 digest of the key: the
// digest is offset by the member seed and passed through the finalizer.
type XXHash struct{}

// Hash implements Family.
func (XXHash) Hash(key []byte, id uint64) uint64 {
	return avalanche(xxhash.Sum64(key) ^ golden*id)
}

// XXHashString is XXHash for string keys.
type XXHashString struct{}

// Hash implements Family.
func (XXHashString) Hash(key string, id uint64) uint64 {
	return avalanche(xxhash.Sum64String(key) ^ golden*id)
}

// Murmur3 uses the first half of MurmurHash3 x64-128 seeded with the member id.
type Murmur3 struct{}

// Hash implements Family.
func (Murmur3) Hash(key []byte, id uint64) uint64 {
	h1, _ := twmbmurmur3.SeedSum128(id, id, key)
	return h1
}

// Family names accepted by FamilyByName.
const (
	FamilyWholeKey = "all"
	FamilyPrefix   = "prefix"
	FamilyXXH3     = "xxh3"
	FamilyXXHash   = "xxhash"
	FamilyMurmur3  = "murmur3"
)

// FamilyNames lists the names FamilyByName resolves, in a stable order.
func FamilyNames() []string {
	return []string{FamilyWholeKey, FamilyPrefix, FamilyXXH3, FamilyXXHash, FamilyMurmur3}
}

// FamilyByName returns the byte-slice family registered under name.
func FamilyByName(name string) (Family[[]byte], error) {
	switch name {
	case FamilyWholeKey:
		return WholeKey[[]byte]{}, nil
	case FamilyPrefix:
		return Prefix[[]byte]{}, nil
	case FamilyXXH3:
		return XXH3{}, nil
	case FamilyXXHash:
		return XXHash{}, nil
	case FamilyMurmur3:
		return Murmur3{}, nil
	}
	return nil, fmt.Errorf("%w: %q", mhasherrors.ErrUnknownFamily, name)
}

package mhash

// Bytes is the key constraint of the reference hash families.
type Bytes interface {
	~string | ~[]byte
}

// Family is a parameterized hash function: each id in [1, num_hashes]
// selects one member. Implementations must be pure and deterministic,
// must not allocate, and must not fail.
//
// The same Family value has to be used for construction and for every
// query against the resulting table.
type Family[K any] interface {
	Hash(key K, id uint64) uint64
}

// FamilyFunc adapts an ordinary function to the Family interface.
type FamilyFunc[K any] func(key K, id uint64) uint64

// Hash calls f(key, id).
func (f FamilyFunc[K]) Hash(key K, id uint64) uint64 {
	return f(key, id)
}

// golden is 2^64 divided by the golden ratio. Multiplying it by the member
// id seeds each member's accumulator.
const golden = 0x9E3779B97F4A7C15

// mixByte folds one key byte into the accumulator.
func mixByte(h uint64, c byte) uint64 {
	return h ^ (uint64(c) + golden + h<<6 + h>>2)
}

// avalanche is the MurmurHash3 64-bit finalizer. The per-byte mix leaves
// the low bits weakly dependent on early bytes; reduction modulo the table
// size reads exactly those bits.
func avalanche(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// WholeKey mixes every byte of the key.
type WholeKey[K Bytes] struct{}

// Hash implements Family.
func (WholeKey[K]) Hash(key K, id uint64) uint64 {
	h := golden * id
	for i := 0; i < len(key); i++ {
		h = mixByte(h, key[i])
	}
	return avalanche(h)
}

// Prefix mixes only the first id+1 bytes of the key (fewer for short keys).
//
// Member id therefore sees a longer prefix than member id-1, which suits key
// sets whose distinguishing bytes sit near the front: combining more members
// pulls more of the key into the slot computation. Keys that differ only
// after byte id+1 are identical to every member up to id.
type Prefix[K Bytes] struct{}

// Hash implements Family.
func (Prefix[K]) Hash(key K, id uint64) uint64 {
	h := golden * id
	n := len(key)
	if id < uint64(n) {
		n = int(id) + 1
	}
	for i := 0; i < n; i++ {
		h = mixByte(h, key[i])
	}
	return avalanche(h)
}

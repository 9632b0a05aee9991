package mhash

import (
	"fmt"

	mhasherrors "github.com/tamirms/mhash/errors"
)

// Slot returns the table slot key maps to. Both query paths read this slot.
// m must have been built successfully.
func (m *MHash[K, I]) Slot(key K) int {
	return slotOf(Combine(m.family, key, m.numHashes), len(m.table))
}

// UncheckedEntry returns the dense id stored in key's slot.
//
// Precondition: key was one of the construction keys. For any other key the
// result is an unrelated id or Empty, and nothing distinguishes it from a
// genuine hit. No check is made; use Find or Lookup when membership is not
// known in advance.
func (m *MHash[K, I]) UncheckedEntry(key K) I {
	return m.table[m.Slot(key)]
}

// Find returns the dense id of key, verified against keys (the slice the
// table was built from) with one call to eq.
//
// The stored entry is checked against Empty and the key count before keys
// is indexed, so Find never reads out of bounds. It returns ErrNotFound when
// the slot is empty or holds a different key.
func (m *MHash[K, I]) Find(key K, keys []K, eq Equaler[K]) (I, error) {
	if len(m.table) == 0 {
		return Empty[I](), mhasherrors.ErrNotFound
	}
	entry := m.table[m.Slot(key)]
	if entry == Empty[I]() || uint64(entry) >= uint64(m.count) || uint64(entry) >= uint64(len(keys)) {
		return Empty[I](), mhasherrors.ErrNotFound
	}
	if !eq.Equal(keys[int(entry)], key) {
		return Empty[I](), mhasherrors.ErrNotFound
	}
	return entry, nil
}

// Lookup returns a pointer to the value of key in values, where values[i]
// belongs to keys[i]. It returns ErrNotFound if key is not in the table.
func Lookup[K any, I Index, V any](m *MHash[K, I], key K, keys []K, values []V, eq Equaler[K]) (*V, error) {
	entry, err := m.Find(key, keys, eq)
	if err != nil {
		return nil, err
	}
	if uint64(entry) >= uint64(len(values)) {
		return nil, fmt.Errorf("%w: %d values for id %d", mhasherrors.ErrBadArguments, len(values), uint64(entry))
	}
	return &values[int(entry)], nil
}

// LookupStride is Lookup over packed values: the value of dense id i is
// values[i*stride : (i+1)*stride]. The returned slice aliases values.
func (m *MHash[K, I]) LookupStride(key K, keys []K, values []byte, stride int, eq Equaler[K]) ([]byte, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("%w: stride %d", mhasherrors.ErrBadArguments, stride)
	}
	entry, err := m.Find(key, keys, eq)
	if err != nil {
		return nil, err
	}
	if uint64(entry) >= uint64(len(values)/stride) {
		return nil, fmt.Errorf("%w: %d value bytes for id %d at stride %d",
			mhasherrors.ErrBadArguments, len(values), uint64(entry), stride)
	}
	off := int(entry) * stride
	return values[off : off+stride : off+stride], nil
}

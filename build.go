package mhash

import (
	"fmt"

	mhasherrors "github.com/tamirms/mhash/errors"
)

// Init builds the lookup structure for keys into table and records the
// result in m.
//
// Key i receives dense id i. Keys must be pairwise distinct: duplicates are
// not detected and only show up as collisions in every trial, which ends in
// ErrSearchExhausted.
//
// Init runs trials with 1, 2, ... combined hash functions. Each trial resets
// every slot of table to Empty and places keys in input order; the first
// collision abandons the trial. Init performs exactly one such search and
// never resizes table: retrying with a larger table is the caller's job
// (see the mhmap package).
//
// Errors:
//   - ErrBadArguments: empty table, nil keys, nil family, or more keys than
//     I can index. m is reset and table is untouched.
//   - ErrSearchExhausted: no trial up to the ceiling was collision-free.
//     table is left with every slot Empty.
//
// Init allocates nothing itself.
func (m *MHash[K, I]) Init(table []I, keys []K, f Family[K], opts ...BuildOption) error {
	*m = MHash[K, I]{}

	if len(table) == 0 {
		return fmt.Errorf("%w: empty table", mhasherrors.ErrBadArguments)
	}
	if keys == nil {
		return fmt.Errorf("%w: nil keys", mhasherrors.ErrBadArguments)
	}
	if f == nil {
		return fmt.Errorf("%w: nil hash family", mhasherrors.ErrBadArguments)
	}
	if uint64(len(keys)) > uint64(Empty[I]()) {
		return fmt.Errorf("%w: %d keys exceed index width (max %d)",
			mhasherrors.ErrBadArguments, len(keys), uint64(Empty[I]()))
	}

	cfg := newBuildConfig(opts)
	maxHashes := cfg.maxHashes
	if cfg.capByCount && uint64(len(keys)) < maxHashes {
		maxHashes = uint64(len(keys))
	}

	m.table = table
	m.count = len(keys)
	m.family = f

	for {
		m.clearTable()
		if m.numHashes == maxHashes {
			return fmt.Errorf("%w: %d keys, table size %d, %d hashes",
				mhasherrors.ErrSearchExhausted, len(keys), len(table), maxHashes)
		}
		m.numHashes++

		placed := m.place(keys)
		if placed == len(keys) {
			return nil
		}
		if cfg.observer != nil {
			cfg.observer(m.numHashes, placed)
		}
	}
}

// clearTable resets every slot to the empty sentinel.
func (m *MHash[K, I]) clearTable() {
	empty := Empty[I]()
	for i := range m.table {
		m.table[i] = empty
	}
}

// place runs one trial at the current hash count. It returns the number of
// keys placed before the first collision, or len(keys) on success.
func (m *MHash[K, I]) place(keys []K) int {
	empty := Empty[I]()
	for i, key := range keys {
		slot := slotOf(Combine(m.family, key, m.numHashes), len(m.table))
		if m.table[slot] != empty {
			return i
		}
		m.table[slot] = I(i)
	}
	return len(keys)
}

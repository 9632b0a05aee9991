package mhmap

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/tamirms/mhash"
	mhasherrors "github.com/tamirms/mhash/errors"
)

// Map is a static key/value map backed by an mhash table.
//
// Pairs are staged with Insert and become visible only after Build, which
// rebuilds the whole table from the committed and staged pairs. Reads are
// safe for concurrent use; Insert, Build and Clear are not, and must not
// overlap reads.
type Map[K, V any] struct {
	family mhash.Family[K]
	eq     mhash.Equaler[K]
	opts   []Option
	log    logr.Logger

	keys   []K
	values []V

	stagedKeys   []K
	stagedValues []V

	index *mhash.MHash[K, uint32]
	stats Stats
}

// New returns an empty Map hashing keys with f and comparing them with eq.
func New[K, V any](f mhash.Family[K], eq mhash.Equaler[K], opts ...Option) *Map[K, V] {
	return &Map[K, V]{family: f, eq: eq, opts: opts, log: newConfig(opts).logger}
}

// NewString returns an empty string-keyed Map using the prefix family.
func NewString[V any](opts ...Option) *Map[string, V] {
	return New[string, V](mhash.Prefix[string]{}, mhash.BytesEqual[string]{}, opts...)
}

// Insert stages a pair for the next Build. Inserting a key that is already
// present, committed or staged, makes that Build fail.
func (m *Map[K, V]) Insert(key K, value V) {
	m.stagedKeys = append(m.stagedKeys, key)
	m.stagedValues = append(m.stagedValues, value)
}

// Build rebuilds the table from the committed pairs plus everything staged
// since the last successful Build. On error the map keeps serving its
// previous contents and the staged pairs stay staged.
//
// Build is a no-op when the map is built and nothing is staged. Building a
// map that has never held any pairs returns ErrBadArguments.
func (m *Map[K, V]) Build(ctx context.Context) error {
	if len(m.stagedKeys) == 0 && m.index != nil {
		return nil
	}
	n := len(m.keys) + len(m.stagedKeys)
	keys := make([]K, 0, n)
	keys = append(append(keys, m.keys...), m.stagedKeys...)

	index, stats, err := Build[K, uint32](ctx, keys, m.family, m.opts...)
	if err != nil {
		return fmt.Errorf("building %d keys: %w", n, err)
	}

	values := make([]V, 0, n)
	values = append(append(values, m.values...), m.stagedValues...)

	m.keys, m.values = keys, values
	m.stagedKeys, m.stagedValues = nil, nil
	m.index, m.stats = index, stats
	m.log.V(1).Info("map built",
		"keys", n, "tableSize", stats.TableSize, "numHashes", stats.NumHashes, "attempts", stats.Attempts)
	return nil
}

// Get returns the value of key and whether it is present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, err := m.Lookup(key)
	if err != nil {
		var zero V
		return zero, false
	}
	return *v, true
}

// Lookup returns a pointer to the stored value of key. It returns
// ErrNotBuilt before the first successful Build and ErrNotFound for keys
// that are not in the map.
func (m *Map[K, V]) Lookup(key K) (*V, error) {
	if m.index == nil {
		return nil, mhasherrors.ErrNotBuilt
	}
	return mhash.Lookup(m.index, key, m.keys, m.values, m.eq)
}

// GetExisting returns a pointer to the value of key without comparing keys.
// key must be in the map; for any other key the result is an arbitrary
// value or nil. It never panics.
func (m *Map[K, V]) GetExisting(key K) *V {
	if m.index == nil {
		return nil
	}
	entry := m.index.UncheckedEntry(key)
	if uint64(entry) >= uint64(len(m.values)) {
		return nil
	}
	return &m.values[entry]
}

// Len returns the number of committed pairs.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// Staged returns the number of pairs waiting for the next Build.
func (m *Map[K, V]) Staged() int { return len(m.stagedKeys) }

// Clear drops all committed and staged pairs.
func (m *Map[K, V]) Clear() {
	m.keys, m.values = nil, nil
	m.stagedKeys, m.stagedValues = nil, nil
	m.index, m.stats = nil, Stats{}
}

// Stats returns the statistics of the last successful Build.
func (m *Map[K, V]) Stats() Stats { return m.stats }

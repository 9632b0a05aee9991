package mhash

// Index is the integer width of table slots and dense ids.
// The maximum value of each width is reserved as the empty sentinel, so a
// table of width I indexes at most Empty[I]() keys.
type Index interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Empty returns the empty-slot sentinel for I, its maximum value.
func Empty[I Index]() I {
	return ^I(0)
}

// MHash is the record produced by Init and consumed by queries.
//
// The table is borrowed: MHash stores the caller's slice without copying it
// and never grows or reallocates it. The handle stays valid until the table
// is modified or reused, or until the next Init call on it.
//
// Thread Safety:
//   - Queries are safe for concurrent use once Init has returned.
//   - Init must not run concurrently with queries or another Init that
//     shares the same table. This is not checked.
type MHash[K any, I Index] struct {
	table     []I
	numHashes uint64
	count     int
	family    Family[K]
}

// NumHashes returns the number of combined hash functions resolved by Init.
// After ErrSearchExhausted it reports the last value tried.
func (m *MHash[K, I]) NumHashes() uint64 {
	return m.numHashes
}

// Len returns the number of keys the table was built from.
func (m *MHash[K, I]) Len() int {
	return m.count
}

// TableSize returns the number of slots in the table.
func (m *MHash[K, I]) TableSize() int {
	return len(m.table)
}

// Table returns the underlying table. Callers must treat it as read-only.
func (m *MHash[K, I]) Table() []I {
	return m.table
}

// Family returns the hash family the table was built with.
func (m *MHash[K, I]) Family() Family[K] {
	return m.family
}

// LoadFactor returns Len() / TableSize(), or 0 for an unbuilt handle.
func (m *MHash[K, I]) LoadFactor() float64 {
	if len(m.table) == 0 {
		return 0
	}
	return float64(m.count) / float64(len(m.table))
}

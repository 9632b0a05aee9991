// Package mhmap grows mhash tables until construction succeeds.
//
// mhash.MHash.Init makes exactly one attempt against a table the caller
// sized. This package owns the part the core leaves out: choosing table
// sizes, allocating tables, retrying with larger ones, and deciding when a
// result is good enough. Build runs that loop for a fixed key slice; Map
// wraps it in a staged key/value container.
package mhmap

import "math/bits"

// Policy chooses the table sizes Build tries and which results it keeps.
type Policy interface {
	// Initial returns the first table size to try for n keys.
	Initial(n int) int
	// Next returns the size to try after size. Results not larger than
	// size are treated as size+1.
	Next(size int) int
	// Limit returns the largest table size to try for n keys.
	Limit(n int) int
	// Accept reports whether a successful build with numHashes combined
	// hash functions ends the search. Rejected successes are kept as a
	// fallback in case no later size is accepted.
	Accept(numHashes uint64, n int) bool
}

// Geometric starts at three slots per key, grows by one slot while the
// table is small and by 20% afterwards, and accepts a table once it needs
// fewer than bits.Len(n)+2 hash functions.
type Geometric struct {
	// MaxTableSize caps table growth below the default limit of 128 slots
	// per key. Zero means no extra cap.
	MaxTableSize int
}

// Initial implements Policy.
func (Geometric) Initial(n int) int {
	return max(3*n, 1)
}

// Next implements Policy.
func (Geometric) Next(size int) int {
	if size < 16 {
		return size + 1
	}
	return size + size/5 + 1
}

// Limit implements Policy.
func (g Geometric) Limit(n int) int {
	limit := 128 * n
	if g.MaxTableSize > 0 && g.MaxTableSize < limit {
		limit = g.MaxTableSize
	}
	return limit
}

// Accept implements Policy.
func (Geometric) Accept(numHashes uint64, n int) bool {
	return numHashes < uint64(bits.Len(uint(n)))+2
}

// nextSize advances size under p, always by at least one slot.
func nextSize(p Policy, size int) int {
	next := p.Next(size)
	if next <= size {
		return size + 1
	}
	return next
}

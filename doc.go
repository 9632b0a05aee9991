// Package mhash implements static lookup tables that map a fixed key set to
// dense integer ids by XOR-combining members of a hash family.
//
// Construction searches for the smallest number of combined hash functions
// that places every key in a distinct slot of a caller-owned table. The
// search happens once; lookups afterwards cost num_hashes hash evaluations
// and one table read, with no heap allocation.
//
// # Basic Usage
//
// Building a table:
//
//	keys := []string{"Apple", "Banana", "Cherry", "Date", "Doodoo", "D"}
//	table := make([]uint16, 37)
//
//	var m mhash.MHash[string, uint16]
//	if err := m.Init(table, keys, mhash.Prefix[string]{}); err != nil {
//	    log.Fatal(err) // ALWAYS check: construction fails on excessive load
//	}
//
// Querying a key known to be in the set:
//
//	id := m.UncheckedEntry("Cherry") // 2
//
// Querying a key that may be absent:
//
//	v, err := mhash.Lookup(&m, "Unknown", keys, values, mhash.BytesEqual[string]{})
//	if errors.Is(err, mhasherrors.ErrNotFound) {
//	    ...
//	}
//
// # Package Structure
//
//   - Handle and diagnostics: mhash.go (MHash, Index, Empty)
//   - Hash families: family.go (Family, WholeKey, Prefix), family_lib.go (XXH3, XXHash, Murmur3)
//   - Construction: combine.go (Combine), build.go (Init), options.go (BuildOption, With*)
//   - Queries: query.go (UncheckedEntry, Find, Lookup, LookupStride), equal.go (Equaler)
//   - Errors: errors/ (sentinel values shared with mhmap)
//   - Growth-and-retry policy and a staged map: mhmap/
//   - Benchmark harness: cmd/mhbench
package mhash

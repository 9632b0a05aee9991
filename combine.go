package mhash

// Combine XOR-folds members 1..numHashes of f for key.
//
// Init and every query compute slots through this function; the table is
// only meaningful if both sides combine identically. XOR makes the result
// independent of member evaluation order.
func Combine[K any](f Family[K], key K, numHashes uint64) uint64 {
	var h uint64
	for id := uint64(1); id <= numHashes; id++ {
		h ^= f.Hash(key, id)
	}
	return h
}

// slotOf reduces a combined hash to a slot index.
func slotOf(h uint64, tableSize int) int {
	return int(h % uint64(tableSize))
}

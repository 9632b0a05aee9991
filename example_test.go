package mhash_test

import (
	"errors"
	"fmt"

	"github.com/tamirms/mhash"
	mhasherrors "github.com/tamirms/mhash/errors"
)

func Example() {
	keys := []string{"Apple", "Banana", "Cherry", "Date", "Doodoo", "D"}
	values := []int{1, 2, 3, 4, 5, 6}
	table := make([]uint16, 37)

	var m mhash.MHash[string, uint16]
	if err := m.Init(table, keys, mhash.Prefix[string]{}); err != nil {
		fmt.Println("build failed:", err)
		return
	}
	fmt.Println(m.NumHashes(), "hashes")

	// Cherry is a construction key, so the unchecked path is safe.
	fmt.Println("Cherry ->", values[m.UncheckedEntry("Cherry")])

	eq := mhash.BytesEqual[string]{}
	if v, err := mhash.Lookup(&m, "Date", keys, values, eq); err == nil {
		fmt.Println("Date ->", *v)
	}
	if _, err := mhash.Lookup(&m, "Unknown", keys, values, eq); errors.Is(err, mhasherrors.ErrNotFound) {
		fmt.Println("Unknown not found")
	}
	// Output:
	// 1 hashes
	// Cherry -> 3
	// Date -> 4
	// Unknown not found
}

func ExampleMHash_LookupStride() {
	keys := [][]byte{[]byte("red"), []byte("green"), []byte("blue")}
	// Three 3-byte RGB values packed back to back.
	rgb := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255}

	var m mhash.MHash[[]byte, uint8]
	if err := m.Init(make([]uint8, 16), keys, mhash.XXH3{}, mhash.WithCountCap(false)); err != nil {
		fmt.Println("build failed:", err)
		return
	}
	v, err := m.LookupStride([]byte("green"), keys, rgb, 3, mhash.BytesEqual[[]byte]{})
	fmt.Println(v, err)
	// Output:
	// [0 255 0] <nil>
}

package main

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/edsrzf/mmap-go"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// makeKeys returns n distinct 16-byte keys: 12 random characters followed
// by i in base 62, most significant digit first.
func makeKeys(rng *rand.Rand, n int) [][]byte {
	keys := make([][]byte, n)
	for i := range keys {
		k := make([]byte, 16)
		for j := 0; j < 12; j++ {
			k[j] = charset[rng.IntN(len(charset))]
		}
		x := i
		for j := 15; j >= 12; j-- {
			k[j] = charset[x%len(charset)]
			x /= len(charset)
		}
		keys[i] = k
	}
	return keys
}

// loadKeys memory-maps path and returns its non-empty lines as owned
// copies. A trailing '\r' is dropped from each line.
func loadKeys(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat key file: %w", err)
	}
	if stat.Size() == 0 {
		return nil, fmt.Errorf("key file %s is empty", path)
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap key file: %w", err)
	}
	defer func() { _ = mm.Unmap() }()
	adviseSequential(mm)

	keys := splitKeys(mm)
	if len(keys) == 0 {
		return nil, fmt.Errorf("key file %s has no keys", path)
	}
	return keys, nil
}

func splitKeys(data []byte) [][]byte {
	var keys [][]byte
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) > 0 {
			keys = append(keys, bytes.Clone(line))
		}
	}
	return keys
}

// sampleKeys returns n keys drawn from pool without replacement.
func sampleKeys(rng *rand.Rand, pool [][]byte, n int) ([][]byte, error) {
	if n > len(pool) {
		return nil, fmt.Errorf("need %d keys, key file has %d", n, len(pool))
	}
	keys := make([][]byte, n)
	for i, j := range rng.Perm(len(pool))[:n] {
		keys[i] = pool[j]
	}
	return keys, nil
}

package mhash

// Equaler decides key equality for verified lookups.
type Equaler[K any] interface {
	Equal(a, b K) bool
}

// EqualFunc adapts an ordinary function to the Equaler interface.
type EqualFunc[K any] func(a, b K) bool

// Equal calls f(a, b).
func (f EqualFunc[K]) Equal(a, b K) bool {
	return f(a, b)
}

// BytesEqual compares keys byte by byte.
type BytesEqual[K Bytes] struct{}

// Equal implements Equaler.
func (BytesEqual[K]) Equal(a, b K) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

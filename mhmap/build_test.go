package mhmap

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamirms/mhash"
	mhasherrors "github.com/tamirms/mhash/errors"
)

var fruitKeys = []string{"Apple", "Banana", "Cherry", "Date", "Doodoo", "D"}

func seqKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%02d", i)
	}
	return keys
}

func requireRoundTrip(t *testing.T, m *mhash.MHash[string, uint16], keys []string) {
	t.Helper()
	eq := mhash.BytesEqual[string]{}
	for i, k := range keys {
		id, err := m.Find(k, keys, eq)
		require.NoError(t, err, "key %q", k)
		require.Equal(t, uint16(i), id, "key %q", k)
	}
}

func TestBuildGrowsUntilAccepted(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		family    mhash.Family[string]
		tableSize int
		numHashes uint64
		attempts  int
	}{
		{"fruit/whole", fruitKeys, mhash.WholeKey[string]{}, 18, 1, 1},
		{"fruit/prefix", fruitKeys, mhash.Prefix[string]{}, 18, 2, 1},
		{"seq20/whole", seqKeys(20), mhash.WholeKey[string]{}, 106, 4, 4},
		{"seq20/prefix", seqKeys(20), mhash.Prefix[string]{}, 185, 6, 7},
		{"seq60/whole", seqKeys(60), mhash.WholeKey[string]{}, 653, 5, 8},
		{"seq60/prefix", seqKeys(60), mhash.Prefix[string]{}, 1130, 5, 11},
		{"single", []string{"x"}, mhash.WholeKey[string]{}, 3, 1, 1},
		{"pair", []string{"a", "b"}, mhash.Prefix[string]{}, 6, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, stats, err := Build[string, uint16](context.Background(), tt.keys, tt.family)
			require.NoError(t, err)
			assert.Equal(t, Stats{
				Attempts:  tt.attempts,
				TableSize: tt.tableSize,
				NumHashes: tt.numHashes,
				Accepted:  true,
			}, stats)
			assert.Equal(t, tt.tableSize, m.TableSize())
			assert.Equal(t, tt.numHashes, m.NumHashes())
			requireRoundTrip(t, m, tt.keys)
		})
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	keys := seqKeys(60)
	for _, f := range []mhash.Family[string]{mhash.WholeKey[string]{}, mhash.Prefix[string]{}} {
		seq, seqStats, err := Build[string, uint16](context.Background(), keys, f)
		require.NoError(t, err)

		for _, workers := range []int{2, 3, 8} {
			par, parStats, err := Build[string, uint16](context.Background(), keys, f, WithWorkers(workers))
			require.NoError(t, err)
			assert.Equal(t, seqStats, parStats, "workers=%d", workers)
			assert.Equal(t, seq.Table(), par.Table(), "workers=%d", workers)
		}
	}
}

// neverAccept walks the Geometric sizes without accepting anything.
type neverAccept struct {
	initial, limit int
}

func (p neverAccept) Initial(int) int {
	return p.initial
}

func (p neverAccept) Next(size int) int {
	return Geometric{}.Next(size)
}

func (p neverAccept) Limit(int) int {
	return p.limit
}

func (p neverAccept) Accept(uint64, int) bool {
	return false
}

func TestBuildFallback(t *testing.T) {
	// Sizes 18, 22 and 27 all succeed; the last one is kept.
	for _, workers := range []int{1, 2} {
		m, stats, err := Build[string, uint16](context.Background(), fruitKeys, mhash.WholeKey[string]{},
			WithPolicy(neverAccept{initial: 18, limit: 30}), WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, Stats{Attempts: 3, TableSize: 27, NumHashes: 1}, stats)
		requireRoundTrip(t, m, fruitKeys)
	}
}

func TestBuildDuplicateKeysFail(t *testing.T) {
	_, stats, err := Build[string, uint16](context.Background(), []string{"a", "b", "a"}, mhash.WholeKey[string]{})
	require.ErrorIs(t, err, mhasherrors.ErrBuildFailed)
	require.ErrorIs(t, err, mhasherrors.ErrSearchExhausted)
	assert.Positive(t, stats.Attempts)
	assert.False(t, stats.Accepted)
}

func TestBuildNoSizeInRange(t *testing.T) {
	_, stats, err := Build[string, uint16](context.Background(), []string{"a", "b"}, mhash.WholeKey[string]{},
		WithPolicy(Geometric{MaxTableSize: 5}))
	require.ErrorIs(t, err, mhasherrors.ErrBuildFailed)
	require.NotErrorIs(t, err, mhasherrors.ErrSearchExhausted)
	assert.Zero(t, stats.Attempts)
}

func TestBuildBadArguments(t *testing.T) {
	_, _, err := Build[string, uint16](context.Background(), nil, mhash.WholeKey[string]{})
	require.ErrorIs(t, err, mhasherrors.ErrBadArguments)

	_, _, err = Build[string, uint8](context.Background(), seqKeys(300), mhash.WholeKey[string]{})
	require.ErrorIs(t, err, mhasherrors.ErrBadArguments)

	_, stats, err := Build[string, uint16](context.Background(), fruitKeys, nil)
	require.ErrorIs(t, err, mhasherrors.ErrBadArguments)
	assert.Equal(t, 1, stats.Attempts)
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		m, _, err := Build[string, uint16](ctx, seqKeys(20), mhash.WholeKey[string]{}, WithWorkers(workers))
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, m)
	}
}

func TestBuildPassesBuildOptions(t *testing.T) {
	var trials int
	_, stats, err := Build[string, uint16](context.Background(), seqKeys(20), mhash.WholeKey[string]{},
		WithBuildOptions(mhash.WithTrialObserver(func(uint64, int) { trials++ })))
	require.NoError(t, err)
	assert.Equal(t, 106, stats.TableSize)
	// The accepted attempt alone needed three failing trials.
	assert.GreaterOrEqual(t, trials, 3)
}

func TestBuildLogging(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)
	logger := funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})

	_, stats, err := Build[string, uint16](context.Background(), seqKeys(20), mhash.WholeKey[string]{}, WithLogger(logger))
	require.NoError(t, err)

	var attempts, trials int
	for _, l := range lines {
		switch {
		case strings.Contains(l, "attempt failed"), strings.Contains(l, "attempt succeeded"):
			attempts++
		case strings.Contains(l, "trial collided"):
			trials++
		}
	}
	assert.Equal(t, stats.Attempts, attempts)
	assert.GreaterOrEqual(t, trials, 3)

	lines = nil
	quiet := funcr.New(func(prefix, args string) { lines = append(lines, args) }, funcr.Options{})
	_, _, err = Build[string, uint16](context.Background(), seqKeys(20), mhash.WholeKey[string]{}, WithLogger(quiet))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-logr/logr"
	"github.com/spaolacci/murmur3"

	"github.com/tamirms/mhash"
	"github.com/tamirms/mhash/mhmap"
)

// sink keeps timed loops from being optimized away.
var sink int

// row is one line of the results table.
type row struct {
	keys      int
	ok        int
	verified  sample
	unchecked sample
	linear    sample
	murmur    sample
	hashes    sample
	maxTable  int
}

// sample collects per-rep measurements.
type sample []float64

func (s sample) mean() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// stddev is the population standard deviation.
func (s sample) stddev() float64 {
	if len(s) == 0 {
		return 0
	}
	avg := s.mean()
	var sum float64
	for _, v := range s {
		sum += (v - avg) * (v - avg)
	}
	return math.Sqrt(sum / float64(len(s)))
}

const tableHeader = "| keys | mhash (std) | unchecked (std) | linear (std) | murmur3 (std) | speedup | avg hashes | max table |\n" +
	"|------|-------------|-----------------|--------------|---------------|---------|------------|-----------|\n"

func (r row) String() string {
	if r.ok == 0 {
		return fmt.Sprintf("| %4d | FAILED |", r.keys)
	}
	speedup := r.linear.mean() / r.verified.mean()
	return fmt.Sprintf("| %4d | %4.0fns (%.0fns) | %4.0fns (%.0fns) | %5.0fns (%.0fns) | %4.0fns (%.0fns) | %6.1fx | %10.1f | %6d x2B |",
		r.keys,
		r.verified.mean(), r.verified.stddev(),
		r.unchecked.mean(), r.unchecked.stddev(),
		r.linear.mean(), r.linear.stddev(),
		r.murmur.mean(), r.murmur.stddev(),
		speedup, r.hashes.mean(), r.maxTable)
}

// bench runs cfg and writes a markdown table to w. When pool is non-nil
// keys are sampled from it, otherwise they are generated.
func bench(ctx context.Context, cfg Config, pool [][]byte, log logr.Logger, w io.Writer) error {
	family, err := mhash.FamilyByName(cfg.Family)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	queries := make([]int, cfg.Lookups)

	if _, err := io.WriteString(w, tableHeader); err != nil {
		return err
	}
	for _, n := range cfg.Counts {
		r := row{keys: n}
		for rep := 0; rep < cfg.Reps; rep++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			var keys [][]byte
			if pool != nil {
				if keys, err = sampleKeys(rng, pool, n); err != nil {
					return err
				}
			} else {
				keys = makeKeys(rng, n)
			}
			for i := range queries {
				queries[i] = rng.IntN(n)
			}
			if err := benchRep(ctx, cfg, family, keys, queries, log, &r); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				log.V(1).Info("rep failed", "keys", n, "rep", rep, "err", err.Error())
			}
		}
		if r.ok != cfg.Reps {
			log.Info("some reps failed", "keys", n, "ok", r.ok, "reps", cfg.Reps)
		}
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}

// benchRep builds one table for keys and times every lookup method over
// queries, appending the results to r.
func benchRep(ctx context.Context, cfg Config, family mhash.Family[[]byte], keys [][]byte, queries []int, log logr.Logger, r *row) error {
	m, stats, err := mhmap.Build[[]byte, uint16](ctx, keys, family,
		mhmap.WithWorkers(cfg.Workers), mhmap.WithLogger(log))
	if err != nil {
		return err
	}
	r.maxTable = max(r.maxTable, stats.TableSize)

	values := make([]int, len(keys))
	for i := range values {
		values[i] = i + 1
	}
	eq := mhash.BytesEqual[[]byte]{}

	verified := timeLookups(queries, func(i int) int {
		v, err := mhash.Lookup(m, keys[i], keys, values, eq)
		if err != nil {
			return 0
		}
		return *v
	})
	unchecked := timeLookups(queries, func(i int) int {
		return values[m.UncheckedEntry(keys[i])]
	})
	linear := timeLookups(queries, func(i int) int {
		key := keys[i]
		for j, k := range keys {
			if bytes.Equal(k, key) {
				return values[j]
			}
		}
		return 0
	})
	raw := timeLookups(queries, func(i int) int {
		return int(murmur3.Sum64(keys[i]))
	})

	r.ok++
	r.verified = append(r.verified, verified)
	r.unchecked = append(r.unchecked, unchecked)
	r.linear = append(r.linear, linear)
	r.murmur = append(r.murmur, raw)
	r.hashes = append(r.hashes, float64(m.NumHashes()))
	return nil
}

// timeLookups returns the mean time in nanoseconds of fn over queries.
func timeLookups(queries []int, fn func(i int) int) float64 {
	start := time.Now()
	for _, q := range queries {
		sink += fn(q)
	}
	return float64(time.Since(start).Nanoseconds()) / float64(len(queries))
}

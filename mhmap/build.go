package mhmap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/tamirms/mhash"
	mhasherrors "github.com/tamirms/mhash/errors"
)

// Stats describes how a table was found.
type Stats struct {
	Attempts  int    // table sizes tried, up to and including the committed one
	TableSize int    // slots in the committed table
	NumHashes uint64 // combined hash functions of the committed table
	Accepted  bool   // false when the committed table is a rejected fallback
}

type attempt[K any, I mhash.Index] struct {
	size int
	m    *mhash.MHash[K, I]
	err  error
}

// Build finds a table for keys by calling mhash.MHash.Init with the table
// sizes of the configured policy until one result is accepted.
//
// If the policy's limit is passed without an accepted result, Build returns
// the last successful table it saw (Stats.Accepted is false). If no size
// worked it returns ErrBuildFailed wrapping the last construction error.
// ErrBadArguments from the core, such as more keys than I can index, is
// returned immediately since no table size can fix it.
//
// Build checks ctx between attempts.
func Build[K any, I mhash.Index](ctx context.Context, keys []K, f mhash.Family[K], opts ...Option) (*mhash.MHash[K, I], Stats, error) {
	cfg := newConfig(opts)
	n := len(keys)
	if n == 0 {
		return nil, Stats{}, fmt.Errorf("%w: no keys", mhasherrors.ErrBadArguments)
	}

	if uint64(n) > uint64(mhash.Empty[I]()) {
		return nil, Stats{}, fmt.Errorf("%w: %d keys exceed index capacity %d",
			mhasherrors.ErrBadArguments, n, uint64(mhash.Empty[I]()))
	}

	log := cfg.logger.WithValues("keys", n)
	limit := cfg.policy.Limit(n)
	// Cap table sizes at the number of values I can hold.
	if e := uint64(mhash.Empty[I]()); e < math.MaxInt32 && limit > int(e)+1 {
		limit = int(e) + 1
	}
	size := cfg.policy.Initial(n)

	var (
		stats    Stats
		fallback attempt[K, I]
		lastErr  error
	)
	for size <= limit {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		sizes := window(cfg, size, limit)
		results, err := runWindow[K, I](ctx, cfg, sizes, keys, f)
		if err != nil {
			return nil, stats, err
		}

		for _, r := range results {
			stats.Attempts++
			if errors.Is(r.err, mhasherrors.ErrBadArguments) {
				return nil, stats, r.err
			}
			if r.err != nil {
				log.V(1).Info("attempt failed", "tableSize", r.size, "err", r.err.Error())
				lastErr = r.err
				continue
			}

			accepted := cfg.policy.Accept(r.m.NumHashes(), n)
			log.V(1).Info("attempt succeeded", "tableSize", r.size, "numHashes", r.m.NumHashes(), "accepted", accepted)
			if accepted {
				stats.TableSize = r.size
				stats.NumHashes = r.m.NumHashes()
				stats.Accepted = true
				return r.m, stats, nil
			}
			fallback = r
		}
		size = nextSize(cfg.policy, sizes[len(sizes)-1])
	}

	if fallback.m != nil {
		log.Info("no table size accepted, using fallback", "tableSize", fallback.size, "numHashes", fallback.m.NumHashes())
		stats.TableSize = fallback.size
		stats.NumHashes = fallback.m.NumHashes()
		return fallback.m, stats, nil
	}
	if lastErr == nil {
		return nil, stats, fmt.Errorf("%w: %d keys, initial table size exceeds limit %d",
			mhasherrors.ErrBuildFailed, n, limit)
	}
	return nil, stats, fmt.Errorf("%w: %d keys, table sizes up to %d: %w",
		mhasherrors.ErrBuildFailed, n, limit, lastErr)
}

// window returns up to cfg.workers consecutive sizes starting at size.
func window(cfg *config, size, limit int) []int {
	sizes := make([]int, 0, cfg.workers)
	for len(sizes) < cfg.workers && size <= limit {
		sizes = append(sizes, size)
		size = nextSize(cfg.policy, size)
	}
	return sizes
}

// runWindow attempts every size in sizes, concurrently when there is more
// than one, and returns the results in the order of sizes.
func runWindow[K any, I mhash.Index](ctx context.Context, cfg *config, sizes []int, keys []K, f mhash.Family[K]) ([]attempt[K, I], error) {
	results := make([]attempt[K, I], len(sizes))
	if len(sizes) == 1 {
		results[0] = tryBuild[K, I](cfg, sizes[0], keys, f)
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, size := range sizes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = tryBuild[K, I](cfg, size, keys, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// tryBuild allocates a table of size slots and makes one construction
// attempt into it.
func tryBuild[K any, I mhash.Index](cfg *config, size int, keys []K, f mhash.Family[K]) attempt[K, I] {
	opts := cfg.buildOpts
	if trace := cfg.logger.V(2); trace.Enabled() {
		opts = append(slices.Clip(opts), mhash.WithTrialObserver(func(numHashes uint64, placed int) {
			trace.Info("trial collided", "tableSize", size, "numHashes", numHashes, "placed", placed)
		}))
	}
	m := new(mhash.MHash[K, I])
	err := m.Init(make([]I, size), keys, f, opts...)
	return attempt[K, I]{size: size, m: m, err: err}
}

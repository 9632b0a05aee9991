package mhmap

import (
	"github.com/go-logr/logr"

	"github.com/tamirms/mhash"
)

// Option is a functional option for configuring Build and Map.
type Option func(*config)

type config struct {
	policy    Policy
	workers   int
	logger    logr.Logger
	buildOpts []mhash.BuildOption
}

func defaultConfig() *config {
	return &config{
		policy:  Geometric{},
		workers: 1, // Default to sequential attempts; use WithWorkers(n) to speculate
		logger:  logr.Discard(),
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithPolicy sets the growth policy. Default is Geometric{}.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		if p != nil {
			c.policy = p
		}
	}
}

// WithWorkers sets how many table sizes are attempted concurrently.
//
// With n > 1, Build attempts the next n sizes of the policy's sequence at
// once, each in its own table, and then inspects the results in sequence
// order. The committed table, hash count, and attempt count are the same
// as for a sequential build; only wall time and peak memory change.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = max(n, 1)
	}
}

// WithLogger sets the logger. Attempt results are logged at V(1), failed
// trials inside each attempt at V(2).
func WithLogger(l logr.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithBuildOptions passes options through to every mhash.MHash.Init call.
func WithBuildOptions(opts ...mhash.BuildOption) Option {
	return func(c *config) {
		c.buildOpts = append(c.buildOpts, opts...)
	}
}

package mhash

// DefaultMaxHashes is the default ceiling on combined hash functions.
const DefaultMaxHashes = 254

// BuildOption is a functional option for configuring Init.
type BuildOption func(*buildConfig)

type buildConfig struct {
	maxHashes  uint64
	capByCount bool // ceiling is lowered to the key count
	observer   func(numHashes uint64, placed int)
}

func defaultBuildConfig() buildConfig {
	return buildConfig{
		maxHashes:  DefaultMaxHashes,
		capByCount: true,
	}
}

// newBuildConfig applies opts to the defaults. Only calls that pass options
// pay for the heap copy the options write into.
func newBuildConfig(opts []BuildOption) buildConfig {
	if len(opts) == 0 {
		return defaultBuildConfig()
	}
	c := new(buildConfig)
	*c = defaultBuildConfig()
	for _, opt := range opts {
		opt(c)
	}
	return *c
}

// WithMaxHashes sets the ceiling on the number of combined hash functions.
// Values below 1 are raised to 1.
func WithMaxHashes(n uint64) BuildOption {
	return func(c *buildConfig) {
		c.maxHashes = max(n, 1)
	}
}

// WithCountCap controls whether the ceiling is also bounded by the number of
// keys. Enabled by default. Disable it to treat WithMaxHashes as an absolute
// bound regardless of count.
func WithCountCap(enabled bool) BuildOption {
	return func(c *buildConfig) {
		c.capByCount = enabled
	}
}

// WithTrialObserver registers fn to be called after every failed trial with
// the hash count of that trial and the number of keys placed before the
// first collision. fn runs on the goroutine calling Init and must not touch
// the table.
func WithTrialObserver(fn func(numHashes uint64, placed int)) BuildOption {
	return func(c *buildConfig) {
		c.observer = fn
	}
}

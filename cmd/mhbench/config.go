package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tamirms/mhash"
)

// Config controls a benchmark run. It can be loaded from a TOML file and
// overridden by flags.
type Config struct {
	// Counts are the key counts to benchmark, in order.
	Counts []int `toml:"counts"`
	// Lookups is the number of timed queries per rep and method.
	Lookups int `toml:"lookups"`
	// Reps is the number of independent key sets per count.
	Reps int `toml:"reps"`
	// Family names the hash family, see mhash.FamilyNames.
	Family string `toml:"family"`
	// Seed seeds key generation and query order.
	Seed uint64 `toml:"seed"`
	// KeyFile, when set, is a newline-delimited file keys are sampled from
	// instead of generating them.
	KeyFile string `toml:"key-file"`
	// Workers is passed to mhmap.WithWorkers.
	Workers int `toml:"workers"`
	// Verbosity is the stdr verbosity: 0 info, 1 attempts, 2 trials.
	Verbosity int `toml:"verbosity"`
}

// defaultCounts is 2..9, 10..90 by 10, and 100..300 by 100.
func defaultCounts() []int {
	var counts []int
	for n := 2; n <= 300; {
		counts = append(counts, n)
		switch {
		case n < 10:
			n++
		case n < 100:
			n += 10
		default:
			n += 100
		}
	}
	return counts
}

func defaultConfig() Config {
	return Config{
		Counts:  defaultCounts(),
		Lookups: 1_000_000,
		Reps:    100,
		Family:  mhash.FamilyPrefix,
		Seed:    42,
		Workers: 1,
	}
}

// loadConfig decodes path over the defaults. Keys missing from the file
// keep their default values.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Counts) == 0 {
		return errors.New("no key counts")
	}
	for _, n := range c.Counts {
		if n < 1 || uint64(n) > uint64(mhash.Empty[uint16]()) {
			return fmt.Errorf("key count %d out of range [1, %d]", n, mhash.Empty[uint16]())
		}
	}
	if c.Lookups < 1 {
		return fmt.Errorf("lookups must be positive, got %d", c.Lookups)
	}
	if c.Reps < 1 {
		return fmt.Errorf("reps must be positive, got %d", c.Reps)
	}
	if _, err := mhash.FamilyByName(c.Family); err != nil {
		return err
	}
	return nil
}

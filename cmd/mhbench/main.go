// Mhbench compares mhash lookups against a linear scan for small key sets.
//
// Usage:
//
//	go run ./cmd/mhbench -counts 2,4,8,16,32 -family prefix
//
// Flags:
//
//	-config    TOML file with any of the settings below (flags win)
//	-counts    Comma-separated key counts (default: 2..9, 10..90, 100..300)
//	-lookups   Timed queries per rep (default: 1,000,000)
//	-reps      Key sets per count (default: 100)
//	-family    Hash family: all, prefix, xxh3, xxhash or murmur3 (default: prefix)
//	-seed      Random seed (default: 42)
//	-keys      Newline-delimited key file to sample from instead of generating keys
//	-workers   Table sizes attempted concurrently per build (default: 1)
//	-v         Log verbosity: 0 info, 1 build attempts, 2 trials
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/tamirms/mhash"
)

// getLogger returns a stdr logger writing to stderr at verbosity v.
func getLogger(v int) logr.Logger {
	logger := stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags)).WithName("mhbench")
	stdr.SetVerbosity(v)
	return logger
}

func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("key count %q: %w", f, err)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

// parseFlags loads the config file named by -config and applies every flag
// that was set explicitly on top of it.
func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	configFlag := fs.String("config", "", "TOML config file")
	countsFlag := fs.String("counts", "", "comma-separated key counts")
	lookupsFlag := fs.Int("lookups", 0, "timed queries per rep")
	repsFlag := fs.Int("reps", 0, "key sets per count")
	familyFlag := fs.String("family", "", "hash family: "+strings.Join(mhash.FamilyNames(), ", "))
	seedFlag := fs.Uint64("seed", 0, "random seed")
	keysFlag := fs.String("keys", "", "newline-delimited key file")
	workersFlag := fs.Int("workers", 0, "table sizes attempted concurrently per build")
	verbosityFlag := fs.Int("v", 0, "log verbosity")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "counts":
			var counts []int
			if counts, err = parseCounts(*countsFlag); err == nil {
				cfg.Counts = counts
			}
		case "lookups":
			cfg.Lookups = *lookupsFlag
		case "reps":
			cfg.Reps = *repsFlag
		case "family":
			cfg.Family = *familyFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "keys":
			cfg.KeyFile = *keysFlag
		case "workers":
			cfg.Workers = *workersFlag
		case "v":
			cfg.Verbosity = *verbosityFlag
		}
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := parseFlags(flag.CommandLine, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log := getLogger(cfg.Verbosity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var pool [][]byte
	if cfg.KeyFile != "" {
		if pool, err = loadKeys(cfg.KeyFile); err != nil {
			log.Error(err, "loading keys")
			return 1
		}
		log.Info("loaded keys", "file", cfg.KeyFile, "keys", len(pool))
	}

	log.V(1).Info("starting", "family", cfg.Family, "counts", cfg.Counts, "lookups", cfg.Lookups, "reps", cfg.Reps)
	if err := bench(ctx, cfg, pool, log, os.Stdout); err != nil {
		log.Error(err, "benchmark failed")
		return 1
	}
	return 0
}

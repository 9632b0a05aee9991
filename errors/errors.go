// Package errors defines all exported error sentinels for the mhash module.
//
// This is the single source of truth for error values. The root mhash
// package, mhmap, and cmd/mhbench all import from here, so errors.Is checks
// work across package boundaries.
package errors

import "errors"

// Construction errors
var (
	ErrBadArguments    = errors.New("mhash: bad arguments")
	ErrSearchExhausted = errors.New("mhash: no collision-free hash count within the ceiling")
)

// Query errors
var (
	ErrNotFound = errors.New("mhash: key not found")
)

// Map errors (growth-and-retry wrapper)
var (
	ErrBuildFailed = errors.New("mhash: map build failed - too many collisions, too many keys, or duplicate keys")
	ErrNotBuilt    = errors.New("mhash: map has not been built")
)

// Configuration errors
var (
	ErrUnknownFamily = errors.New("mhash: unknown hash family")
)

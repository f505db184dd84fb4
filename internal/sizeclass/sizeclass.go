// Package sizeclass is the size-dispatch guard: it converts a runtime
// polycube size N into a validated bound against the compile-time maximum,
// standing in for the reference implementation's template-size cascade (Go
// has no const-generic array length to dispatch on; see SPEC_FULL.md).
package sizeclass

import "github.com/tjol/gopolycubes/internal/errs"

// Nmax is the largest polycube size the engine supports.
const Nmax = 17

// Validate fails with errs.UnsupportedSize if n is outside [1, Nmax].
func Validate(n int) error {
	if n < 1 || n > Nmax {
		return errs.UnsupportedSize{N: n, Max: Nmax}
	}
	return nil
}

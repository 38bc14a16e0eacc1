// Package fibtime times Fibonacci implementations against each other: naive
// recursion, memoized recursion and iteration.
//
// Each candidate is invoked once through a Harness, which prints the value and
// the elapsed nanoseconds. Timings are single samples meant for illustration,
// not rigorous benchmarks.
package fibtime

import (
	"context"

	"github.com/tetratelabs/fibtime/internal/fib"
)

// Input is the index every strategy is timed at. It is the largest index whose
// value fits in a uint64.
const Input = fib.MaxExactInput

// Func computes the Fibonacci value at index n.
type Func func(n uint32) uint64

// ContextFunc is a Func which can fail, such as one calling into a
// WebAssembly module.
type ContextFunc func(ctx context.Context, n uint32) (uint64, error)

package fibtime

import "github.com/tetratelabs/fibtime/internal/fib"

// Strategy is a named way of computing Fibonacci numbers.
type Strategy struct {
	// Name identifies the strategy, ex. "memoized".
	Name string
	// Label is what the Harness prints next to the elapsed time.
	Label string
	// Slow is true when the strategy takes exponential time. These will not
	// finish in practice at Input.
	Slow bool
	// Func computes the value. Each call is independent of previous ones.
	Func Func
}

// Strategies returns all strategies, fast ones first.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "memoized", Label: "memoized recursion", Func: Memoized},
		{Name: "iterative", Label: "iter", Func: fib.Iterative},
		{Name: "naive", Label: "naive recursion if/else", Slow: true, Func: fib.NaiveRecursion},
		{Name: "naive-switch", Label: "naive recursion match", Slow: true, Func: fib.NaiveRecursionSwitch},
	}
}

// Memoized computes the value with memoized recursion, using a new cache per
// call so that consecutive calls each do the full O(n) work.
func Memoized(n uint32) uint64 {
	return fib.MemoizedRecursion(n, fib.Cache{})
}

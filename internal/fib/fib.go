// Package fib implements the Fibonacci recurrence f(0)=f(1)=1,
// f(n)=f(n-1)+f(n-2) three ways: naive recursion, memoized recursion and
// iteration.
//
// All functions use wrapping uint64 addition, so any index above
// MaxExactInput silently returns the value modulo 2^64.
package fib

// MaxExactInput is the largest index whose value fits in a uint64.
const MaxExactInput uint32 = 92

// Cache maps an index to its computed value for the lifetime of one top-level
// MemoizedRecursion call tree. The caller owns it.
type Cache map[uint32]uint64

// NaiveRecursion evaluates the recurrence directly. Calls grow as ~1.618^n.
func NaiveRecursion(n uint32) uint64 {
	if n < 2 {
		return 1
	}
	return NaiveRecursion(n-1) + NaiveRecursion(n-2)
}

// NaiveRecursionSwitch is NaiveRecursion written as a switch over the base
// cases. It must agree with NaiveRecursion for every input.
func NaiveRecursionSwitch(n uint32) uint64 {
	switch n {
	case 0, 1:
		return 1
	default:
		return NaiveRecursion(n-1) + NaiveRecursion(n-2)
	}
}

// Iterative walks the sequence forward keeping only the previous two values.
//
// Note: Iterative(0) returns 0, not 1. Zero is the initial running sum, which
// is returned when the loop has nothing to do. Every n >= 1 agrees with the
// recursive variants.
func Iterative(n uint32) uint64 {
	var sum uint64
	if n < 1 {
		return sum
	}
	prev, cur := uint64(1), uint64(1)
	for i := uint32(1); i < n; i++ {
		sum = prev + cur
		prev, cur = cur, sum
	}
	return cur
}

// MemoizedRecursion evaluates the recurrence, consulting and populating cache
// so each index is computed at most once per cache. Base cases are never
// inserted, so a fresh cache ends up holding exactly the indices 2..n.
func MemoizedRecursion(n uint32, cache Cache) uint64 {
	if v, ok := cache[n]; ok {
		return v
	}
	if n < 2 {
		return 1
	}
	v := MemoizedRecursion(n-1, cache) + MemoizedRecursion(n-2, cache)
	cache[n] = v
	return v
}

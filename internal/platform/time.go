package platform

import (
	"context"
	"time"

	"github.com/tetratelabs/fibtime/sys"
)

// nanoBase uses time.Now to ensure a monotonic clock reading on all platforms
// via time.Since.
var nanoBase = time.Now()

// nanotimePortable implements sys.Nanotime with time.Since.
func nanotimePortable() int64 {
	return time.Since(nanoBase).Nanoseconds()
}

// Nanotime implements sys.Nanotime with clock_gettime(CLOCK_MONOTONIC) where
// available and time.Since if not.
func Nanotime(context.Context) int64 {
	return nanotime()
}

// NewFakeNanotime implements sys.Nanotime that starts at zero and increases
// by 1ms each reading. Any two consecutive readings differ by exactly 1ms.
func NewFakeNanotime() sys.Nanotime {
	var nt int64
	return func(context.Context) int64 {
		ret := nt
		nt += int64(time.Millisecond)
		return ret
	}
}

//go:build linux || darwin

package platform

import "golang.org/x/sys/unix"

func nanotime() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return nanotimePortable()
	}
	return ts.Nano()
}

// Package platform includes runtime-specific code needed to read the clock.
//
// Note: On Linux and Darwin this reads CLOCK_MONOTONIC through x/sys, which
// avoids the wall clock half of time.Now.
package platform

package platform

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testCtx = context.Background()

func Test_NewFakeNanotime(t *testing.T) {
	nt := NewFakeNanotime()

	require.Equal(t, int64(0), nt(testCtx))

	// next reading should increase by 1ms
	require.Equal(t, int64(time.Millisecond), nt(testCtx))
	require.Equal(t, int64(2*time.Millisecond), nt(testCtx))
}

func Test_Nanotime_monotonic(t *testing.T) {
	nanos := Nanotime(testCtx)
	time.Sleep(time.Millisecond)
	nanos2 := Nanotime(testCtx)
	require.True(t, nanos < nanos2)
}

func Test_Nanotime_measuresSleep(t *testing.T) {
	// In CI, sleeping can take several times longer than requested. As we
	// can't control the platform clock, we have to be lenient.
	ns := int64(50 * time.Millisecond)
	max := ns * 5

	start := Nanotime(testCtx)
	time.Sleep(time.Duration(ns))
	duration := Nanotime(testCtx) - start

	require.True(t, duration >= ns && duration < max, "slept for %d", duration)
}

func Test_nanotimePortable(t *testing.T) {
	nanos := nanotimePortable()
	time.Sleep(time.Millisecond)
	require.True(t, nanos < nanotimePortable())
}

package fibtime

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/fibtime/internal/fib"
	"github.com/tetratelabs/fibtime/internal/platform"
)

var testCtx = context.Background()

func newTestHarness() (Harness, *bytes.Buffer, *test.Hook) {
	var stdout bytes.Buffer
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	h := NewHarness(NewHarnessConfig().
		WithStdout(&stdout).
		WithNanotime(platform.NewFakeNanotime()).
		WithLogger(logger))
	return h, &stdout, hook
}

func TestHarness_Time(t *testing.T) {
	h, stdout, hook := newTestHarness()

	res := h.Time(testCtx, "iter", fib.Iterative, 10)
	require.Equal(t, Result{Label: "iter", Input: 10, Value: 89, Elapsed: time.Millisecond}, res)
	require.Equal(t, "89\niter : 1000000 ns\n", stdout.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.DebugLevel, entry.Level)
	require.Equal(t, "timed", entry.Message)
	require.Equal(t, logrus.Fields{
		"label":      "iter",
		"n":          uint32(10),
		"value":      uint64(89),
		"elapsed_ns": int64(1000000),
	}, entry.Data)
}

func TestHarness_Time_callsOnce(t *testing.T) {
	h, stdout, _ := newTestHarness()

	var calls int
	h.Time(testCtx, "counted", func(n uint32) uint64 {
		calls++
		return uint64(n)
	}, 7)
	require.Equal(t, 1, calls)
	require.Equal(t, "7\ncounted : 1000000 ns\n", stdout.String())
}

func TestHarness_Time_sequential(t *testing.T) {
	h, stdout, hook := newTestHarness()

	h.Time(testCtx, "memoized recursion", Memoized, Input)
	h.Time(testCtx, "iter", fib.Iterative, Input)

	// Each measurement reads the clock twice, so the fake clock always
	// yields 1ms regardless of how many measurements came before.
	require.Equal(t, `12200160415121876738
memoized recursion : 1000000 ns
12200160415121876738
iter : 1000000 ns
`, stdout.String())
	require.Equal(t, 2, len(hook.AllEntries()))
}

func TestHarness_TimeContext(t *testing.T) {
	h, stdout, _ := newTestHarness()

	res, err := h.TimeContext(testCtx, "wasm iter", func(ctx context.Context, n uint32) (uint64, error) {
		require.Equal(t, testCtx, ctx)
		return fib.Iterative(n), nil
	}, 20)
	require.NoError(t, err)
	require.Equal(t, uint64(10946), res.Value)
	require.Equal(t, "10946\nwasm iter : 1000000 ns\n", stdout.String())
}

func TestHarness_TimeContext_error(t *testing.T) {
	h, stdout, hook := newTestHarness()

	expectedErr := errors.New("trap")
	res, err := h.TimeContext(testCtx, "wasm iter", func(context.Context, uint32) (uint64, error) {
		return 0, expectedErr
	}, 20)
	require.Equal(t, expectedErr, err)
	require.Equal(t, Result{Label: "wasm iter", Input: 20, Elapsed: time.Millisecond}, res)
	require.Equal(t, "", stdout.String())

	entry := hook.LastEntry()
	require.Equal(t, "call failed", entry.Message)
	require.Equal(t, expectedErr, entry.Data[logrus.ErrorKey])
}

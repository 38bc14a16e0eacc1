package fibtime

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tetratelabs/fibtime/sys"
)

// Result is a single timed invocation.
type Result struct {
	// Label names the candidate in output, ex. "iter".
	Label string
	// Input is the index the candidate was called with.
	Input uint32
	// Value is what the candidate returned.
	Value uint64
	// Elapsed is the wall-clock time of the call alone, excluding printing.
	Elapsed time.Duration
}

// Harness invokes a candidate once and reports how long it took.
//
// For each successful call, two lines are written to the configured stdout:
// the value, then "<label> : <N> ns".
type Harness interface {
	// Time calls fn(n) once.
	Time(ctx context.Context, label string, fn Func, n uint32) Result

	// TimeContext calls fn(ctx, n) once. When fn fails, nothing is written to
	// stdout and the error is returned with the partially filled Result.
	TimeContext(ctx context.Context, label string, fn ContextFunc, n uint32) (Result, error)
}

// NewHarness returns a Harness configured by config.
func NewHarness(config HarnessConfig) Harness {
	c := config.(*harnessConfig)
	return &harness{stdout: c.stdout, nanotime: c.nanotime, logger: c.logger}
}

type harness struct {
	stdout   io.Writer
	nanotime sys.Nanotime
	logger   logrus.FieldLogger
}

// Time implements Harness.Time
func (h *harness) Time(ctx context.Context, label string, fn Func, n uint32) Result {
	// fn cannot fail, so neither can TimeContext.
	res, _ := h.TimeContext(ctx, label, func(_ context.Context, n uint32) (uint64, error) {
		return fn(n), nil
	}, n)
	return res
}

// TimeContext implements Harness.TimeContext
func (h *harness) TimeContext(ctx context.Context, label string, fn ContextFunc, n uint32) (Result, error) {
	res := Result{Label: label, Input: n}

	start := h.nanotime(ctx)
	v, err := fn(ctx, n)
	res.Elapsed = time.Duration(h.nanotime(ctx) - start)

	entry := h.logger.WithFields(logrus.Fields{
		"label":      label,
		"n":          n,
		"elapsed_ns": res.Elapsed.Nanoseconds(),
	})
	if err != nil {
		entry.WithError(err).Debug("call failed")
		return res, err
	}
	res.Value = v
	entry.WithField("value", v).Debug("timed")

	fmt.Fprintln(h.stdout, v)
	fmt.Fprintf(h.stdout, "%s : %d ns\n", label, res.Elapsed.Nanoseconds())
	return res, nil
}

package fibtime

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tetratelabs/fibtime/internal/platform"
	"github.com/tetratelabs/fibtime/sys"
)

// HarnessConfig controls Harness behavior, with the default implementation as
// NewHarnessConfig.
//
// Note: HarnessConfig is immutable. Each WithXXX function returns a new
// instance including the corresponding change.
type HarnessConfig interface {
	// WithStdout configures where values and timings are written. This
	// defaults to os.Stdout. A nil writer discards output.
	WithStdout(io.Writer) HarnessConfig

	// WithNanotime configures the clock read immediately before and after
	// each call. This defaults to a monotonic platform clock.
	//
	// Note: Tests use a fake clock to make timings deterministic.
	WithNanotime(sys.Nanotime) HarnessConfig

	// WithLogger configures the logger each measurement is written to at
	// debug level. This defaults to a logger that discards everything.
	WithLogger(logrus.FieldLogger) HarnessConfig
}

type harnessConfig struct {
	stdout   io.Writer
	nanotime sys.Nanotime
	logger   logrus.FieldLogger
}

// NewHarnessConfig returns a HarnessConfig using the platform clock and
// writing to os.Stdout.
func NewHarnessConfig() HarnessConfig {
	return &harnessConfig{
		stdout:   os.Stdout,
		nanotime: platform.Nanotime,
		logger:   discardLogger(),
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// clone makes a copy of this harness config.
func (c *harnessConfig) clone() *harnessConfig {
	ret := *c // shallow copy as all fields are immutable
	return &ret
}

// WithStdout implements HarnessConfig.WithStdout
func (c *harnessConfig) WithStdout(stdout io.Writer) HarnessConfig {
	if stdout == nil {
		stdout = io.Discard
	}
	ret := c.clone()
	ret.stdout = stdout
	return ret
}

// WithNanotime implements HarnessConfig.WithNanotime
func (c *harnessConfig) WithNanotime(nanotime sys.Nanotime) HarnessConfig {
	if nanotime == nil {
		panic("nanotime cannot be nil")
	}
	ret := c.clone()
	ret.nanotime = nanotime
	return ret
}

// WithLogger implements HarnessConfig.WithLogger
func (c *harnessConfig) WithLogger(logger logrus.FieldLogger) HarnessConfig {
	if logger == nil {
		logger = discardLogger()
	}
	ret := c.clone()
	ret.logger = logger
	return ret
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tetratelabs/wazero/experimental/logging"

	"github.com/tetratelabs/fibtime"
	"github.com/tetratelabs/fibtime/internal/version"
	"github.com/tetratelabs/fibtime/internal/wasmfib"
)

// input is fixed. It is a variable only so tests can choose an index the naive
// strategies finish at.
var input = fibtime.Input

func main() {
	doMain(os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut io.Writer, stdErr logging.Writer, exit func(code int)) {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "print usage")

	var naive bool
	flag.BoolVar(&naive, "naive", false, "also time naive recursion, which takes exponential time")

	var useWasm bool
	flag.BoolVar(&useWasm, "wasm", false, "also time the WebAssembly rendition run by wazero")

	var interp bool
	flag.BoolVar(&interp, "interp", false, "force interpreter (with -wasm)")

	var hostlogging bool
	flag.BoolVar(&hostlogging, "hostlogging", false, "log WebAssembly function calls to stderr (with -wasm)")

	var verbose bool
	flag.BoolVar(&verbose, "v", false, "log each measurement to stderr")

	var printVersion bool
	flag.BoolVar(&printVersion, "version", false, "print the version of fibtime and wazero")

	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		// The flag package already printed the problem and usage.
		if errors.Is(err, flag.ErrHelp) {
			exit(0)
		}
		exit(2)
	}

	if help {
		printUsage(stdErr)
		exit(0)
	}

	if printVersion {
		fmt.Fprintf(stdOut, "fibtime %s (wazero %s)\n", version.GetFibtimeVersion(), version.GetWazeroVersion())
		exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(stdErr, "unexpected argument: %s\n", flag.Arg(0))
		printUsage(stdErr)
		exit(1)
	}

	logger := newLogger(stdErr, verbose)
	ctx := context.Background()
	h := fibtime.NewHarness(fibtime.NewHarnessConfig().
		WithStdout(stdOut).
		WithLogger(logger))

	for _, s := range fibtime.Strategies() {
		if s.Slow {
			if !naive {
				continue
			}
			logger.WithField("strategy", s.Name).Warn("naive recursion takes exponential time")
		}
		h.Time(ctx, s.Label, s.Func, input)
	}

	if useWasm {
		config := wasmfib.Config{Interpreter: interp}
		if hostlogging {
			config.LogWriter = stdErr
		}
		if err := timeWasm(ctx, h, config, naive); err != nil {
			logger.Error(err)
			exit(1)
		}
	}

	exit(0)
}

func timeWasm(ctx context.Context, h fibtime.Harness, config wasmfib.Config, naive bool) error {
	r, err := wasmfib.NewRunner(ctx, config)
	if err != nil {
		return err
	}
	defer r.Close(ctx)

	exports := []struct{ name, label string }{{wasmfib.ExportIterative, "wasm iter"}}
	if naive {
		exports = append(exports, struct{ name, label string }{wasmfib.ExportNaiveRecursion, "wasm naive recursion"})
	}

	for _, e := range exports {
		fn, err := r.Func(e.name)
		if err != nil {
			return err
		}
		if _, err = h.TimeContext(ctx, e.label, fn, input); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(stdErr io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(stdErr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func printUsage(stdErr io.Writer) {
	fmt.Fprintln(stdErr, "fibtime")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  fibtime <options>")
	fmt.Fprintln(stdErr)
	fmt.Fprintf(stdErr, "Times Fibonacci strategies at index %d.\n", input)
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	flag.PrintDefaults()
}

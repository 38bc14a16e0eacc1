// Package wasmfib runs the Fibonacci recurrence as a WebAssembly module inside
// wazero, so it can be timed next to the native Go implementations.
package wasmfib

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/experimental"
	"github.com/tetratelabs/wazero/experimental/logging"
)

// ModuleName is the name the module is instantiated under.
const ModuleName = "fib"

const (
	// ExportNaiveRecursion is the exported naive recursive function, with the
	// same semantics as fib.NaiveRecursion.
	ExportNaiveRecursion = "naive_recursion"
	// ExportIterative is the exported iterative function, with the same
	// semantics as fib.Iterative.
	ExportIterative = "iterative"
)

// Config controls how the module is run.
type Config struct {
	// Interpreter forces the interpreter instead of the compiler. The
	// compiler is only used when the platform supports it.
	Interpreter bool

	// LogWriter, when non-nil, receives a trace of every guest function call.
	LogWriter logging.Writer
}

// Runner is an instantiated fib module.
type Runner struct {
	rt  wazero.Runtime
	mod api.Module
}

// NewRunner compiles and instantiates Binary in a new wazero runtime.
// Callers must Close the result.
func NewRunner(ctx context.Context, config Config) (*Runner, error) {
	var rtc wazero.RuntimeConfig
	if config.Interpreter {
		rtc = wazero.NewRuntimeConfigInterpreter()
	} else {
		rtc = wazero.NewRuntimeConfig()
	}

	if config.LogWriter != nil {
		ctx = experimental.WithFunctionListenerFactory(ctx,
			logging.NewLoggingListenerFactory(config.LogWriter))
	}

	rt := wazero.NewRuntimeWithConfig(ctx, rtc)
	mod, err := rt.InstantiateWithConfig(ctx, Binary(), wazero.NewModuleConfig().WithName(ModuleName))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("error instantiating wasm module: %w", err)
	}
	return &Runner{rt: rt, mod: mod}, nil
}

// Func returns a function calling the export of the given name.
func (r *Runner) Func(name string) (func(ctx context.Context, n uint32) (uint64, error), error) {
	fn := r.mod.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("module %q has no exported function %q", r.mod.Name(), name)
	}
	return func(ctx context.Context, n uint32) (uint64, error) {
		results, err := fn.Call(ctx, api.EncodeU32(n))
		if err != nil {
			return 0, fmt.Errorf("error calling %s(%d): %w", name, n, err)
		}
		return results[0], nil
	}, nil
}

// Close releases the module and the runtime.
func (r *Runner) Close(ctx context.Context) error {
	return r.rt.Close(ctx)
}

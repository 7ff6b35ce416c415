package commands

import (
	"github.com/rowkit/commands-framework/pkg/logger"
)

// Bundle contains the dependencies shared by command executions: the
// Logger and the Reporter. Use NewBundle to create one.
type Bundle struct {
	Logger   logger.Logger
	Registry *Registry
	reporter Reporter
}

// BundleOption is a functional option for configuring a Bundle.
type BundleOption func(*Bundle)

// WithRegistry sets a custom Registry for the Bundle.
func WithRegistry(registry *Registry) BundleOption {
	return func(b *Bundle) {
		b.Registry = registry
	}
}

// NewBundle creates and returns a new Bundle.
func NewBundle(lggr logger.Logger, reporter Reporter, opts ...BundleOption) Bundle {
	b := Bundle{
		Logger:   lggr,
		reporter: reporter,
		Registry: NewRegistry(),
	}

	for _, opt := range opts {
		opt(&b)
	}

	return b
}

// Execute invokes a command with the given arguments, logging the
// invocation and recording a Report. The command's error propagates
// unchanged; no retry or recovery is performed here.
func Execute(b Bundle, cmd Callable, args ...any) (Report, error) {
	b.Logger.Infow("Executing command",
		"name", cmd.Name(), "kind", cmd.Kind().String())

	output, callErr := cmd.Call(args...)

	report := NewReport(cmd, args, output, callErr)
	if err := b.reporter.AddReport(report); err != nil {
		return Report{}, err
	}

	if callErr != nil {
		return report, callErr
	}

	return report, nil
}

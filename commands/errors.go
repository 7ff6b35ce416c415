package commands

import (
	"errors"
	"fmt"
)

var (
	// ErrUnimplemented indicates a command was invoked without a concrete
	// execute implementation.
	ErrUnimplemented = errors.New("execute is not implemented")

	// ErrInvalidConfig indicates a command was constructed with an invalid
	// configuration value.
	ErrInvalidConfig = errors.New("invalid command configuration")

	// ErrHookNotResolvable indicates a hook spec names an operation the
	// command cannot resolve.
	ErrHookNotResolvable = errors.New("hook operation not resolvable")
)

// UnimplementedError is returned when a command without a concrete execute
// implementation is invoked. It identifies the command missing the override.
type UnimplementedError struct {
	Command string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("command %q: %s", e.Command, ErrUnimplemented)
}

func (e *UnimplementedError) Unwrap() error {
	return ErrUnimplemented
}

// ConfigError is returned by New when a configuration field holds a value
// outside its enumerated set.
type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrInvalidConfig, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// HookResolutionError is returned when a hook pipeline references an
// operation that is not registered on the command.
type HookResolutionError struct {
	Op      string
	Command string
}

func (e *HookResolutionError) Error() string {
	return fmt.Sprintf("command %q: %s: %q", e.Command, ErrHookNotResolvable, e.Op)
}

func (e *HookResolutionError) Unwrap() error {
	return ErrHookNotResolvable
}

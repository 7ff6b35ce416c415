package commands

import (
	"fmt"

	"github.com/rowkit/commands-framework/dataset"
)

// Option configures a built-in mutation command before validation.
type Option func(*Config)

// WithName sets the command name.
func WithName(name string) Option {
	return func(cfg *Config) { cfg.Name = name }
}

// WithResult sets the result arity.
func WithResult(r ResultArity) Option {
	return func(cfg *Config) { cfg.Result = r }
}

// WithInput sets the input transform applied to each tuple before
// persistence.
func WithInput(fn InputFunc) Option {
	return func(cfg *Config) { cfg.Input = fn }
}

// WithOperations sets the named operations available to hook specs.
func WithOperations(ops map[string]HookFunc) Option {
	return func(cfg *Config) { cfg.Operations = ops }
}

// WithHooks sets the before and after hook pipelines.
func WithHooks(before, after []HookSpec) Option {
	return func(cfg *Config) {
		cfg.Before = before
		cfg.After = after
	}
}

// WithGateway sets the gateway metadata.
func WithGateway(id string) Option {
	return func(cfg *Config) { cfg.Gateway = id }
}

// NewCreate returns a command that inserts its input tuples into rel. Each
// call argument may be a single record or a collection; every tuple passes
// through the command's input transform before insertion. The result is
// the stored tuples, including generated fields, in insertion order.
func NewCreate(rel dataset.Writable, opts ...Option) (*Command, error) {
	cfg := Config{
		Relation: rel,
		Type:     Create,
		Execute:  executeCreate,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return New(cfg)
}

// NewUpdate returns a command that merges its input tuples over every
// tuple of rel matching p. The result is the updated tuples.
func NewUpdate(rel dataset.Writable, p dataset.Predicate, opts ...Option) (*Command, error) {
	cfg := Config{
		Relation: rel,
		Type:     Update,
		Execute: func(c *Command, args ...any) ([]dataset.Tuple, error) {
			return executeUpdate(c, p, args...)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return New(cfg)
}

// NewDelete returns a command that removes every tuple of rel matching p.
// The result is the removed tuples.
func NewDelete(rel dataset.Writable, p dataset.Predicate, opts ...Option) (*Command, error) {
	cfg := Config{
		Relation: rel,
		Type:     Delete,
		Execute: func(c *Command, args ...any) ([]dataset.Tuple, error) {
			return executeDelete(c, p)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return New(cfg)
}

func executeCreate(c *Command, args ...any) ([]dataset.Tuple, error) {
	w, err := writable(c)
	if err != nil {
		return nil, err
	}

	inserted := []dataset.Tuple{}
	for _, arg := range args {
		tuples, err := dataset.ToTuples(arg)
		if err != nil {
			return nil, err
		}
		for _, t := range tuples {
			stored, err := w.Insert(c.TransformInput(t))
			if err != nil {
				return nil, err
			}
			inserted = append(inserted, stored)
		}
	}

	return inserted, nil
}

func executeUpdate(c *Command, p dataset.Predicate, args ...any) ([]dataset.Tuple, error) {
	w, err := writable(c)
	if err != nil {
		return nil, err
	}

	changes := dataset.Tuple{}
	for _, arg := range args {
		t, err := dataset.ToTuple(arg)
		if err != nil {
			return nil, err
		}
		changes = changes.Merge(t)
	}

	return w.Update(p, c.TransformInput(changes))
}

func executeDelete(c *Command, p dataset.Predicate) ([]dataset.Tuple, error) {
	w, err := writable(c)
	if err != nil {
		return nil, err
	}

	return w.Delete(p)
}

// writable asserts the command's current relation supports mutations. The
// assertion runs per call because WithRelation may rebind the relation
// after construction.
func writable(c *Command) (dataset.Writable, error) {
	w, ok := c.Relation().(dataset.Writable)
	if !ok {
		return nil, fmt.Errorf("command %q: relation %q is not writable", c.Name(), c.Relation().Name())
	}

	return w, nil
}

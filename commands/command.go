package commands

import (
	"iter"
	"reflect"

	"github.com/rowkit/commands-framework/dataset"
)

// CommandType enumerates the kinds of data mutation a command performs.
type CommandType string

const (
	Create CommandType = "create"
	Update CommandType = "update"
	Delete CommandType = "delete"
)

// ResultArity declares whether a command's output is shaped to a single
// tuple or the full tuple collection.
type ResultArity string

const (
	One  ResultArity = "one"
	Many ResultArity = "many"
)

// ExecuteFunc is the concrete persistence operation of a command. The
// command it belongs to is passed in so the operation reads the current
// relation, which may have been rebound via WithRelation.
type ExecuteFunc func(c *Command, args ...any) ([]dataset.Tuple, error)

// InputFunc transforms an input tuple before it reaches the dataset.
type InputFunc func(dataset.Tuple) dataset.Tuple

// Config is the full configuration of a Command, fixed at construction.
// Use New to validate it and build a Command.
type Config struct {
	// Relation is the target dataset handle. Required.
	Relation dataset.Relation
	// Source is the relation a rebound command originated from. Defaults
	// to Relation.
	Source dataset.Relation
	// Type is the mutation kind. Optional; when set it must be one of
	// Create, Update or Delete.
	Type CommandType
	// Result is the output shaping. Defaults to Many.
	Result ResultArity
	// Schema is opaque schema metadata carried for external collaborators;
	// the pipeline never inspects it.
	Schema any
	// Input transforms each input tuple before persistence. Defaults to a
	// passthrough.
	Input InputFunc
	// CurryArgs are arguments partially applied ahead of call-time ones.
	CurryArgs []any
	// Before and After are the hook pipelines applied around execute.
	Before []HookSpec
	After  []HookSpec
	// Operations is the table of named operations hook specs resolve
	// against.
	Operations map[string]HookFunc
	// Execute is the concrete persistence operation. A command without one
	// fails with an UnimplementedError when invoked.
	Execute ExecuteFunc
	// Name identifies the command in registries and reports. Defaults to
	// the relation name.
	Name string
	// Gateway is opaque gateway metadata.
	Gateway string
}

// Command is an immutable data-mutation command. All derivation methods
// return a new instance; a constructed Command is safe to share and invoke
// concurrently as long as its relation tolerates concurrent use.
type Command struct {
	cfg Config
}

var _ Callable = &Command{}

// New validates the configuration and returns a Command. Construction
// fails with a ConfigError when Type or Result lies outside its enumerated
// set, or when no relation is given.
func New(cfg Config) (*Command, error) {
	if cfg.Relation == nil {
		return nil, &ConfigError{Field: "relation", Value: "<nil>"}
	}
	switch cfg.Type {
	case "", Create, Update, Delete:
	default:
		return nil, &ConfigError{Field: "type", Value: cfg.Type}
	}
	switch cfg.Result {
	case One, Many:
	case "":
		cfg.Result = Many
	default:
		return nil, &ConfigError{Field: "result", Value: cfg.Result}
	}
	if cfg.Source == nil {
		cfg.Source = cfg.Relation
	}

	return &Command{cfg: cfg}, nil
}

// Kind returns KindPlain.
func (c *Command) Kind() Kind {
	return KindPlain
}

// Name returns the configured name, falling back to the relation name.
func (c *Command) Name() string {
	if c.cfg.Name != "" {
		return c.cfg.Name
	}

	return c.cfg.Relation.Name()
}

// Relation returns the target dataset handle.
func (c *Command) Relation() dataset.Relation {
	return c.cfg.Relation
}

// Source returns the relation this command was derived from. For a command
// never rebound it equals Relation.
func (c *Command) Source() dataset.Relation {
	return c.cfg.Source
}

// Type returns the mutation kind.
func (c *Command) Type() CommandType {
	return c.cfg.Type
}

// Result returns the result arity.
func (c *Command) Result() ResultArity {
	return c.cfg.Result
}

// Gateway returns the gateway metadata.
func (c *Command) Gateway() string {
	return c.cfg.Gateway
}

// Schema returns the opaque schema metadata, or nil when none was set.
func (c *Command) Schema() any {
	return c.cfg.Schema
}

// CurryArgs returns a copy of the partially applied arguments.
func (c *Command) CurryArgs() []any {
	return append([]any{}, c.cfg.CurryArgs...)
}

// Curried reports whether the command has partially applied arguments.
func (c *Command) Curried() bool {
	return len(c.cfg.CurryArgs) > 0
}

// HasHooks reports whether either hook pipeline is non-empty.
func (c *Command) HasHooks() bool {
	return len(c.cfg.Before) > 0 || len(c.cfg.After) > 0
}

// IsOne reports whether results are shaped to a single tuple.
func (c *Command) IsOne() bool {
	return c.cfg.Result == One
}

// IsMany reports whether results are returned as the full collection.
func (c *Command) IsMany() bool {
	return c.cfg.Result == Many
}

// Call invokes the command with positional arguments. Inputs pass through
// the before-hook pipeline, execute runs, and the result passes through the
// after-hook pipeline, shaped by the command's result arity. Without hooks,
// execute is invoked directly with the curried and call-time arguments
// concatenated.
func (c *Command) Call(args ...any) (any, error) {
	if !c.HasHooks() {
		out, err := c.execute(concat(c.cfg.CurryArgs, args)...)
		if err != nil {
			return nil, err
		}

		return c.shape(out), nil
	}

	// The before pipeline runs over the curried and call-time arguments
	// when curried, or the call-time arguments alone otherwise. The first
	// argument is the accumulator, the rest trail into each hook.
	input := args
	if c.Curried() {
		input = concat(c.cfg.CurryArgs, args)
	}

	var first any
	var rest []any
	if len(input) > 0 {
		first, rest = input[0], input[1:]
	}

	prepared, err := c.applyHooks(c.cfg.Before, first, rest)
	if err != nil {
		return nil, err
	}

	// Hooks may produce nil, indicating no input override.
	var result []dataset.Tuple
	if prepared != nil {
		result, err = c.execute(prepared)
	} else {
		result, err = c.execute()
	}
	if err != nil {
		return nil, err
	}

	after, err := c.applyHooks(c.cfg.After, result, c.afterTrailing(args))
	if err != nil {
		return nil, err
	}

	return c.shape(after), nil
}

// afterTrailing selects the trailing arguments passed to after hooks.
func (c *Command) afterTrailing(args []any) []any {
	switch {
	case c.Curried() && len(args) > 0:
		return args[1:]
	case c.Curried() && len(c.cfg.CurryArgs) > 1:
		return []any{c.cfg.CurryArgs[1]}
	case c.Curried():
		return nil
	case len(args) > 0:
		return args[1:]
	default:
		return nil
	}
}

// execute runs the concrete persistence operation, or fails with an
// UnimplementedError when the command has none.
func (c *Command) execute(args ...any) ([]dataset.Tuple, error) {
	if c.cfg.Execute == nil {
		return nil, &UnimplementedError{Command: c.Name()}
	}

	return c.cfg.Execute(c, args...)
}

// shape applies the result arity: One returns the first element of a
// result sequence (or the sole value if already scalar), Many returns the
// sequence unchanged.
func (c *Command) shape(v any) any {
	if c.IsMany() {
		return v
	}

	switch tv := v.(type) {
	case []dataset.Tuple:
		if len(tv) == 0 {
			return nil
		}

		return tv[0]
	case []any:
		if len(tv) == 0 {
			return nil
		}

		return tv[0]
	default:
		return v
	}
}

// Curry partially applies arguments, returning a new command with CurryArgs
// replaced. As a special case, an uncurried command receiving a graph input
// evaluator as the first argument returns a Lazy wrapping this command and
// that evaluator, so a parent call can defer resolution of nested input.
// Arguments after the evaluator are dropped; the evaluator alone decides
// what the command eventually receives.
func (c *Command) Curry(args ...any) Callable {
	if !c.Curried() && len(args) > 0 {
		if ev, ok := args[0].(InputEvaluator); ok {
			return NewLazy(c, ev)
		}
	}

	next := c.clone()
	next.cfg.CurryArgs = append([]any{}, args...)

	return next
}

// Before returns a new command with the given hooks appended to the
// before pipeline. The receiver is unchanged.
func (c *Command) Before(specs ...HookSpec) *Command {
	next := c.clone()
	next.cfg.Before = append(next.cfg.Before, specs...)

	return next
}

// After returns a new command with the given hooks appended to the after
// pipeline. The receiver is unchanged.
func (c *Command) After(specs ...HookSpec) *Command {
	next := c.clone()
	next.cfg.After = append(next.cfg.After, specs...)

	return next
}

// WithRelation returns a new command bound to rel, recording the current
// relation as the source. Use it to restrict a command to a narrower
// relation while remembering its origin.
func (c *Command) WithRelation(rel dataset.Relation) *Command {
	next := c.clone()
	next.cfg.Source = c.cfg.Relation
	next.cfg.Relation = rel

	return next
}

// Combine returns a Graph with this command as root and the given commands
// as dependents.
func (c *Command) Combine(others ...Callable) *Graph {
	return NewGraph(c, others...)
}

// MapInputTuples applies mapper over the command's input. With a nil
// mapper it returns a lazy, restartable sequence (iter.Seq[dataset.Tuple])
// bound to the command's input transform, evaluated only when iterated. A
// single mergeable record gets the mapper applied once to the whole; a
// collection is mapped element by element, preserving order.
func (c *Command) MapInputTuples(input any, mapper func(dataset.Tuple) dataset.Tuple) (any, error) {
	if mapper == nil {
		seq := iter.Seq[dataset.Tuple](func(yield func(dataset.Tuple) bool) {
			tuples, err := dataset.ToTuples(input)
			if err != nil {
				return
			}
			for _, t := range tuples {
				if !yield(c.TransformInput(t)) {
					return
				}
			}
		})

		return seq, nil
	}

	switch tv := input.(type) {
	case dataset.Tuple:
		return mapper(tv), nil
	case map[string]any:
		return mapper(dataset.Tuple(tv)), nil
	}

	tuples, err := dataset.ToTuples(input)
	if err != nil {
		return nil, err
	}
	mapped := make([]dataset.Tuple, 0, len(tuples))
	for _, t := range tuples {
		mapped = append(mapped, mapper(t))
	}

	return mapped, nil
}

// TransformInput applies the configured input transform to a tuple. With
// no transform configured the tuple passes through unchanged.
func (c *Command) TransformInput(t dataset.Tuple) dataset.Tuple {
	if c.cfg.Input == nil {
		return t
	}

	return c.cfg.Input(t)
}

// Equal reports whether two commands share the same relation handle and
// option set, including hooks and curry arguments. Function-valued options
// are not comparable and are excluded. Equal exists for deduplication and
// testing, not identity-sensitive logic.
func (c *Command) Equal(other *Command) bool {
	if other == nil {
		return false
	}

	return c.cfg.Relation == other.cfg.Relation &&
		c.cfg.Source == other.cfg.Source &&
		c.cfg.Type == other.cfg.Type &&
		c.cfg.Result == other.cfg.Result &&
		c.cfg.Name == other.cfg.Name &&
		c.cfg.Gateway == other.cfg.Gateway &&
		reflect.DeepEqual(c.cfg.Schema, other.cfg.Schema) &&
		reflect.DeepEqual(c.cfg.CurryArgs, other.cfg.CurryArgs) &&
		reflect.DeepEqual(c.cfg.Before, other.cfg.Before) &&
		reflect.DeepEqual(c.cfg.After, other.cfg.After)
}

// clone copies the command, duplicating every slice and map so derived
// instances never share mutable option state.
func (c *Command) clone() *Command {
	cfg := c.cfg
	cfg.CurryArgs = append([]any{}, c.cfg.CurryArgs...)
	cfg.Before = append([]HookSpec{}, c.cfg.Before...)
	cfg.After = append([]HookSpec{}, c.cfg.After...)
	if c.cfg.Operations != nil {
		cfg.Operations = make(map[string]HookFunc, len(c.cfg.Operations))
		for k, v := range c.cfg.Operations {
			cfg.Operations[k] = v
		}
	}

	return &Command{cfg: cfg}
}

// concat returns a new slice with b appended to a.
func concat(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)

	return out
}

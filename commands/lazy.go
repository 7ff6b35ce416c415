package commands

// InputEvaluator resolves a raw nested input structure (e.g. a map with
// nested maps or slices representing related records) into the flat
// argument list the underlying command expects. Evaluators also decide
// which nested fragments correspond to dependent relations; that mapping
// belongs to the caller, not to this package.
type InputEvaluator interface {
	Evaluate(args []any) ([]any, error)
}

// EvaluatorFunc adapts a function to the InputEvaluator interface.
type EvaluatorFunc func(args []any) ([]any, error)

// Evaluate implements InputEvaluator.
func (f EvaluatorFunc) Evaluate(args []any) ([]any, error) {
	return f(args)
}

// Lazy defers a command's execution until an input evaluator resolves the
// nested input into concrete arguments. It lets a single top-level call
// accept deeply nested input and only at evaluation time decide which
// nested fragments become dependent command invocations.
type Lazy struct {
	command   *Command
	evaluator InputEvaluator
}

var _ Callable = &Lazy{}

// NewLazy wraps a command with an input evaluator.
func NewLazy(cmd *Command, ev InputEvaluator) *Lazy {
	return &Lazy{command: cmd, evaluator: ev}
}

// Kind returns KindLazy.
func (l *Lazy) Kind() Kind {
	return KindLazy
}

// Name returns the underlying command's name.
func (l *Lazy) Name() string {
	return l.command.Name()
}

// Command returns the underlying command.
func (l *Lazy) Command() *Command {
	return l.command
}

// Call resolves the nested input through the evaluator and delegates to
// the underlying command with the concrete arguments.
func (l *Lazy) Call(args ...any) (any, error) {
	resolved, err := l.evaluator.Evaluate(args)
	if err != nil {
		return nil, err
	}

	return l.command.Call(resolved...)
}

// Combine returns a Graph rooted at this lazy command.
func (l *Lazy) Combine(others ...Callable) *Graph {
	return NewGraph(l, others...)
}

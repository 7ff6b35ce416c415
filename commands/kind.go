package commands

// Kind is the sealed set of command variants. Callers needing to
// distinguish a bare command from its compositions switch on Kind rather
// than sniffing concrete types.
type Kind int

const (
	// KindPlain is a bare Command.
	KindPlain Kind = iota
	// KindComposite is a sequential pipe of two commands.
	KindComposite
	// KindGraph is a root command with dependent commands.
	KindGraph
	// KindLazy is a command deferred behind an input evaluator.
	KindLazy
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "command"
	case KindComposite:
		return "composite"
	case KindGraph:
		return "graph"
	case KindLazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// Callable is the uniform invocation contract implemented by Command,
// Composite, Graph and Lazy.
type Callable interface {
	// Kind returns the command variant.
	Kind() Kind

	// Name returns the command name, for registry lookup and reporting.
	Name() string

	// Call invokes the command with positional arguments. Execution is
	// synchronous; it runs to completion before returning. Failures
	// propagate unchanged to the caller.
	Call(args ...any) (any, error)
}

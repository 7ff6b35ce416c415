package commands

// HookFunc is a named operation a command can apply around execute. It
// receives the pipeline accumulator, the trailing call arguments selected
// by the invocation, and the named arguments bound in the hook spec.
type HookFunc func(c *Command, value any, args []any, kwargs map[string]any) (any, error)

// HookSpec names an operation applied to a value in a hook pipeline. It is
// either a bare operation (Args nil) or an operation paired with named
// arguments. The operation must be registered on the command at apply time;
// an unresolvable operation is a fatal configuration error.
type HookSpec struct {
	Op   string
	Args map[string]any
}

// Use returns a HookSpec for a bare operation.
func Use(op string) HookSpec {
	return HookSpec{Op: op}
}

// UseWith returns a HookSpec for an operation with bound named arguments.
func UseWith(op string, args map[string]any) HookSpec {
	return HookSpec{Op: op, Args: args}
}

// applyHooks folds the hook list left-to-right over an accumulator starting
// at value. Hook order is list order. Any hook failure unwinds immediately;
// no partial application is hidden.
func (c *Command) applyHooks(specs []HookSpec, value any, trailing []any) (any, error) {
	acc := value
	for _, spec := range specs {
		fn, ok := c.cfg.Operations[spec.Op]
		if !ok {
			return nil, &HookResolutionError{Op: spec.Op, Command: c.Name()}
		}

		out, err := fn(c, acc, trailing, spec.Args)
		if err != nil {
			return nil, err
		}
		acc = out
	}

	return acc, nil
}

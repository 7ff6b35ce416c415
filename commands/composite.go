package commands

import "github.com/rowkit/commands-framework/dataset"

// Composite is a sequential pipe of two commands: invoking it calls the
// left command and feeds its output to the right command. Failure of
// either stage propagates unchanged.
type Composite struct {
	left  Callable
	right Callable
}

var _ Callable = &Composite{}

// Compose pipes the output of left into right.
func Compose(left, right Callable) *Composite {
	return &Composite{left: left, right: right}
}

// Kind returns KindComposite.
func (c *Composite) Kind() Kind {
	return KindComposite
}

// Name joins the names of both stages.
func (c *Composite) Name() string {
	return c.left.Name() + " >> " + c.right.Name()
}

// Left returns the first stage.
func (c *Composite) Left() Callable {
	return c.left
}

// Right returns the second stage.
func (c *Composite) Right() Callable {
	return c.right
}

// Call invokes the left command, adapts its output across the dataset
// boundary, and feeds the result to the right command.
func (c *Composite) Call(args ...any) (any, error) {
	out, err := c.left.Call(args...)
	if err != nil {
		return nil, err
	}

	out, err = c.wrapOutput(out)
	if err != nil {
		return nil, err
	}

	return c.right.Call(out)
}

// relationHolder is satisfied by command variants that expose their target
// relation.
type relationHolder interface {
	Relation() dataset.Relation
}

// wrapOutput re-resolves the left output through the right command's
// relation when that relation is composed; otherwise the output passes
// through unchanged.
func (c *Composite) wrapOutput(out any) (any, error) {
	holder, ok := c.right.(relationHolder)
	if !ok {
		return out, nil
	}
	composed, ok := holder.Relation().(dataset.Composed)
	if !ok {
		return out, nil
	}

	switch tv := out.(type) {
	case []dataset.Tuple:
		return composed.Wrap(tv)
	case dataset.Tuple:
		wrapped, err := composed.Wrap([]dataset.Tuple{tv})
		if err != nil {
			return nil, err
		}
		if len(wrapped) == 0 {
			return nil, nil
		}

		return wrapped[0], nil
	default:
		return out, nil
	}
}

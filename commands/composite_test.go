package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowkit/commands-framework/dataset"
	"github.com/rowkit/commands-framework/dataset/memory"
)

func Test_Composite_Call(t *testing.T) {
	t.Parallel()

	left, err := New(Config{
		Relation: memory.NewRelation("users"),
		Execute: func(_ *Command, args ...any) ([]dataset.Tuple, error) {
			t, err := dataset.ToTuple(args[0])
			if err != nil {
				return nil, err
			}

			return []dataset.Tuple{t.Merge(dataset.Tuple{"left": true})}, nil
		},
	})
	require.NoError(t, err)

	right, err := New(Config{
		Relation: memory.NewRelation("accounts"),
		Execute: func(_ *Command, args ...any) ([]dataset.Tuple, error) {
			tuples, err := dataset.ToTuples(args[0])
			if err != nil {
				return nil, err
			}
			out := make([]dataset.Tuple, 0, len(tuples))
			for _, t := range tuples {
				out = append(out, t.Merge(dataset.Tuple{"right": true}))
			}

			return out, nil
		},
	})
	require.NoError(t, err)

	composite := Compose(left, right)
	assert.Equal(t, KindComposite, composite.Kind())
	assert.Equal(t, "users >> accounts", composite.Name())

	out, err := composite.Call(dataset.Tuple{"id": 1})
	require.NoError(t, err)
	assert.Equal(t, []dataset.Tuple{{"id": 1, "left": true, "right": true}}, out)
}

func Test_Composite_WrapsComposedRelation(t *testing.T) {
	t.Parallel()

	parent := memory.NewRelation("users")
	// a restriction is a composed relation; the left output is re-resolved
	// through it before reaching the right command.
	view := parent.Restrict(dataset.Eq("active", true))

	left, err := New(Config{
		Relation: parent,
		Execute: func(_ *Command, _ ...any) ([]dataset.Tuple, error) {
			return []dataset.Tuple{
				{"id": 1, "active": true},
				{"id": 2, "active": false},
			}, nil
		},
	})
	require.NoError(t, err)

	var received any
	right, err := New(Config{
		Relation: view,
		Execute: func(_ *Command, args ...any) ([]dataset.Tuple, error) {
			received = args[0]

			return dataset.ToTuples(args[0])
		},
	})
	require.NoError(t, err)

	_, err = Compose(left, right).Call()
	require.NoError(t, err)
	assert.Equal(t, []dataset.Tuple{{"id": 1, "active": true}}, received)
}

func Test_Composite_ErrorsPropagate(t *testing.T) {
	t.Parallel()

	boom := errors.New("left failed")
	left, err := New(Config{
		Relation: memory.NewRelation("users"),
		Execute: func(_ *Command, _ ...any) ([]dataset.Tuple, error) {
			return nil, boom
		},
	})
	require.NoError(t, err)

	rightCalled := false
	right, err := New(Config{
		Relation: memory.NewRelation("accounts"),
		Execute: func(_ *Command, _ ...any) ([]dataset.Tuple, error) {
			rightCalled = true

			return nil, nil
		},
	})
	require.NoError(t, err)

	_, err = Compose(left, right).Call(dataset.Tuple{"id": 1})
	require.ErrorIs(t, err, boom)
	assert.False(t, rightCalled, "no local recovery: the right stage never runs")
}

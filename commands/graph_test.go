package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowkit/commands-framework/dataset"
	"github.com/rowkit/commands-framework/dataset/memory"
)

// orderedCommand returns a command that appends its name to log when
// executed and echoes its input.
func orderedCommand(t *testing.T, name string, log *[]string) *Command {
	t.Helper()

	cmd, err := New(Config{
		Relation: memory.NewRelation(name),
		Name:     name,
		Execute: func(_ *Command, args ...any) ([]dataset.Tuple, error) {
			*log = append(*log, name)
			if len(args) == 0 {
				return nil, nil
			}

			return dataset.ToTuples(args[0])
		},
	})
	require.NoError(t, err)

	return cmd
}

func Test_Graph_Call_Order(t *testing.T) {
	t.Parallel()

	var log []string
	root := orderedCommand(t, "users", &log)
	tasks := orderedCommand(t, "tasks", &log)
	tags := orderedCommand(t, "tags", &log)

	graph := root.Combine(tasks, tags)
	assert.Equal(t, KindGraph, graph.Kind())
	assert.Equal(t, "users", graph.Name())

	out, err := graph.Call(dataset.Tuple{"id": 1})
	require.NoError(t, err)

	// root runs before any dependent; dependents run in declaration order
	assert.Equal(t, []string{"users", "tasks", "tags"}, log)

	result, ok := out.(*GraphResult)
	require.True(t, ok)
	assert.Equal(t, []dataset.Tuple{{"id": 1}}, result.Root)
	assert.Len(t, result.Dependents, 2)
}

func Test_Graph_DependentsReceiveRootResult(t *testing.T) {
	t.Parallel()

	users := memory.NewRelation("users")
	tasks := memory.NewRelation("tasks")

	createUser, err := NewCreate(users, WithResult(One))
	require.NoError(t, err)

	// The dependent derives its input from the root result: the task is
	// keyed by the generated user id.
	createTask, err := New(Config{
		Relation: tasks,
		Type:     Create,
		Result:   One,
		Execute: func(c *Command, args ...any) ([]dataset.Tuple, error) {
			user, err := dataset.ToTuple(args[0])
			if err != nil {
				return nil, err
			}
			stored, err := tasks.Insert(dataset.Tuple{"user_id": user["id"], "title": "setup"})
			if err != nil {
				return nil, err
			}

			return []dataset.Tuple{stored}, nil
		},
	})
	require.NoError(t, err)

	out, err := createUser.Combine(createTask).Call(dataset.Tuple{"name": "Jane"})
	require.NoError(t, err)

	result := out.(*GraphResult)
	user := result.Root.(dataset.Tuple)
	require.NotEmpty(t, user["id"], "insert assigns a generated id")

	task := result.Dependents[0].(dataset.Tuple)
	assert.Equal(t, user["id"], task["user_id"], "child row references the parent row")

	// parent row exists before the child: both are persisted
	stored, err := tasks.Tuples()
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func Test_Graph_RootFailureSkipsDependents(t *testing.T) {
	t.Parallel()

	boom := errors.New("root failed")
	root, err := New(Config{
		Relation: memory.NewRelation("users"),
		Execute: func(_ *Command, _ ...any) ([]dataset.Tuple, error) {
			return nil, boom
		},
	})
	require.NoError(t, err)

	var log []string
	dep := orderedCommand(t, "tasks", &log)

	_, err = root.Combine(dep).Call(dataset.Tuple{"id": 1})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, log, "no dependent is invoked when the root fails")
}

func Test_Graph_DependentFailureStopsExecution(t *testing.T) {
	t.Parallel()

	var log []string
	root := orderedCommand(t, "users", &log)

	boom := errors.New("dependent failed")
	failing, err := New(Config{
		Relation: memory.NewRelation("tasks"),
		Execute: func(_ *Command, _ ...any) ([]dataset.Tuple, error) {
			log = append(log, "tasks")

			return nil, boom
		},
	})
	require.NoError(t, err)

	after := orderedCommand(t, "tags", &log)

	_, err = root.Combine(failing, after).Call(dataset.Tuple{"id": 1})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"users", "tasks"}, log, "later dependents do not run; earlier effects are not rolled back")
}

func Test_Graph_Combine_AppendsNodes(t *testing.T) {
	t.Parallel()

	var log []string
	root := orderedCommand(t, "users", &log)
	first := orderedCommand(t, "tasks", &log)
	second := orderedCommand(t, "tags", &log)

	base := root.Combine(first)
	extended := base.Combine(second)

	assert.Len(t, base.Nodes(), 1, "combine does not mutate the receiver")
	assert.Len(t, extended.Nodes(), 2)
}

func Test_Graph_NestedGraphDependent(t *testing.T) {
	t.Parallel()

	var log []string
	root := orderedCommand(t, "users", &log)
	child := orderedCommand(t, "tasks", &log)
	grandchild := orderedCommand(t, "tags", &log)

	nested := child.Combine(grandchild)
	out, err := root.Combine(nested).Call(dataset.Tuple{"id": 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"users", "tasks", "tags"}, log)

	result := out.(*GraphResult)
	_, ok := result.Dependents[0].(*GraphResult)
	assert.True(t, ok, "nested graphs aggregate their own results")
}

package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rowkit/commands-framework/dataset"
	"github.com/rowkit/commands-framework/dataset/memory"
	"github.com/rowkit/commands-framework/pkg/logger"
)

func Test_Execute_RecordsReport(t *testing.T) {
	t.Parallel()

	log, observedLog := logger.TestObserved(t, zapcore.InfoLevel)
	reporter := NewMemoryReporter()
	b := NewBundle(log, reporter)

	create, err := NewCreate(memory.NewRelation("users"), WithName("create-user"), WithResult(One))
	require.NoError(t, err)

	report, err := Execute(b, create, dataset.Tuple{"name": "Jane"})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "create-user", report.Name)
	assert.Equal(t, "command", report.Kind)
	assert.Nil(t, report.Err)
	assert.NotNil(t, report.Timestamp)

	stored := report.Output.(dataset.Tuple)
	assert.Equal(t, "Jane", stored["name"])

	reports, err := reporter.GetReports()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)

	got, err := reporter.GetReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Name, got.Name)

	require.Equal(t, 1, observedLog.Len())
	entry := observedLog.All()[0]
	assert.Equal(t, "Executing command", entry.Message)
	assert.Equal(t, "create-user", entry.ContextMap()["name"])
	assert.Equal(t, "command", entry.ContextMap()["kind"])
}

func Test_Execute_ErrorPropagatesWithReport(t *testing.T) {
	t.Parallel()

	boom := errors.New("insert failed")
	cmd, err := New(Config{
		Relation: memory.NewRelation("users"),
		Name:     "failing",
		Execute: func(_ *Command, _ ...any) ([]dataset.Tuple, error) {
			return nil, boom
		},
	})
	require.NoError(t, err)

	reporter := NewMemoryReporter()
	b := NewBundle(logger.Nop(), reporter)

	report, err := Execute(b, cmd, dataset.Tuple{"id": 1})
	require.ErrorIs(t, err, boom)

	require.NotNil(t, report.Err)
	assert.Equal(t, boom.Error(), report.Err.Message)

	reports, err := reporter.GetReports()
	require.NoError(t, err)
	assert.Len(t, reports, 1, "failed executions are reported too")
}

func Test_MemoryReporter_GetReportNotFound(t *testing.T) {
	t.Parallel()

	reporter := NewMemoryReporter()

	_, err := reporter.GetReport("nope")
	require.ErrorIs(t, err, ErrReportNotFound)
}

func Test_NewBundle_WithRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	b := NewBundle(logger.Nop(), NewMemoryReporter(), WithRegistry(registry))

	assert.Same(t, registry, b.Registry)
}

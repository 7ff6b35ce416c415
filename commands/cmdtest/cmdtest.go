// Package cmdtest provides utilities for commands testing.
package cmdtest

import (
	"testing"

	"github.com/rowkit/commands-framework/commands"
	"github.com/rowkit/commands-framework/pkg/logger"
)

// NewBundle creates a new commands bundle for testing with a no-op logger
// and a memory reporter.
func NewBundle(t *testing.T) commands.Bundle {
	t.Helper()

	return commands.NewBundle(logger.Nop(), commands.NewMemoryReporter())
}

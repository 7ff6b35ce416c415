package commands

import (
	"errors"

	"github.com/Masterminds/semver/v3"
)

// Definition is the metadata a command is registered under: a name, a
// semantic version and a description. Two registrations are considered the
// same when name and version match.
type Definition struct {
	Name        string          `json:"name"`
	Version     *semver.Version `json:"version"`
	Description string          `json:"description"`
}

// ErrNotRegistered is returned when a definition has no matching command
// in the registry.
var ErrNotRegistered = errors.New("command not found in registry")

// Registry is a store for commands that allows retrieval based on their
// definitions.
type Registry struct {
	entries []registryEntry
}

type registryEntry struct {
	def Definition
	cmd Callable
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds commands to the registry under their definitions.
func (r *Registry) Register(def Definition, cmd Callable) {
	r.entries = append(r.entries, registryEntry{def: def, cmd: cmd})
}

// Retrieve returns the command registered under the definition's name and
// version, or ErrNotRegistered.
func (r *Registry) Retrieve(def Definition) (Callable, error) {
	for _, e := range r.entries {
		if e.def.Name == def.Name && versionsEqual(e.def.Version, def.Version) {
			return e.cmd, nil
		}
	}

	return nil, ErrNotRegistered
}

// versionsEqual compares two versions, tolerating nil on either side. The
// zero Definition carries a nil version and must not match a versioned
// registration.
func versionsEqual(a, b *semver.Version) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(b)
}

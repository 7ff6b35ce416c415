package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/rowkit/commands-framework/commands"
	"github.com/rowkit/commands-framework/dataset"
)

// Manifest formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// HookEntry declares one hook in a command manifest: an operation name and
// optional bound named arguments.
type HookEntry struct {
	Op   string         `yaml:"op" toml:"op"`
	Args map[string]any `yaml:"args,omitempty" toml:"args,omitempty"`
}

// Spec converts the entry to a commands.HookSpec.
func (h HookEntry) Spec() commands.HookSpec {
	if len(h.Args) == 0 {
		return commands.Use(h.Op)
	}

	return commands.UseWith(h.Op, h.Args)
}

// CommandEntry declares one command in a manifest.
type CommandEntry struct {
	Name        string      `yaml:"name" toml:"name"`
	Version     string      `yaml:"version" toml:"version"`
	Description string      `yaml:"description,omitempty" toml:"description,omitempty"`
	Type        string      `yaml:"type" toml:"type"`
	Result      string      `yaml:"result,omitempty" toml:"result,omitempty"`
	Gateway     string      `yaml:"gateway,omitempty" toml:"gateway,omitempty"`
	Before      []HookEntry `yaml:"before,omitempty" toml:"before,omitempty"`
	After       []HookEntry `yaml:"after,omitempty" toml:"after,omitempty"`
}

// Definition returns the registry definition declared by the entry.
func (e CommandEntry) Definition() (commands.Definition, error) {
	version, err := semver.NewVersion(e.Version)
	if err != nil {
		return commands.Definition{}, fmt.Errorf("command %q: invalid version %q: %w", e.Name, e.Version, err)
	}

	return commands.Definition{
		Name:        e.Name,
		Version:     version,
		Description: e.Description,
	}, nil
}

// Build constructs the declared command against a relation. The operations
// table supplies the hook implementations the manifest's hook entries
// resolve against; execute supplies the persistence operation.
func (e CommandEntry) Build(
	rel dataset.Relation, execute commands.ExecuteFunc, ops map[string]commands.HookFunc,
) (*commands.Command, error) {
	before := make([]commands.HookSpec, 0, len(e.Before))
	for _, h := range e.Before {
		before = append(before, h.Spec())
	}
	after := make([]commands.HookSpec, 0, len(e.After))
	for _, h := range e.After {
		after = append(after, h.Spec())
	}

	return commands.New(commands.Config{
		Relation:   rel,
		Type:       commands.CommandType(e.Type),
		Result:     commands.ResultArity(e.Result),
		Before:     before,
		After:      after,
		Operations: ops,
		Execute:    execute,
		Name:       e.Name,
		Gateway:    e.Gateway,
	})
}

// Manifest is a declarative list of commands.
type Manifest struct {
	Commands []CommandEntry `yaml:"commands" toml:"commands"`
}

// ParseManifest parses a manifest from YAML or TOML data.
func ParseManifest(data []byte, format string) (*Manifest, error) {
	m := &Manifest{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("parse yaml manifest: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("parse toml manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}

	return m, nil
}

// Definitions returns the registry definitions of every command in the
// manifest.
func (m *Manifest) Definitions() ([]commands.Definition, error) {
	defs := make([]commands.Definition, 0, len(m.Commands))
	for _, e := range m.Commands {
		def, err := e.Definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return defs, nil
}

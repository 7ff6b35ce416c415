/*
Package commands provides a pipeline for data-mutation commands
(create/update/delete) against an abstract dataset.

# Commands API

The Commands API enables:
- Defining persistence commands with a uniform invocation contract
- Decorating execution with before/after hook pipelines
- Partially applying arguments for deferred, parameterized execution
- Composing commands sequentially and into dependency-ordered graphs
- Tracking command results and generating reports

# Core Components

Command:
  - An immutable value object owning a dataset handle and configuration
  - Decorates its execute step with hook pipelines and result shaping
  - Derivation methods (Curry, Before, After, WithRelation) return new
    instances, so a Command is safe to share and reuse as a template

Composite:
  - Pipes two commands so the first command's output feeds the second

Graph:
  - Associates a root command with dependent commands, executing the root
    first and threading its result into each dependent in declaration order

Lazy:
  - Wraps a command with an input evaluator, deferring execution until a
    nested input structure is resolved into concrete arguments

Registry:
  - Stores and retrieves commands by name and version

Reporter:
  - Tracks command execution results and metadata

# Basic Usage

	create, err := commands.NewCreate(users)
	if err != nil { ... }

	b := commands.NewBundle(lggr, commands.NewMemoryReporter())
	report, err := commands.Execute(b, create, dataset.Tuple{"name": "Jane"})
*/
package commands

// Package dataset defines the data source surface that mutation commands
// operate against. A dataset is an opaque handle over a set of tuples;
// concrete implementations live in the memory and sqlds subpackages.
package dataset

import "errors"

var (
	// ErrTupleNotFound is returned when a read or mutation targets a tuple
	// that does not exist in the relation.
	ErrTupleNotFound = errors.New("tuple not found")

	// ErrNotDecodable is returned when a value cannot be decoded into a
	// Tuple or a slice of Tuples.
	ErrNotDecodable = errors.New("value cannot be decoded into tuples")
)

// Relation is an immutable view over a named set of tuples. It is the
// opaque handle a command holds; commands never copy the underlying data.
type Relation interface {
	// Name returns the relation name.
	Name() string

	// Tuples returns a copy of all tuples in the relation. Modifying the
	// returned slice or its tuples must not affect the underlying data.
	Tuples() ([]Tuple, error)
}

// Writable is a Relation that supports the persistence primitives concrete
// create, update and delete commands need.
type Writable interface {
	Relation

	// Insert adds a tuple to the relation and returns the stored tuple,
	// including any generated fields.
	Insert(t Tuple) (Tuple, error)

	// Update merges changes into every tuple matching the predicate and
	// returns the updated tuples. It returns ErrTupleNotFound when nothing
	// matches.
	Update(p Predicate, changes Tuple) ([]Tuple, error)

	// Delete removes every tuple matching the predicate and returns the
	// removed tuples. It returns ErrTupleNotFound when nothing matches.
	Delete(p Predicate) ([]Tuple, error)
}

// Restrictable is a Relation that can derive a narrower view of itself.
// Commands rebound to a restricted relation remember the original as their
// source relation.
type Restrictable interface {
	Relation

	// Restrict returns a derived relation limited to tuples matching the
	// predicate.
	Restrict(p Predicate) Relation
}

// Composed is a Relation derived from other relations. The output of one
// command must be re-resolved through a composed relation before it can be
// fed into a command targeting it.
type Composed interface {
	Relation

	// Wrap re-resolves the given tuples through the composed relation.
	Wrap(tuples []Tuple) ([]Tuple, error)
}

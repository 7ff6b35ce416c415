// Package memory provides an in-memory dataset implementation. It is the
// reference Writable relation used by the command tests and by callers that
// do not need durable storage.
package memory

import (
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/rowkit/commands-framework/dataset"
)

// Relation is an in-memory implementation of the dataset.Writable and
// dataset.Restrictable interfaces. It is safe for concurrent use.
type Relation struct {
	mu     sync.RWMutex
	name   string
	tuples []dataset.Tuple
}

var _ dataset.Writable = &Relation{}
var _ dataset.Restrictable = &Relation{}

// NewRelation creates a new empty in-memory relation with the given name.
func NewRelation(name string) *Relation {
	return &Relation{name: name, tuples: []dataset.Tuple{}}
}

// Name returns the relation name.
func (r *Relation) Name() string {
	return r.name
}

// Tuples returns a copy of all tuples in the relation, in insertion order.
func (r *Relation) Tuples() ([]dataset.Tuple, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tuples := make([]dataset.Tuple, 0, len(r.tuples))
	for _, t := range r.tuples {
		tuples = append(tuples, t.Clone())
	}

	return tuples, nil
}

// Filter returns a copy of all tuples that pass all of the provided filters.
// Filters are applied in the order they are provided. If no filters are
// provided, all tuples are returned.
func (r *Relation) Filter(filters ...dataset.FilterFunc) []dataset.Tuple {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tuples := make([]dataset.Tuple, 0, len(r.tuples))
	for _, t := range r.tuples {
		tuples = append(tuples, t.Clone())
	}
	for _, filter := range filters {
		tuples = filter(tuples)
	}

	return tuples
}

// Insert adds a tuple to the relation. A tuple without an "id" field is
// assigned a generated one.
func (r *Relation) Insert(t dataset.Tuple) (dataset.Tuple, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := t.Clone()
	if stored == nil {
		stored = dataset.Tuple{}
	}
	if _, ok := stored["id"]; !ok {
		stored["id"] = newRowID()
	}
	r.tuples = append(r.tuples, stored)

	return stored.Clone(), nil
}

// Update merges changes into every tuple matching the predicate, preserving
// order, and returns the updated tuples.
func (r *Relation) Update(p dataset.Predicate, changes dataset.Tuple) ([]dataset.Tuple, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := []dataset.Tuple{}
	for i, t := range r.tuples {
		if p(t) {
			r.tuples[i] = t.Merge(changes)
			updated = append(updated, r.tuples[i].Clone())
		}
	}
	if len(updated) == 0 {
		return nil, dataset.ErrTupleNotFound
	}

	return updated, nil
}

// Delete removes every tuple matching the predicate and returns the removed
// tuples.
func (r *Relation) Delete(p dataset.Predicate) ([]dataset.Tuple, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := []dataset.Tuple{}
	kept := make([]dataset.Tuple, 0, len(r.tuples))
	for _, t := range r.tuples {
		if p(t) {
			deleted = append(deleted, t.Clone())
			continue
		}
		kept = append(kept, t)
	}
	if len(deleted) == 0 {
		return nil, dataset.ErrTupleNotFound
	}
	r.tuples = kept

	return deleted, nil
}

// Restrict returns a read-only view of the relation limited to tuples
// matching the predicate. The view reads through to the parent relation.
func (r *Relation) Restrict(p dataset.Predicate) dataset.Relation {
	return &restriction{parent: r, pred: p}
}

// restriction is a derived, read-through view over a parent relation.
type restriction struct {
	parent *Relation
	pred   dataset.Predicate
}

var _ dataset.Composed = &restriction{}

func (v *restriction) Name() string {
	return v.parent.Name()
}

func (v *restriction) Tuples() ([]dataset.Tuple, error) {
	return v.parent.Filter(dataset.Where(v.pred)), nil
}

// Wrap re-resolves tuples through the restriction, keeping only those
// visible in the view.
func (v *restriction) Wrap(tuples []dataset.Tuple) ([]dataset.Tuple, error) {
	return dataset.Where(v.pred)(tuples), nil
}

// newRowID generates a new row ID.
//
// This uses ksuid to generate a unique, sortable ID. Each ID is prefixed to
// make generated identifiers recognizable in stored data.
func newRowID() string {
	return "row_" + ksuid.New().String()
}

package dataset

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Tuple is a single structured record produced or consumed by a command.
type Tuple map[string]any

// Clone returns a shallow copy of the tuple. Nested values are shared.
func (t Tuple) Clone() Tuple {
	if t == nil {
		return nil
	}

	clone := make(Tuple, len(t))
	for k, v := range t {
		clone[k] = v
	}

	return clone
}

// Merge returns a new tuple with the values of other merged over t.
func (t Tuple) Merge(other Tuple) Tuple {
	merged := t.Clone()
	if merged == nil {
		merged = Tuple{}
	}
	for k, v := range other {
		merged[k] = v
	}

	return merged
}

// ToTuple decodes a value into a Tuple. Maps are converted directly and
// structs are decoded field by field (honoring `mapstructure` tags).
func ToTuple(v any) (Tuple, error) {
	switch tv := v.(type) {
	case nil:
		return nil, fmt.Errorf("ToTuple(nil): %w", ErrNotDecodable)
	case Tuple:
		return tv.Clone(), nil
	case map[string]any:
		return Tuple(tv).Clone(), nil
	}

	out := map[string]any{}
	if err := mapstructure.Decode(v, &out); err != nil {
		return nil, fmt.Errorf("ToTuple(%T): %w: %w", v, ErrNotDecodable, err)
	}

	return Tuple(out), nil
}

// ToTuples decodes a value into a slice of Tuples. It accepts a single
// record (decoded as a one-element slice) or a collection of records,
// preserving order.
func ToTuples(v any) ([]Tuple, error) {
	switch tv := v.(type) {
	case []Tuple:
		out := make([]Tuple, 0, len(tv))
		for _, t := range tv {
			out = append(out, t.Clone())
		}

		return out, nil
	case []map[string]any:
		out := make([]Tuple, 0, len(tv))
		for _, t := range tv {
			out = append(out, Tuple(t).Clone())
		}

		return out, nil
	case []any:
		out := make([]Tuple, 0, len(tv))
		for _, e := range tv {
			t, err := ToTuple(e)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}

		return out, nil
	}

	t, err := ToTuple(v)
	if err != nil {
		return nil, err
	}

	return []Tuple{t}, nil
}

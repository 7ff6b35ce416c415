package dataset

// The following functions are a default set of predicates and filters for
// selecting tuples out of a relation. They are composable and can be
// combined to create more complex selections, e.g.:
//
//	rel.Restrict(dataset.And(
//		dataset.Eq("status", "active"),
//		dataset.Eq("org_id", orgID),
//	))

// Predicate reports whether a tuple matches a condition.
type Predicate func(Tuple) bool

// FilterFunc filters a slice of tuples.
type FilterFunc func([]Tuple) []Tuple

var _ FilterFunc = Where(nil)

// Eq returns a predicate matching tuples whose field equals the given value.
func Eq(field string, value any) Predicate {
	return func(t Tuple) bool {
		return t[field] == value
	}
}

// And returns a predicate matching tuples that satisfy every given predicate.
func And(preds ...Predicate) Predicate {
	return func(t Tuple) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}

		return true
	}
}

// Any returns a predicate that matches every tuple.
func Any() Predicate {
	return func(Tuple) bool { return true }
}

// Where lifts a predicate into a FilterFunc that keeps matching tuples.
func Where(p Predicate) FilterFunc {
	return func(tuples []Tuple) []Tuple {
		if p == nil {
			return tuples
		}

		filtered := make([]Tuple, 0, len(tuples))
		for _, t := range tuples {
			if p(t) {
				filtered = append(filtered, t)
			}
		}

		return filtered
	}
}

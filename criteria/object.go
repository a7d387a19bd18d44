package criteria

import "github.com/David-HERS/HDF5-Data-Migrator/container"

// IsDataset reports whether obj is a dataset.
func IsDataset(obj container.Object) bool {
	return obj != nil && obj.Kind() == container.KindDataset
}

// IsGroup reports whether obj is a group.
func IsGroup(obj container.Object) bool {
	return obj != nil && obj.Kind() == container.KindGroup
}

// All holds when every predicate holds. It holds for no predicates.
func All[T any](predicates ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, p := range predicates {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one predicate holds. It holds for no predicates, like an
// empty rule list.
func Any[T any](predicates ...func(T) bool) func(T) bool {
	return func(v T) bool {
		if len(predicates) == 0 {
			return true
		}
		for _, p := range predicates {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not[T any](predicate func(T) bool) func(T) bool {
	return func(v T) bool {
		return !predicate(v)
	}
}

package writer

import (
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// enumerate walks m in ascending key order, giving every writer function a
// deterministic part/attribute order despite Go's randomised map iteration
// (spec.md §5: "writer output is deterministic given the same workbook
// state").
func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, fn func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		if err := fn(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

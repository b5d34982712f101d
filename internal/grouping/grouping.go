// Package grouping folds flat parent/child rows, such as the result of a
// one-to-many LEFT JOIN, back into nested records.
package grouping

// Group is one parent together with the children collected for it.
type Group[P any, C any] struct {
	Parent   P
	Children []C
}

// ByKey collects rows by key.
//
// Groups are returned in the order their key is first seen. The parent value is
// taken from the first row of each key. child reports the child carried by a row
// and whether the row has one at all; rows without a child (for example the
// all-NULL right side of an outer join) create the group but add nothing to it.
// Children is never nil.
func ByKey[R any, K comparable, P any, C any](
	rows []R,
	key func(R) K,
	parent func(R) P,
	child func(R) (C, bool),
) []Group[P, C] {
	index := make(map[K]int)
	var groups []Group[P, C]

	for _, row := range rows {
		k := key(row)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[P, C]{
				Parent:   parent(row),
				Children: []C{},
			})
		}

		if c, ok := child(row); ok {
			groups[i].Children = append(groups[i].Children, c)
		}
	}

	return groups
}

// Package merge combines the three tiers of a rule category.
//
// Every category in an icon theme can be given as three lists:
//
//	prepend_<category>  rules that take priority over the base list
//	<category>          the base list, usually from the preset
//	append_<category>   rules tried after the base list
//
// Mix flattens them into one ordered slice. The position of an entry in that
// slice is its priority; nothing else is. FirstWins then folds a mixed slice
// into a map for categories looked up by exact key.
package merge

// Mix returns prepend followed by base followed by append, each keeping its
// own order. Nil lists are treated as empty. The result never aliases any
// of the inputs.
func Mix[T any](prepend, base, append_ []T) []T {
	out := make([]T, 0, len(prepend)+len(base)+len(append_))
	out = append(out, prepend...)
	out = append(out, base...)
	out = append(out, append_...)
	return out
}

// FirstWins inserts entries into a map in slice order, skipping any entry
// whose key is already present. The map is sized to the number of distinct
// keys.
func FirstWins[T any, V any](entries []T, key func(T) string, value func(T) V) map[string]V {
	seen := make(map[string]int, len(entries))
	order := make([]int, 0, len(entries))
	for i, e := range entries {
		k := key(e)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = i
		order = append(order, i)
	}

	out := make(map[string]V, len(order))
	for _, i := range order {
		out[key(entries[i])] = value(entries[i])
	}
	return out
}

// Duplicates returns the keys dropped by FirstWins, in slice order.
// A key is reported once per dropped occurrence.
func Duplicates[T any](entries []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(entries))
	var dups []string
	for _, e := range entries {
		k := key(e)
		if _, ok := seen[k]; ok {
			dups = append(dups, k)
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}

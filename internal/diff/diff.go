// Package diff computes which identities appeared and disappeared between
// two fetches. Pure set difference; removed identities are only ever used
// to prune the persisted set, never to notify.
package diff

import "sort"

// Split returns current−seen (added) and seen−current (removed), each
// sorted so downstream side effects happen in a deterministic order.
func Split(current, seen map[string]struct{}) (added, removed []string) {
	for id := range current {
		if _, ok := seen[id]; !ok {
			added = append(added, id)
		}
	}
	for id := range seen {
		if _, ok := current[id]; !ok {
			removed = append(removed, id)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

package schema

import (
	"cmp"
	"slices"
	"strings"
)

// SortedKinds returns the keys of a per-dataset map with source exports first,
// in audit order, followed by any other kinds alphabetically.
func SortedKinds[V any](m map[DatasetKind]V) []DatasetKind {
	order := func(k DatasetKind) int {
		if i := slices.Index(AllDatasetKinds, k); i >= 0 {
			return i
		}
		return len(AllDatasetKinds)
	}
	kinds := make([]DatasetKind, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	slices.SortFunc(kinds, func(a, b DatasetKind) int {
		if c := cmp.Compare(order(a), order(b)); c != 0 {
			return c
		}
		return strings.Compare(string(a), string(b))
	})
	return kinds
}

// ParseDatasetKind maps user text such as "Contacts" to a known kind.
func ParseDatasetKind(s string) (DatasetKind, bool) {
	k := DatasetKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case ContactsKind, CompaniesKind, TicketsKind, AggregatedKind:
		return k, true
	}
	return "", false
}

// Title returns the display name of a dataset kind.
func (k DatasetKind) Title() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

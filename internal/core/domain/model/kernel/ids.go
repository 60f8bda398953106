package kernel

import (
	"sort"
	"strings"
)

// ProductID is the retail catalogue identifier of a product. Catalogue ids are
// opaque strings issued by the point-of-sale system.
type ProductID string

// CategoryID identifies a product category in the classification tables.
type CategoryID string

func (id ProductID) String() string {
	return string(id)
}

func (id CategoryID) String() string {
	return string(id)
}

// NormalizeProductIDs trims ids, drops empty ones and duplicates, and returns
// them sorted so that downstream lookups are order independent.
func NormalizeProductIDs(ids []ProductID) []ProductID {
	seen := make(map[ProductID]struct{}, len(ids))
	out := make([]ProductID, 0, len(ids))
	for _, raw := range ids {
		id := ProductID(strings.TrimSpace(string(raw)))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NormalizeCategoryIDs applies the same rules as NormalizeProductIDs.
func NormalizeCategoryIDs(ids []CategoryID) []CategoryID {
	seen := make(map[CategoryID]struct{}, len(ids))
	out := make([]CategoryID, 0, len(ids))
	for _, raw := range ids {
		id := CategoryID(strings.TrimSpace(string(raw)))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
